package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/league-service/internal/service"
	"github.com/maxviazov/league-service/pkg/response"
)

type TeamHandler struct {
	svc service.TeamService
}

func NewTeamHandler(svc service.TeamService) *TeamHandler { return &TeamHandler{svc: svc} }

// Register mounts team routes; writes need an admin token, reads any valid token.
func (h *TeamHandler) Register(r *gin.RouterGroup, tokens TokenVerifier) {
	admin := RequireAdmin(tokens)
	reader := RequireReader(tokens)
	g := r.Group("/teams")
	{
		g.POST("", admin, h.create)
		g.PUT("/:id", admin, h.update)
		g.DELETE("/:id", admin, h.delete)
		g.GET("/:id", reader, h.getByID)
		g.GET("", reader, h.list)
	}
}

func (h *TeamHandler) create(c *gin.Context) {
	var in service.TeamInput
	if !bindJSON(c, &in) {
		return
	}
	team, err := h.svc.CreateTeam(c.Request.Context(), identity(c), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, team)
}

func (h *TeamHandler) update(c *gin.Context) {
	var in service.TeamInput
	if !bindJSON(c, &in) {
		return
	}
	team, err := h.svc.UpdateTeam(c.Request.Context(), identity(c), c.Param("id"), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) delete(c *gin.Context) {
	if err := h.svc.DeleteTeam(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, "team deleted")
}

func (h *TeamHandler) getByID(c *gin.Context) {
	team, err := h.svc.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) list(c *gin.Context) {
	teams, err := h.svc.ListTeams(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, teams)
}
