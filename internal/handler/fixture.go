package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/league-service/internal/service"
	"github.com/maxviazov/league-service/pkg/response"
)

type FixtureHandler struct {
	svc service.FixtureService
}

func NewFixtureHandler(svc service.FixtureService) *FixtureHandler { return &FixtureHandler{svc: svc} }

// Register mounts fixture routes with the same guards as teams.
func (h *FixtureHandler) Register(r *gin.RouterGroup, tokens TokenVerifier) {
	admin := RequireAdmin(tokens)
	reader := RequireReader(tokens)
	g := r.Group("/fixtures")
	{
		g.POST("", admin, h.create)
		g.PUT("/:id", admin, h.update)
		g.DELETE("/:id", admin, h.delete)
		g.GET("/:id", reader, h.getByID)
		g.GET("", reader, h.list)
	}
}

func (h *FixtureHandler) create(c *gin.Context) {
	var in service.FixtureInput
	if !bindJSON(c, &in) {
		return
	}
	fixture, err := h.svc.CreateFixture(c.Request.Context(), identity(c), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, fixture)
}

func (h *FixtureHandler) update(c *gin.Context) {
	var in service.FixtureInput
	if !bindJSON(c, &in) {
		return
	}
	fixture, err := h.svc.UpdateFixture(c.Request.Context(), identity(c), c.Param("id"), in)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, fixture)
}

func (h *FixtureHandler) delete(c *gin.Context) {
	if err := h.svc.DeleteFixture(c.Request.Context(), identity(c), c.Param("id")); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, "fixture deleted")
}

func (h *FixtureHandler) getByID(c *gin.Context) {
	fixture, err := h.svc.GetFixture(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, fixture)
}

func (h *FixtureHandler) list(c *gin.Context) {
	fixtures, err := h.svc.ListFixtures(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, fixtures)
}
