package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/internal/service"
	"github.com/maxviazov/league-service/pkg/response"
)

type SearchHandler struct {
	svc service.SearchService
}

func NewSearchHandler(svc service.SearchService) *SearchHandler { return &SearchHandler{svc: svc} }

// Register mounts the public search routes. No token required.
func (h *SearchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/search")
	{
		g.GET("/team", h.teams)
		g.GET("/fixture", h.fixtures)
	}
}

func (h *SearchHandler) teams(c *gin.Context) {
	teams, err := h.svc.SearchTeams(c.Request.Context(), optionalQuery(c, "name"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, teams)
}

func (h *SearchHandler) fixtures(c *gin.Context) {
	q := model.SearchQuery{
		Home:      optionalQuery(c, "home"),
		Away:      optionalQuery(c, "away"),
		Matchday:  optionalQuery(c, "matchday"),
		Matchtime: optionalQuery(c, "matchtime"),
	}
	fixtures, err := h.svc.SearchFixtures(c.Request.Context(), q)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, fixtures)
}
