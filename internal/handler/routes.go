package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/league-service/internal/service"
)

// Services bundles the use cases the router exposes.
type Services struct {
	Users    service.UserService
	Teams    service.TeamService
	Fixtures service.FixtureService
	Search   service.SearchService
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, db Pinger, tokens TokenVerifier, svc Services) {
	h := NewHealthHandler(db)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewUserHandler(svc.Users).Register(api)
		NewTeamHandler(svc.Teams).Register(api, tokens)
		NewFixtureHandler(svc.Fixtures).Register(api, tokens)
		NewSearchHandler(svc.Search).Register(api)
	}
}
