package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/league-service/internal/model"
	"github.com/maxviazov/league-service/pkg/response"
	"github.com/rs/zerolog"
)

// TokenVerifier turns a raw bearer token into the caller identity.
type TokenVerifier interface {
	Verify(raw string) (model.Identity, error)
}

const identityKey = "identity"

const (
	msgNotAdmin    = "unauthorized: you are not an admin"
	msgNotLoggedIn = "unauthorized: please login"
)

// requireRole rejects requests whose token is missing, invalid, or carries a
// role outside roles. The verified identity is stored on the context.
func requireRole(tokens TokenVerifier, denied string, roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c.GetHeader("Authorization"))
		if !ok {
			response.WriteMessage(c, http.StatusUnauthorized, denied)
			return
		}
		id, err := tokens.Verify(raw)
		if err != nil || !hasRole(id.Role, roles) {
			response.WriteMessage(c, http.StatusUnauthorized, denied)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireAdmin gates write routes.
func RequireAdmin(tokens TokenVerifier) gin.HandlerFunc {
	return requireRole(tokens, msgNotAdmin, model.RoleAdmin)
}

// RequireReader gates read routes: any registered role.
func RequireReader(tokens TokenVerifier) gin.HandlerFunc {
	return requireRole(tokens, msgNotLoggedIn, model.RoleUser, model.RoleAdmin)
}

func hasRole(r model.Role, roles []model.Role) bool {
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// identity returns the caller stored by requireRole.
func identity(c *gin.Context) model.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(model.Identity); ok {
			return id
		}
	}
	return model.Identity{}
}

// RequestLogger logs one line per request with status and latency.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	l := logger.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := l.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = l.Error()
			if last := c.Errors.Last(); last != nil {
				event = event.Err(last.Err)
			}
		case status >= http.StatusBadRequest:
			event = l.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}
