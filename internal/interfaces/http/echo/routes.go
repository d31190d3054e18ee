package echo

import (
	"context"
	"net/http"

	e "github.com/labstack/echo/v4"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

type Handlers struct {
	Appraisals *AppraisalHandler
	Rosters    *RosterHandler
	Runs       *RunHandler
	Health     map[string]HealthCheck
}

func RegisterRoutes(server *e.Echo, h Handlers) {
	server.GET("/healthz", healthz(h.Health))

	api := server.Group("/api/v1", RequirePrincipal())
	api.POST("/imports/appraisals/preview", h.Appraisals.Preview)
	api.POST("/imports/appraisals", h.Appraisals.Import)
	api.POST("/rosters/preview", h.Rosters.Preview)
	api.POST("/rosters/invites", h.Rosters.Invite)
	api.GET("/runs/:id", h.Runs.GetRun)
}

func healthz(checks map[string]HealthCheck) e.HandlerFunc {
	return func(c e.Context) error {
		status := map[string]string{}
		healthy := true
		for name, check := range checks {
			if err := check(c.Request().Context()); err != nil {
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}
		if !healthy {
			return c.JSON(http.StatusServiceUnavailable, apiResponse{
				Data:  status,
				Error: &errorBody{Code: "unhealthy", Message: "a dependency is unavailable"},
			})
		}
		return c.JSON(http.StatusOK, apiResponse{Data: status})
	}
}
