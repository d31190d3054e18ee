package echo

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

// Identity headers set by the upstream auth gateway.
const (
	HeaderUserID   = "X-User-ID"
	HeaderTenantID = "X-Tenant-ID"
	HeaderTeamID   = "X-Team-ID"

	principalKey = "principal"
)

// RequirePrincipal rejects requests that do not identify a user and a tenant.
func RequirePrincipal() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header
			p := tenant.Principal{
				UserID:   strings.TrimSpace(header.Get(HeaderUserID)),
				TenantID: strings.TrimSpace(header.Get(HeaderTenantID)),
				TeamID:   strings.TrimSpace(header.Get(HeaderTeamID)),
			}
			if err := p.Require(); err != nil {
				return fail(c, http.StatusUnauthorized, "unauthenticated", "missing user or tenant identity")
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) tenant.Principal {
	p, _ := c.Get(principalKey).(tenant.Principal)
	return p
}
