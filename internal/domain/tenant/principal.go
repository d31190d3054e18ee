package tenant

import (
	"errors"
	"strings"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Principal is the authenticated user a pipeline run acts on behalf of.
type Principal struct {
	UserID   string
	TenantID string
	TeamID   string
}

// Require fails when the principal does not identify both a user and a tenant.
func (p Principal) Require() error {
	if strings.TrimSpace(p.UserID) == "" || strings.TrimSpace(p.TenantID) == "" {
		return ErrUnauthenticated
	}
	return nil
}

// Scope is the tenant/team boundary every read and write is restricted to.
type Scope struct {
	TenantID string
	TeamID   string
	AuthorID string
}

func (p Principal) Scope() Scope {
	return Scope{
		TenantID: p.TenantID,
		TeamID:   p.TeamID,
		AuthorID: p.UserID,
	}
}
