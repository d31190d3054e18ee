package roster

import "strings"

const DefaultRole = "agent"

var Roles = []string{"agent", "team_leader", "office_manager", "admin"}

type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

type ValidationWarning struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ParsedUser is one roster row after mapping and validation. Callers may
// edit fields and toggle IsSelected before the roster is dispatched.
type ParsedUser struct {
	RowIndex   int                 `json:"row_index"`
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	Email      string              `json:"email"`
	Phone      *string             `json:"phone"`
	Role       string              `json:"role"`
	OfficeName string              `json:"office_name,omitempty"`
	TeamName   string              `json:"team_name,omitempty"`
	OfficeID   *string             `json:"office_id"`
	TeamID     *string             `json:"team_id"`
	IsValid    bool                `json:"is_valid"`
	Errors     []ValidationError   `json:"errors"`
	Warnings   []ValidationWarning `json:"warnings"`
	IsSelected bool                `json:"is_selected"`
}

func (u ParsedUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *ParsedUser) AddError(field, message, value string) {
	u.Errors = append(u.Errors, ValidationError{Row: u.RowIndex, Field: field, Message: message, Value: value})
}

func (u *ParsedUser) AddWarning(field, message, value string) {
	u.Warnings = append(u.Warnings, ValidationWarning{Row: u.RowIndex, Field: field, Message: message, Value: value})
}

// Finalize derives IsValid from the error list. Valid users start selected.
func (u *ParsedUser) Finalize() {
	u.IsValid = len(u.Errors) == 0
	u.IsSelected = u.IsValid
}

// Dispatchable reports whether the user should be sent an invitation.
func (u ParsedUser) Dispatchable() bool {
	return u.IsValid && u.IsSelected
}

func Selected(users []ParsedUser) []ParsedUser {
	out := make([]ParsedUser, 0, len(users))
	for _, u := range users {
		if u.Dispatchable() {
			out = append(out, u)
		}
	}
	return out
}
