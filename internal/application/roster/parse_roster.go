package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mohammadpnp/appraisal-import/internal/application/ingest"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

type contactFields struct {
	Email     string `validate:"required,email"`
	FirstName string `validate:"required"`
}

// ParseUser maps one roster row and applies the checks that need no other
// row and no tenant state.
func ParseUser(raw ingest.RawRow, rowIndex int) domain.ParsedUser {
	ix := ingest.NewIndex(raw)
	value := func(field string) string {
		v, _ := ix.Resolve(Columns[field])
		return v
	}

	u := domain.ParsedUser{
		RowIndex:   rowIndex,
		FirstName:  value(FieldFirstName),
		LastName:   value(FieldLastName),
		Email:      strings.ToLower(value(FieldEmail)),
		OfficeName: value(FieldOffice),
		TeamName:   value(FieldTeam),
		Errors:     []domain.ValidationError{},
		Warnings:   []domain.ValidationWarning{},
	}
	if u.FirstName == "" && u.LastName == "" {
		u.FirstName, u.LastName = splitFullName(value(FieldFullName))
	}

	applyChecks(&u, value(FieldPhone), value(FieldRole))
	return u
}

// applyChecks runs the per-user checks on mapped fields and derives validity.
func applyChecks(u *domain.ParsedUser, rawPhone, rawRole string) {
	u.Phone = ingest.NormalizePhone(rawPhone)
	switch {
	case strings.TrimSpace(rawPhone) == "":
		u.AddWarning(FieldPhone, "phone is missing", "")
	case u.Phone == nil:
		u.AddWarning(FieldPhone, "phone could not be read and was left blank", rawPhone)
	}

	role, fellBack := ingest.NormalizeEnum(rawRole, domain.Roles, domain.DefaultRole)
	u.Role = role
	if fellBack {
		u.AddWarning(FieldRole, fmt.Sprintf("role is not recognised; using %q", role), rawRole)
	}

	checkContact(u)
	u.Finalize()
}

func checkContact(u *domain.ParsedUser) {
	err := ingest.Validator().Struct(contactFields{Email: u.Email, FirstName: u.FirstName})
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return
	}
	for _, fe := range fieldErrs {
		switch {
		case fe.Field() == "Email" && fe.Tag() == "required":
			u.AddError(FieldEmail, "email is required", "")
		case fe.Field() == "Email":
			u.AddError(FieldEmail, "email is not a valid address", u.Email)
		case fe.Field() == "FirstName":
			u.AddError(FieldFirstName, "first name is required", "")
		}
	}
}

// splitFullName puts the first token in the first name and the rest in the last name.
func splitFullName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// ParseUsers parses rows in order and rejects any email that already
// appeared on an earlier row. Row numbers are 1-based positions in rows;
// blank rows keep their number but yield no user.
func ParseUsers(rows []ingest.RawRow) []domain.ParsedUser {
	users := make([]domain.ParsedUser, 0, len(rows))
	for i, raw := range rows {
		if raw.Blank() {
			continue
		}
		users = append(users, ParseUser(raw, i+1))
	}
	flagRepeatedEmails(users)
	return users
}

func flagRepeatedEmails(users []domain.ParsedUser) {
	firstRow := make(map[string]int, len(users))
	for i := range users {
		u := &users[i]
		if u.Email == "" {
			continue
		}
		if prior, seen := firstRow[u.Email]; seen {
			u.AddError(FieldEmail, fmt.Sprintf("email is a duplicate of row %d", prior), u.Email)
			u.Finalize()
			continue
		}
		firstRow[u.Email] = u.RowIndex
	}
}

// Revalidate re-applies every check to users that may have been edited since
// preview, including the tenant directory checks. Office and team references
// are re-resolved from their names; a bare ID is kept only when the directory
// knows it. A user stays selected only while it remains valid.
func Revalidate(users []domain.ParsedUser, dir domain.Directory) []domain.ParsedUser {
	selected := make([]bool, len(users))
	checked := make([]domain.ParsedUser, 0, len(users))
	for i, u := range users {
		selected[i] = u.IsSelected
		checked = append(checked, recheck(u, dir))
	}
	flagRepeatedEmails(checked)

	checked = Resolve(checked, dir)
	for i := range checked {
		checked[i].IsSelected = selected[i] && checked[i].IsValid
	}
	return checked
}

func recheck(u domain.ParsedUser, dir domain.Directory) domain.ParsedUser {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.OfficeName = strings.TrimSpace(u.OfficeName)
	u.TeamName = strings.TrimSpace(u.TeamName)
	u.Errors = []domain.ValidationError{}
	u.Warnings = []domain.ValidationWarning{}

	officeID, teamID := u.OfficeID, u.TeamID
	u.OfficeID, u.TeamID = nil, nil
	if u.OfficeName == "" && officeID != nil {
		if knownOffice(dir, *officeID) {
			u.OfficeID = officeID
		} else {
			u.AddWarning(FieldOffice, "office not found; user will not be assigned to an office", *officeID)
		}
	}
	if u.TeamName == "" && teamID != nil {
		if knownTeam(dir, *teamID) {
			u.TeamID = teamID
		} else {
			u.AddWarning(FieldTeam, "team not found; user will not be assigned to a team", *teamID)
		}
	}

	rawPhone := ""
	if u.Phone != nil {
		rawPhone = *u.Phone
	}
	applyChecks(&u, rawPhone, u.Role)
	return u
}

func knownOffice(dir domain.Directory, id string) bool {
	for _, office := range dir.Offices {
		if office.ID == id {
			return true
		}
	}
	return false
}

func knownTeam(dir domain.Directory, id string) bool {
	for _, team := range dir.Teams {
		if team.ID == id {
			return true
		}
	}
	return false
}

// Resolve checks users against the tenant directory: existing accounts are
// errors; unknown offices and teams are warnings and leave the reference nil.
func Resolve(users []domain.ParsedUser, dir domain.Directory) []domain.ParsedUser {
	existing := dir.EmailSet()
	out := make([]domain.ParsedUser, 0, len(users))
	for _, u := range users {
		if _, taken := existing[u.Email]; taken && u.Email != "" {
			u.AddError(FieldEmail, "a user with this email already exists", u.Email)
		}

		if u.OfficeName != "" {
			if office, ok := dir.FindOffice(u.OfficeName); ok {
				u.OfficeID = &office.ID
			} else {
				u.AddWarning(FieldOffice, "office not found; user will not be assigned to an office", u.OfficeName)
			}
		}
		if u.TeamName != "" {
			team, ok := dir.FindTeam(u.TeamName)
			switch {
			case !ok:
				u.AddWarning(FieldTeam, "team not found; user will not be assigned to a team", u.TeamName)
			case u.OfficeID != nil && team.OfficeID != "" && team.OfficeID != *u.OfficeID:
				u.TeamID = &team.ID
				u.AddWarning(FieldTeam, fmt.Sprintf("team belongs to a different office than %q", u.OfficeName), u.TeamName)
			default:
				u.TeamID = &team.ID
				if u.OfficeID == nil && u.OfficeName == "" && team.OfficeID != "" {
					officeID := team.OfficeID
					u.OfficeID = &officeID
				}
			}
		}

		u.Finalize()
		out = append(out, u)
	}
	return out
}

type ParseRosterInput struct {
	Principal tenant.Principal
	Rows      []ingest.RawRow
}

type ParseRoster interface {
	Execute(ctx context.Context, in ParseRosterInput) ([]domain.ParsedUser, error)
}

type parseRoster struct {
	directory domain.DirectoryReader
}

func NewParseRoster(directory domain.DirectoryReader) ParseRoster {
	return &parseRoster{directory: directory}
}

func (uc *parseRoster) Execute(ctx context.Context, in ParseRosterInput) ([]domain.ParsedUser, error) {
	if err := in.Principal.Require(); err != nil {
		return nil, err
	}
	users := ParseUsers(in.Rows)
	if len(users) == 0 {
		return nil, ErrNoRows
	}

	dir, err := uc.directory.LoadDirectory(ctx, in.Principal.TenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadDirectory, err)
	}
	return Resolve(users, dir), nil
}
