package roster_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/mohammadpnp/appraisal-import/internal/application/roster"
	"github.com/mohammadpnp/appraisal-import/internal/application/ingest"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

var testPrincipal = tenant.Principal{UserID: "admin-1", TenantID: "tenant-1", TeamID: "team-1"}

func fieldsOf[T domain.ValidationError | domain.ValidationWarning](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := any(item).(type) {
		case domain.ValidationError:
			out = append(out, v.Field)
		case domain.ValidationWarning:
			out = append(out, v.Field)
		}
	}
	return out
}

func TestParseUserFullRow(t *testing.T) {
	t.Parallel()

	u := app.ParseUser(ingest.RawRow{
		"First Name": " Ana ",
		"Surname":    "Lee",
		"Email":      "ANA@Example.com",
		"Mobile":     "021 555 0101",
		"Role":       "Team Leader",
		"Office":     "Glen Eden",
		"Team":       "Sales A",
	}, 4)

	assert.Equal(t, 4, u.RowIndex)
	assert.Equal(t, "Ana", u.FirstName)
	assert.Equal(t, "Lee", u.LastName)
	assert.Equal(t, "ana@example.com", u.Email)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "0215550101", *u.Phone)
	assert.Equal(t, "team_leader", u.Role)
	assert.Equal(t, "Glen Eden", u.OfficeName)
	assert.Equal(t, "Sales A", u.TeamName)
	assert.True(t, u.IsValid)
	assert.True(t, u.IsSelected)
	assert.Empty(t, u.Errors)
	assert.Empty(t, u.Warnings)
}

func TestParseUserSplitsFullName(t *testing.T) {
	t.Parallel()

	u := app.ParseUser(ingest.RawRow{"Name": "Mere  Ngata Smith", "Email": "mere@example.com", "Phone": "0211234567"}, 1)
	assert.Equal(t, "Mere", u.FirstName)
	assert.Equal(t, "Ngata Smith", u.LastName)
	assert.True(t, u.IsValid)
}

func TestParseUserErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     ingest.RawRow
		field   string
		message string
	}{
		{"missing email", ingest.RawRow{"First Name": "Ana"}, app.FieldEmail, "email is required"},
		{"malformed email", ingest.RawRow{"First Name": "Ana", "Email": "ana-at-example"}, app.FieldEmail, "email is not a valid address"},
		{"missing first name", ingest.RawRow{"Last Name": "Lee", "Email": "lee@example.com"}, app.FieldFirstName, "first name is required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := app.ParseUser(tc.raw, 2)
			assert.False(t, u.IsValid)
			assert.False(t, u.IsSelected)
			require.Len(t, u.Errors, 1)
			assert.Equal(t, tc.field, u.Errors[0].Field)
			assert.Equal(t, tc.message, u.Errors[0].Message)
			assert.Equal(t, 2, u.Errors[0].Row)
		})
	}
}

func TestParseUserWarnings(t *testing.T) {
	t.Parallel()

	u := app.ParseUser(ingest.RawRow{"First Name": "Ana", "Email": "ana@example.com", "Role": "boss"}, 1)
	assert.True(t, u.IsValid)
	assert.Equal(t, domain.DefaultRole, u.Role)
	assert.ElementsMatch(t, []string{app.FieldPhone, app.FieldRole}, fieldsOf(u.Warnings))

	u = app.ParseUser(ingest.RawRow{"First Name": "Ana", "Email": "ana@example.com", "Phone": "12"}, 1)
	require.Len(t, u.Warnings, 1)
	assert.Equal(t, "12", u.Warnings[0].Value)
	assert.Nil(t, u.Phone)
}

func TestParseUsersRejectsRepeatedEmail(t *testing.T) {
	t.Parallel()

	users := app.ParseUsers([]ingest.RawRow{
		{"First Name": "Ana", "Email": "ana@example.com", "Phone": "0211234567"},
		{"First Name": "Bo", "Email": "bo@example.com", "Phone": "0211234567"},
		{"First Name": "Ana", "Email": "ANA@example.com", "Phone": "0211234567"},
	})

	require.Len(t, users, 3)
	assert.True(t, users[0].IsValid)
	assert.True(t, users[1].IsValid)
	assert.False(t, users[2].IsValid)
	assert.Equal(t, 3, users[2].RowIndex)
	require.Len(t, users[2].Errors, 1)
	assert.Contains(t, users[2].Errors[0].Message, "row 1")
}

func TestParseUsersKeepsFileRowNumbers(t *testing.T) {
	t.Parallel()

	users := app.ParseUsers([]ingest.RawRow{
		{"First Name": "Ana", "Email": "ana@example.com"},
		{"First Name": " ", "Email": ""},
		{"First Name": "Bo", "Email": "bo@example.com"},
	})

	require.Len(t, users, 2)
	assert.Equal(t, 1, users[0].RowIndex)
	assert.Equal(t, 3, users[1].RowIndex)
}

func testDirectory() domain.Directory {
	return domain.Directory{
		Offices: []domain.Office{{ID: "o-1", Name: "Glen Eden"}, {ID: "o-2", Name: "Ponsonby"}},
		Teams: []domain.Team{
			{ID: "t-1", OfficeID: "o-1", Name: "Sales A"},
			{ID: "t-2", OfficeID: "o-2", Name: "Sales B"},
		},
		Emails: []string{"taken@example.com"},
	}
}

func TestResolveAgainstDirectory(t *testing.T) {
	t.Parallel()

	users := app.ParseUsers([]ingest.RawRow{
		{"First Name": "A", "Email": "a@example.com", "Phone": "0211234567", "Office": "glen eden", "Team": "Sales A"},
		{"First Name": "B", "Email": "taken@example.com", "Phone": "0211234567"},
		{"First Name": "C", "Email": "c@example.com", "Phone": "0211234567", "Office": "Nowhere", "Team": "Nobody"},
		{"First Name": "D", "Email": "d@example.com", "Phone": "0211234567", "Office": "Glen Eden", "Team": "Sales B"},
		{"First Name": "E", "Email": "e@example.com", "Phone": "0211234567", "Team": "Sales B"},
	})

	resolved := app.Resolve(users, testDirectory())
	require.Len(t, resolved, 5)

	a := resolved[0]
	assert.True(t, a.IsValid)
	assert.Equal(t, "o-1", *a.OfficeID)
	assert.Equal(t, "t-1", *a.TeamID)
	assert.Empty(t, a.Warnings)

	b := resolved[1]
	assert.False(t, b.IsValid)
	assert.Equal(t, []string{app.FieldEmail}, fieldsOf(b.Errors))

	c := resolved[2]
	assert.True(t, c.IsValid)
	assert.Nil(t, c.OfficeID)
	assert.Nil(t, c.TeamID)
	assert.ElementsMatch(t, []string{app.FieldOffice, app.FieldTeam}, fieldsOf(c.Warnings))

	d := resolved[3]
	assert.True(t, d.IsValid)
	assert.Equal(t, []string{app.FieldTeam}, fieldsOf(d.Warnings))
	assert.Contains(t, d.Warnings[0].Message, "different office")

	e := resolved[4]
	require.NotNil(t, e.OfficeID)
	assert.Equal(t, "o-2", *e.OfficeID)
	assert.Equal(t, "t-2", *e.TeamID)
}

type fakeDirectoryReader struct {
	dir      domain.Directory
	err      error
	tenantID string
}

func (f *fakeDirectoryReader) LoadDirectory(ctx context.Context, tenantID string) (domain.Directory, error) {
	f.tenantID = tenantID
	return f.dir, f.err
}

func TestParseRoster(t *testing.T) {
	t.Parallel()

	reader := &fakeDirectoryReader{dir: testDirectory()}
	uc := app.NewParseRoster(reader)
	rows := []ingest.RawRow{{"First Name": "B", "Email": "taken@example.com"}}

	_, err := uc.Execute(context.Background(), app.ParseRosterInput{Rows: rows})
	require.ErrorIs(t, err, tenant.ErrUnauthenticated)

	_, err = uc.Execute(context.Background(), app.ParseRosterInput{Principal: testPrincipal})
	require.ErrorIs(t, err, app.ErrNoRows)

	users, err := uc.Execute(context.Background(), app.ParseRosterInput{Principal: testPrincipal, Rows: rows})
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", reader.tenantID)
	require.Len(t, users, 1)
	assert.False(t, users[0].IsValid)

	failing := app.NewParseRoster(&fakeDirectoryReader{err: errors.New("db down")})
	_, err = failing.Execute(context.Background(), app.ParseRosterInput{Principal: testPrincipal, Rows: rows})
	require.ErrorIs(t, err, app.ErrLoadDirectory)
}
