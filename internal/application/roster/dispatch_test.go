package roster_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/mohammadpnp/appraisal-import/internal/application/roster"
	"github.com/mohammadpnp/appraisal-import/internal/application/progress"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
)

type fakeInviter struct {
	failFor  map[string]error
	onInvite func(req domain.InviteRequest)
	requests []domain.InviteRequest
}

func (f *fakeInviter) Invite(ctx context.Context, req domain.InviteRequest) error {
	f.requests = append(f.requests, req)
	if f.onInvite != nil {
		f.onInvite(req)
	}
	return f.failFor[req.Email]
}

func target(row int, email string) domain.ParsedUser {
	officeID := "o-1"
	return domain.ParsedUser{
		RowIndex:   row,
		FirstName:  "First",
		LastName:   "Last",
		Email:      email,
		Role:       "agent",
		OfficeID:   &officeID,
		IsValid:    true,
		IsSelected: true,
	}
}

func abc() []domain.ParsedUser {
	return []domain.ParsedUser{
		target(1, "a@example.com"),
		target(2, "b@example.com"),
		target(3, "c@example.com"),
	}
}

func TestDispatchKeepsOrderAcrossFailures(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	inviter := &fakeInviter{failFor: map[string]error{"b@example.com": errors.New("quota exceeded")}}
	d := app.NewDispatcher(inviter, app.Config{}, log)
	updates := progress.NewLatest[domain.BulkInviteProgress]()

	results, err := d.Dispatch(context.Background(), testPrincipal, abc(), updates)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, domain.InviteResult{TargetID: "1", Email: "a@example.com", Success: true}, results[0])
	assert.Equal(t, domain.InviteResult{TargetID: "2", Email: "b@example.com", Success: false, Error: "quota exceeded"}, results[1])
	assert.Equal(t, domain.InviteResult{TargetID: "3", Email: "c@example.com", Success: true}, results[2])

	final := <-updates.C()
	assert.Equal(t, domain.BulkInviteProgress{Total: 3, Completed: 3, Successful: 2, Failed: 1}, final)

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "b@example.com", hook.LastEntry().Data["email"])
	assert.Equal(t, "First Last", hook.LastEntry().Data["name"])
}

func TestDispatchPublishesBeforeEachCall(t *testing.T) {
	t.Parallel()

	updates := progress.NewLatest[domain.BulkInviteProgress]()
	var seen []domain.BulkInviteProgress
	inviter := &fakeInviter{onInvite: func(domain.InviteRequest) {
		seen = append(seen, <-updates.C())
	}}
	d := app.NewDispatcher(inviter, app.Config{}, nil)

	_, err := d.Dispatch(context.Background(), testPrincipal, abc(), updates)
	require.NoError(t, err)

	require.Len(t, seen, 3)
	for i, snapshot := range seen {
		assert.Equal(t, i, snapshot.Completed)
		assert.Equal(t, abc()[i].Email, snapshot.CurrentTarget)
	}
}

func TestDispatchWaitsBetweenCallsOnly(t *testing.T) {
	t.Parallel()

	inviter := &fakeInviter{}
	d := app.NewDispatcher(inviter, app.Config{Delay: 750 * time.Millisecond}, nil)
	var waits []time.Duration
	d.SetSleep(func(ctx context.Context, wait time.Duration) bool {
		waits = append(waits, wait)
		return true
	})

	_, err := d.Dispatch(context.Background(), testPrincipal, abc(), nil)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{750 * time.Millisecond, 750 * time.Millisecond}, waits)
	assert.Len(t, inviter.requests, 3)
}

func TestDispatchBuildsInviteRequest(t *testing.T) {
	t.Parallel()

	inviter := &fakeInviter{}
	d := app.NewDispatcher(inviter, app.Config{}, nil)

	_, err := d.Dispatch(context.Background(), testPrincipal, abc()[:1], nil)
	require.NoError(t, err)

	require.Len(t, inviter.requests, 1)
	req := inviter.requests[0]
	assert.Equal(t, "tenant-1", req.TenantID)
	assert.Equal(t, "admin-1", req.InvitedBy)
	assert.Equal(t, "agent", req.Role)
	assert.Equal(t, "o-1", *req.OfficeID)
	assert.Nil(t, req.TeamID)
}

func TestDispatchStopsWhenCancelledDuringDelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inviter := &fakeInviter{onInvite: func(domain.InviteRequest) { cancel() }}
	d := app.NewDispatcher(inviter, app.Config{Delay: time.Hour}, nil)
	updates := progress.NewLatest[domain.BulkInviteProgress]()

	results, err := d.Dispatch(ctx, testPrincipal, abc(), updates)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.Equal(t, domain.BulkInviteProgress{Total: 3, Completed: 1, Successful: 1}, <-updates.C())
}

func TestDispatchWithTokenBucket(t *testing.T) {
	t.Parallel()

	inviter := &fakeInviter{}
	d := app.NewDispatcher(inviter, app.Config{RatePerSecond: 1000, Burst: 3}, nil)

	results, err := d.Dispatch(context.Background(), testPrincipal, abc(), nil)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err = d.Dispatch(ctx, testPrincipal, abc(), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestDispatchEmptyTargets(t *testing.T) {
	t.Parallel()

	updates := progress.NewLatest[domain.BulkInviteProgress]()
	d := app.NewDispatcher(&fakeInviter{}, app.Config{}, nil)

	results, err := d.Dispatch(context.Background(), testPrincipal, nil, updates)
	require.NoError(t, err)
	assert.Empty(t, results)
	final := <-updates.C()
	assert.Equal(t, 100, final.Percent())
}

func TestInviteSelectedSkipsUnselected(t *testing.T) {
	t.Parallel()

	users := abc()
	users[0].IsSelected = false

	inviter := &fakeInviter{}
	uc := app.NewInviteSelected(&fakeDirectoryReader{}, app.NewDispatcher(inviter, app.Config{}, nil))

	out, err := uc.Execute(context.Background(), app.InviteSelectedInput{Principal: testPrincipal, Users: users})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Targets)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "b@example.com", out.Results[0].Email)
	assert.Empty(t, out.Rejected)

	_, err = uc.Execute(context.Background(), app.InviteSelectedInput{Principal: testPrincipal, Users: users[:1]})
	require.ErrorIs(t, err, app.ErrNoTargets)
}

func TestInviteSelectedRevalidatesUsers(t *testing.T) {
	t.Parallel()

	users := []domain.ParsedUser{
		target(1, ""),
		target(2, "not-an-email"),
		target(3, "taken@example.com"),
		target(4, " Dana@Example.com "),
		target(5, "dana@example.com"),
		target(6, "eve@example.com"),
	}
	users[5].Role = ""
	users[5].OfficeID = nil
	users[5].TeamName = "Sales B"

	inviter := &fakeInviter{}
	reader := &fakeDirectoryReader{dir: testDirectory()}
	uc := app.NewInviteSelected(reader, app.NewDispatcher(inviter, app.Config{}, nil))

	out, err := uc.Execute(context.Background(), app.InviteSelectedInput{Principal: testPrincipal, Users: users})
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", reader.tenantID)

	require.Len(t, inviter.requests, 2)
	assert.Equal(t, "dana@example.com", inviter.requests[0].Email)
	assert.Equal(t, "eve@example.com", inviter.requests[1].Email)
	assert.Equal(t, domain.DefaultRole, inviter.requests[1].Role)
	require.NotNil(t, inviter.requests[1].TeamID)
	assert.Equal(t, "t-2", *inviter.requests[1].TeamID)

	assert.Equal(t, 2, out.Targets)
	require.Len(t, out.Rejected, 4)
	for _, u := range out.Rejected {
		assert.False(t, u.IsValid)
		assert.False(t, u.IsSelected)
		assert.Contains(t, fieldsOf(u.Errors), app.FieldEmail)
	}
}

func TestInviteSelectedDropsUnknownOfficeID(t *testing.T) {
	t.Parallel()

	inviter := &fakeInviter{}
	uc := app.NewInviteSelected(&fakeDirectoryReader{dir: testDirectory()}, app.NewDispatcher(inviter, app.Config{}, nil))

	users := abc()[:1]
	unknown := "o-9"
	users[0].OfficeID = &unknown
	_, err := uc.Execute(context.Background(), app.InviteSelectedInput{Principal: testPrincipal, Users: users})
	require.NoError(t, err)
	require.Len(t, inviter.requests, 1)
	assert.Nil(t, inviter.requests[0].OfficeID)

	known := "o-2"
	users[0].OfficeID = &known
	_, err = uc.Execute(context.Background(), app.InviteSelectedInput{Principal: testPrincipal, Users: users})
	require.NoError(t, err)
	require.Len(t, inviter.requests, 2)
	require.NotNil(t, inviter.requests[1].OfficeID)
	assert.Equal(t, "o-2", *inviter.requests[1].OfficeID)
}

func TestInviteSelectedDirectoryFailure(t *testing.T) {
	t.Parallel()

	uc := app.NewInviteSelected(&fakeDirectoryReader{err: errors.New("db down")}, app.NewDispatcher(&fakeInviter{}, app.Config{}, nil))
	_, err := uc.Execute(context.Background(), app.InviteSelectedInput{Principal: testPrincipal, Users: abc()})
	require.ErrorIs(t, err, app.ErrLoadDirectory)
}
