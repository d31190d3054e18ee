package roster

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/mohammadpnp/appraisal-import/internal/application/progress"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

const DefaultInviteDelay = 500 * time.Millisecond

// Config paces calls to the invitation action. Delay is waited between two
// calls, never after the last one. RatePerSecond > 0 additionally puts a
// token bucket in front of every call.
type Config struct {
	Delay         time.Duration
	RatePerSecond float64
	Burst         int
}

// Dispatcher invites targets one at a time, in order.
type Dispatcher struct {
	inviter domain.Inviter
	cfg     Config
	limiter *rate.Limiter
	log     logrus.FieldLogger
	sleep   func(ctx context.Context, d time.Duration) bool
}

func NewDispatcher(inviter domain.Inviter, cfg Config, log logrus.FieldLogger) *Dispatcher {
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	d := &Dispatcher{
		inviter: inviter,
		cfg:     cfg,
		log:     log,
		sleep:   sleepWithContext,
	}
	if cfg.RatePerSecond > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(cfg.Burst, 1))
	}
	return d
}

// Dispatch calls the invitation action for every target and returns one
// result per target in input order. A failed call is recorded and the next
// target is still tried. A snapshot is published before each call and once
// at the end. If ctx ends while waiting, the results so far are returned with
// the context error.
func (d *Dispatcher) Dispatch(ctx context.Context, principal tenant.Principal, targets []domain.ParsedUser, updates *progress.Latest[domain.BulkInviteProgress]) ([]domain.InviteResult, error) {
	if err := principal.Require(); err != nil {
		return nil, err
	}

	results := make([]domain.InviteResult, 0, len(targets))
	snapshot := domain.BulkInviteProgress{Total: len(targets)}

	for i, target := range targets {
		if i > 0 && !d.sleep(ctx, d.cfg.Delay) {
			return results, d.stopped(snapshot, updates, ctx.Err())
		}
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				return results, d.stopped(snapshot, updates, err)
			}
		}

		snapshot.CurrentTarget = target.Email
		updates.Publish(snapshot)

		result := domain.InviteResult{
			TargetID: strconv.Itoa(target.RowIndex),
			Email:    target.Email,
			Success:  true,
		}
		if err := d.inviter.Invite(ctx, inviteRequest(target, principal)); err != nil {
			result.Success = false
			result.Error = err.Error()
			d.log.WithFields(logrus.Fields{
				"email":     target.Email,
				"name":      target.FullName(),
				"tenant_id": principal.TenantID,
			}).WithError(err).Warn("invitation failed")
		}

		snapshot.Completed++
		if result.Success {
			snapshot.Successful++
		} else {
			snapshot.Failed++
		}
		results = append(results, result)
	}

	snapshot.CurrentTarget = ""
	updates.Publish(snapshot)
	return results, nil
}

func (d *Dispatcher) stopped(snapshot domain.BulkInviteProgress, updates *progress.Latest[domain.BulkInviteProgress], err error) error {
	snapshot.CurrentTarget = ""
	updates.Publish(snapshot)
	return fmt.Errorf("dispatch stopped after %d of %d targets: %w", snapshot.Completed, snapshot.Total, err)
}

func inviteRequest(u domain.ParsedUser, principal tenant.Principal) domain.InviteRequest {
	return domain.InviteRequest{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		TenantID:  principal.TenantID,
		OfficeID:  u.OfficeID,
		TeamID:    u.TeamID,
		InvitedBy: principal.UserID,
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
