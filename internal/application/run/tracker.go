package run

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domain "github.com/mohammadpnp/appraisal-import/internal/domain/run"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

const (
	finishTimeout    = 10 * time.Second
	maxMessageLength = 1000
)

// Reporter receives live progress from a running job. The tracker fills in
// the run identity, status and timestamp.
type Reporter func(p domain.Progress)

type Job struct {
	Kind      domain.Kind
	Principal tenant.Principal
	Run       func(ctx context.Context, report Reporter) (domain.Outcome, error)
}

// Tracker runs jobs in the background and keeps their run record and live
// progress snapshot up to date.
type Tracker struct {
	ctx   context.Context
	repo  domain.Repository
	store domain.ProgressStore
	log   logrus.FieldLogger
	now   func() time.Time
	wg    sync.WaitGroup
}

// NewTracker binds background runs to ctx, which should live as long as the
// process rather than a single request.
func NewTracker(ctx context.Context, repo domain.Repository, store domain.ProgressStore, log logrus.FieldLogger) *Tracker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Tracker{
		ctx:   ctx,
		repo:  repo,
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Start records a new running run and launches job. It returns as soon as
// the record exists.
func (t *Tracker) Start(ctx context.Context, job Job) (string, error) {
	if err := job.Principal.Require(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	startedAt := t.now()
	record := domain.Run{
		ID:        id,
		Kind:      job.Kind,
		TenantID:  job.Principal.TenantID,
		TeamID:    job.Principal.TeamID,
		CreatedBy: job.Principal.UserID,
		Status:    domain.StatusRunning,
		StartedAt: startedAt,
	}
	if err := t.repo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCreateRun, err)
	}

	log := t.log.WithFields(logrus.Fields{
		"run_id":    id,
		"kind":      job.Kind,
		"tenant_id": job.Principal.TenantID,
		"team_id":   job.Principal.TeamID,
	})
	t.save(ctx, domain.Progress{RunID: id, Kind: job.Kind, Status: domain.StatusRunning, UpdatedAt: startedAt}, log)

	t.wg.Add(1)
	go t.execute(id, job, log)
	return id, nil
}

// Wait blocks until every started job has finished.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

func (t *Tracker) execute(id string, job Job, log logrus.FieldLogger) {
	defer t.wg.Done()
	log.Info("run started")

	report := func(p domain.Progress) {
		p.RunID = id
		p.Kind = job.Kind
		p.Status = domain.StatusRunning
		p.UpdatedAt = t.now()
		t.save(t.ctx, p, log)
	}

	outcome, err := job.Run(t.ctx, report)
	if err != nil {
		log.WithError(err).Error("run failed")
		outcome.Status = domain.StatusFailed
		if outcome.Message == "" {
			outcome.Message = truncateMessage(err.Error())
		}
	}
	if outcome.Status == "" {
		outcome.Status = domain.StatusFor(outcome.Successful+outcome.Failed, outcome.Successful)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(t.ctx), finishTimeout)
	defer cancel()

	if err := t.repo.Finish(ctx, id, outcome); err != nil {
		log.WithError(err).Error("failed to record run outcome")
	}

	completed := outcome.Successful + outcome.Failed
	percent := 100
	if outcome.Total > 0 {
		percent = min(completed*100/outcome.Total, 100)
	}
	t.save(ctx, domain.Progress{
		RunID:      id,
		Kind:       job.Kind,
		Status:     outcome.Status,
		Percent:    percent,
		Total:      outcome.Total,
		Completed:  completed,
		Successful: outcome.Successful,
		Failed:     outcome.Failed,
		UpdatedAt:  t.now(),
	}, log)

	log.WithFields(logrus.Fields{
		"status":     outcome.Status,
		"successful": outcome.Successful,
		"failed":     outcome.Failed,
	}).Info("run finished")
}

func (t *Tracker) save(ctx context.Context, p domain.Progress, log logrus.FieldLogger) {
	if t.store == nil {
		return
	}
	if err := t.store.Save(ctx, p); err != nil {
		log.WithError(err).Warn("failed to store run progress")
	}
}

func truncateMessage(message string) string {
	message = strings.TrimSpace(message)
	if len(message) <= maxMessageLength {
		return message
	}
	return message[:maxMessageLength]
}
