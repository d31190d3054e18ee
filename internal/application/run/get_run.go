package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	domain "github.com/mohammadpnp/appraisal-import/internal/domain/run"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

type GetRunInput struct {
	Principal tenant.Principal
	ID        string
}

type GetRunOutput struct {
	ID         string           `json:"id"`
	Kind       domain.Kind      `json:"kind"`
	Status     domain.Status    `json:"status"`
	Total      int              `json:"total"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Warnings   int              `json:"warnings"`
	Duplicates int              `json:"duplicates"`
	Message    string           `json:"message,omitempty"`
	Result     json.RawMessage  `json:"result,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt *time.Time       `json:"finished_at,omitempty"`
	Progress   *domain.Progress `json:"progress,omitempty"`
}

type GetRun interface {
	Execute(ctx context.Context, in GetRunInput) (GetRunOutput, error)
}

type getRun struct {
	repo  domain.Repository
	store domain.ProgressStore
	log   logrus.FieldLogger
}

func NewGetRun(repo domain.Repository, store domain.ProgressStore, log logrus.FieldLogger) GetRun {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &getRun{repo: repo, store: store, log: log}
}

// Execute returns a run of the caller's tenant. Runs of other tenants are
// reported as not found. Live progress is attached only while the stored run
// is still running; a finished record carries the final counts itself.
func (uc *getRun) Execute(ctx context.Context, in GetRunInput) (GetRunOutput, error) {
	if err := in.Principal.Require(); err != nil {
		return GetRunOutput{}, err
	}
	if _, err := uuid.Parse(in.ID); err != nil {
		return GetRunOutput{}, ErrInvalidRunID
	}

	record, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			return GetRunOutput{}, ErrRunNotFound
		}
		return GetRunOutput{}, fmt.Errorf("%w: %v", ErrGetRun, err)
	}
	if record.TenantID != in.Principal.TenantID {
		return GetRunOutput{}, ErrRunNotFound
	}

	out := GetRunOutput{
		ID:         record.ID,
		Kind:       record.Kind,
		Status:     record.Status,
		Total:      record.Total,
		Successful: record.Successful,
		Failed:     record.Failed,
		Warnings:   record.Warnings,
		Duplicates: record.Duplicates,
		Message:    record.Message,
		Result:     record.Result,
		StartedAt:  record.StartedAt,
		FinishedAt: record.FinishedAt,
	}

	if uc.store != nil && !record.Status.Terminal() {
		live, err := uc.store.Load(ctx, in.ID)
		if err != nil {
			uc.log.WithField("run_id", in.ID).WithError(err).Warn("failed to load live progress")
		}
		out.Progress = live
	}
	return out, nil
}
