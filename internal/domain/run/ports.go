package run

import (
	"context"
	"errors"
)

var ErrRunNotFound = errors.New("run not found")

type Repository interface {
	Create(ctx context.Context, r Run) error
	Finish(ctx context.Context, id string, outcome Outcome) error
	GetByID(ctx context.Context, id string) (*Run, error)
}

type ProgressStore interface {
	Save(ctx context.Context, p Progress) error
	Load(ctx context.Context, runID string) (*Progress, error)
}
