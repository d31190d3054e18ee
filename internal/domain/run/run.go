package run

import (
	"encoding/json"
	"time"
)

type Kind string

const (
	KindAppraisalImport Kind = "appraisal_import"
	KindBulkInvite      Kind = "bulk_invite"
)

type Status string

const (
	StatusRunning             Status = "running"
	StatusCompleted           Status = "completed"
	StatusCompletedWithErrors Status = "completed_with_errors"
	StatusFailed              Status = "failed"
)

func (s Status) Terminal() bool {
	return s != StatusRunning
}

// Run is the persisted record of one import or dispatch.
type Run struct {
	ID         string
	Kind       Kind
	TenantID   string
	TeamID     string
	CreatedBy  string
	Status     Status
	Total      int
	Successful int
	Failed     int
	Warnings   int
	Duplicates int
	Message    string
	Result     json.RawMessage
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Outcome is what a finished run reports back for persistence.
type Outcome struct {
	Status     Status
	Total      int
	Successful int
	Failed     int
	Warnings   int
	Duplicates int
	Message    string
	Result     any
}

// Progress is the live snapshot shown to a user watching a run.
type Progress struct {
	RunID      string    `json:"run_id"`
	Kind       Kind      `json:"kind"`
	Status     Status    `json:"status"`
	Percent    int       `json:"percent"`
	Total      int       `json:"total"`
	Completed  int       `json:"completed"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
	Current    string    `json:"current,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StatusFor classifies a finished run against the number of items it set out
// to process. Partial success is success with caveats; only a run where
// nothing succeeded out of something expected fails.
func StatusFor(expected, successful int) Status {
	switch {
	case expected > 0 && successful == 0:
		return StatusFailed
	case successful < expected:
		return StatusCompletedWithErrors
	default:
		return StatusCompleted
	}
}
