package appraisal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mohammadpnp/appraisal-import/internal/application/progress"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

const (
	DefaultChunkSize = 50

	maxStoredFailures = 100
	maxReasonLength   = 1000
)

type ImportAppraisalsInput struct {
	Principal tenant.Principal
	Rows      []domain.ValidationResult
	// Progress receives floor(processed*100/total) after every chunk. Optional.
	Progress *progress.Latest[int]
}

type ImportAppraisals interface {
	Execute(ctx context.Context, in ImportAppraisalsInput) (domain.ImportSummary, error)
}

type ImportConfig struct {
	ChunkSize int
}

type importAppraisals struct {
	keys   domain.ExistingKeyReader
	writer domain.ChunkWriter
	enrich domain.EnrichmentQueue
	cfg    ImportConfig
	log    logrus.FieldLogger
}

// NewImportAppraisals builds the chunked importer. enrich may be nil, in which
// case imported records are not queued for enrichment.
func NewImportAppraisals(keys domain.ExistingKeyReader, writer domain.ChunkWriter, enrich domain.EnrichmentQueue, cfg ImportConfig, log logrus.FieldLogger) ImportAppraisals {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &importAppraisals{
		keys:   keys,
		writer: writer,
		enrich: enrich,
		cfg:    cfg,
		log:    log,
	}
}

// Execute revalidates the reviewed rows, drops duplicates and commits the
// rest in chunks. A failed chunk is counted and skipped; it never stops the
// run. Only a missing principal or a failed existence read abort before any
// write. On cancellation the summary so far is returned with the context error.
func (uc *importAppraisals) Execute(ctx context.Context, in ImportAppraisalsInput) (domain.ImportSummary, error) {
	if err := in.Principal.Require(); err != nil {
		return domain.ImportSummary{}, err
	}
	scope := in.Principal.Scope()

	summary := domain.ImportSummary{}
	valid := make([]domain.ValidationResult, 0, len(in.Rows))
	for _, r := range in.Rows {
		result := Validate(r.Row, r.RowIndex)
		if !result.Valid {
			summary.Invalid++
			continue
		}
		if result.HasWarnings() {
			summary.Warnings++
		}
		valid = append(valid, result)
	}

	existing, err := uc.keys.ExistingKeys(ctx, scope)
	if err != nil {
		return domain.ImportSummary{}, fmt.Errorf("%w: %v", ErrReadExistingKeys, err)
	}
	unique, dropped := Deduplicate(valid, NewKeySet(existing))
	summary.Duplicates = dropped
	summary.Total = len(unique)

	log := uc.log.WithFields(logrus.Fields{
		"tenant_id": scope.TenantID,
		"team_id":   scope.TeamID,
		"rows":      summary.Total,
	})

	processed := 0
	permissionDenied := false
	for start, chunkIndex := 0, 0; start < len(unique); start, chunkIndex = start+uc.cfg.ChunkSize, chunkIndex+1 {
		if err := ctx.Err(); err != nil {
			summary.Message = failureMessage(summary.Failed, permissionDenied)
			return summary, fmt.Errorf("import stopped after %d of %d rows: %w", processed, summary.Total, err)
		}

		end := min(start+uc.cfg.ChunkSize, len(unique))
		chunk := make([]domain.Appraisal, 0, end-start)
		for _, r := range unique[start:end] {
			chunk = append(chunk, r.Row)
		}

		ids, writeErr := uc.writer.InsertChunk(ctx, scope, chunk)
		if writeErr != nil {
			kind := classifyChunkError(writeErr)
			if kind == domain.FailurePermission {
				permissionDenied = true
			}
			summary.Failed += len(chunk)
			if len(summary.ChunkFailures) < maxStoredFailures {
				summary.ChunkFailures = append(summary.ChunkFailures, domain.ChunkFailure{
					Chunk:   chunkIndex,
					Rows:    len(chunk),
					Kind:    kind,
					Message: truncateReason(writeErr.Error()),
				})
			}
			log.WithFields(logrus.Fields{"chunk": chunkIndex, "kind": kind}).WithError(writeErr).Warn("appraisal chunk import failed")
		} else {
			written := min(len(ids), len(chunk))
			summary.Successful += written
			summary.Skipped += len(chunk) - written
			uc.enqueueEnrichment(ids[:written], log)
		}

		processed += len(chunk)
		in.Progress.Publish(processed * 100 / summary.Total)
	}

	summary.Message = failureMessage(summary.Failed, permissionDenied)
	if summary.Skipped > 0 {
		note := fmt.Sprintf("%d appraisals already existed and were skipped", summary.Skipped)
		summary.Message = strings.TrimPrefix(summary.Message+"; "+note, "; ")
	}
	log.WithFields(logrus.Fields{
		"successful": summary.Successful,
		"failed":     summary.Failed,
		"skipped":    summary.Skipped,
		"duplicates": summary.Duplicates,
	}).Info("appraisal import finished")

	return summary, nil
}

func (uc *importAppraisals) enqueueEnrichment(ids []string, log logrus.FieldLogger) {
	if uc.enrich == nil {
		return
	}
	for _, id := range ids {
		if !uc.enrich.Enqueue(id) {
			log.WithField("appraisal_id", id).Warn("appraisal not queued for enrichment")
		}
	}
}

func classifyChunkError(err error) domain.FailureKind {
	if errors.Is(err, domain.ErrPermissionDenied) {
		return domain.FailurePermission
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"permission denied", "row-level security", "violates policy", "insufficient privilege"} {
		if strings.Contains(msg, marker) {
			return domain.FailurePermission
		}
	}
	return domain.FailureGeneric
}

// failureMessage prefers the permission wording when any chunk was denied.
func failureMessage(failed int, permissionDenied bool) string {
	switch {
	case failed == 0:
		return ""
	case permissionDenied:
		return fmt.Sprintf("%d appraisals were not imported: you do not have permission to add appraisals to this team", failed)
	default:
		return fmt.Sprintf("%d appraisals could not be imported; please try again", failed)
	}
}

func truncateReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxReasonLength {
		return reason
	}
	return reason[:maxReasonLength]
}
