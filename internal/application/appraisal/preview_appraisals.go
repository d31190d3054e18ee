package appraisal

import (
	"context"

	"github.com/mohammadpnp/appraisal-import/internal/application/ingest"
	domain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

type PreviewAppraisalsInput struct {
	Principal tenant.Principal
	Rows      []ingest.RawRow
}

// Preview is what the review screen shows before the user commits an import.
type Preview struct {
	Results      []domain.ValidationResult `json:"results"`
	ValidCount   int                       `json:"valid_count"`
	InvalidCount int                       `json:"invalid_count"`
	WarningCount int                       `json:"warning_count"`
}

type PreviewAppraisals interface {
	Execute(ctx context.Context, in PreviewAppraisalsInput) (Preview, error)
}

type previewAppraisals struct{}

func NewPreviewAppraisals() PreviewAppraisals {
	return &previewAppraisals{}
}

func (uc *previewAppraisals) Execute(ctx context.Context, in PreviewAppraisalsInput) (Preview, error) {
	if err := in.Principal.Require(); err != nil {
		return Preview{}, err
	}
	results := ValidateRows(in.Rows)
	if len(results) == 0 {
		return Preview{}, ErrNoRows
	}
	return Summarize(results), nil
}

func Summarize(results []domain.ValidationResult) Preview {
	preview := Preview{Results: results}
	for _, r := range results {
		if r.Valid {
			preview.ValidCount++
		} else {
			preview.InvalidCount++
		}
		if r.HasWarnings() {
			preview.WarningCount++
		}
	}
	return preview
}
