package appraisal

import (
	"context"

	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

type ExistingKeyReader interface {
	ExistingKeys(ctx context.Context, scope tenant.Scope) ([]Key, error)
}

// ChunkWriter performs one bulk insert and returns the IDs of the rows it
// actually wrote, which may be fewer than were submitted.
type ChunkWriter interface {
	InsertChunk(ctx context.Context, scope tenant.Scope, rows []Appraisal) ([]string, error)
}

type EnrichmentQueue interface {
	Enqueue(appraisalID string) bool
}
