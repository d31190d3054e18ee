package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
)

const sqlStateInsufficientPrivilege = "42501"

var stagingColumns = []string{
	"batch_id", "row_index", "address", "suburb", "appraisal_date", "follow_up_date",
	"stage", "property_type", "vendor_name", "vendor_phone", "vendor_email",
	"estimated_value", "bedrooms", "bathrooms", "notes",
}

// AppraisalChunkRepository writes one chunk per transaction: COPY into the
// staging table, then a single set-based insert that skips rows colliding
// with the natural-key index.
type AppraisalChunkRepository struct {
	pool *pgxpool.Pool
}

func NewAppraisalChunkRepository(pool *pgxpool.Pool) *AppraisalChunkRepository {
	return &AppraisalChunkRepository{pool: pool}
}

func (r *AppraisalChunkRepository) InsertChunk(ctx context.Context, scope tenant.Scope, rows []domain.Appraisal) ([]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	batchID := uuid.NewString()
	staged := make([][]any, 0, len(rows))
	for i, row := range rows {
		appraisalDate, err := dateValue(row.AppraisalDate)
		if err != nil || appraisalDate == nil {
			return nil, fmt.Errorf("row %d: invalid appraisal date", i)
		}
		followUp, err := dateValue(row.FollowUpDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid follow-up date: %w", i, err)
		}
		staged = append(staged, []any{
			batchID, int64(i), row.Address, row.Suburb, appraisalDate, followUp,
			row.Stage, row.PropertyType, row.VendorName, row.VendorPhone, row.VendorEmail,
			row.EstimatedValue, row.Bedrooms, row.Bathrooms, row.Notes,
		})
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, classifyWriteError(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx)

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"stg_appraisals"}, stagingColumns, pgx.CopyFromRows(staged)); err != nil {
		return nil, classifyWriteError(fmt.Errorf("copy appraisals staging: %w", err))
	}

	ids, err := insertStagedAppraisals(ctx, tx, batchID, scope)
	if err != nil {
		return nil, classifyWriteError(err)
	}

	if _, err := tx.Exec(ctx, "DELETE FROM stg_appraisals WHERE batch_id = $1", batchID); err != nil {
		return nil, classifyWriteError(fmt.Errorf("cleanup stg_appraisals: %w", err))
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, classifyWriteError(fmt.Errorf("commit appraisal chunk: %w", err))
	}
	return ids, nil
}

func insertStagedAppraisals(ctx context.Context, tx pgx.Tx, batchID string, scope tenant.Scope) ([]string, error) {
	rows, err := tx.Query(ctx, `
INSERT INTO appraisals (
  tenant_id, team_id, created_by, address, suburb, appraisal_date, follow_up_date,
  stage, property_type, vendor_name, vendor_phone, vendor_email,
  estimated_value, bedrooms, bathrooms, notes, created_at
)
SELECT
  $2::uuid, $3::uuid, $4::uuid, address, suburb, appraisal_date, follow_up_date,
  stage, property_type, vendor_name, vendor_phone, vendor_email,
  estimated_value, bedrooms, bathrooms, notes, NOW()
FROM stg_appraisals
WHERE batch_id = $1
ORDER BY row_index
ON CONFLICT DO NOTHING
RETURNING id::text
`, batchID, scope.TenantID, scope.TeamID, scope.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("insert appraisals: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("insert appraisals: %w", err)
	}
	return ids, nil
}

// classifyWriteError marks privilege and row-level security rejections so
// the importer can word them for the user.
func classifyWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateInsufficientPrivilege {
		return fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
	}
	return err
}

func dateValue(value *string) (any, error) {
	if value == nil {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		return nil, err
	}
	return t, nil
}
