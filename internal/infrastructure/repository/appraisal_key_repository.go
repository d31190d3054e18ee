package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/appraisal-import/internal/domain/appraisal"
	"github.com/mohammadpnp/appraisal-import/internal/domain/tenant"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

var errTeamScopeRequired = errors.New("team scope is required")

type AppraisalKeyRepository struct {
	db *gorm.DB
}

func NewAppraisalKeyRepository(db *gorm.DB) *AppraisalKeyRepository {
	return &AppraisalKeyRepository{db: db}
}

// ExistingKeys reads only the natural-key columns of the team's appraisals.
func (r *AppraisalKeyRepository) ExistingKeys(ctx context.Context, scope tenant.Scope) ([]domain.Key, error) {
	if scope.TeamID == "" {
		return nil, errTeamScopeRequired
	}

	var rows []models.AppraisalKey
	err := r.db.WithContext(ctx).
		Model(&models.Appraisal{}).
		Select("address, to_char(appraisal_date, 'YYYY-MM-DD') AS appraisal_date").
		Where("tenant_id = ? AND team_id = ?", scope.TenantID, scope.TeamID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("read appraisal keys: %w", err)
	}

	keys := make([]domain.Key, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, domain.Key{Address: row.Address, AppraisalDate: row.AppraisalDate})
	}
	return keys, nil
}
