package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/appraisal-import/internal/domain/run"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) Create(ctx context.Context, run domain.Run) error {
	row := models.ImportRun{
		ID:        run.ID,
		Kind:      string(run.Kind),
		TenantID:  run.TenantID,
		TeamID:    nullableText(run.TeamID),
		CreatedBy: run.CreatedBy,
		Status:    string(run.Status),
		StartedAt: run.StartedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create import run: %w", err)
	}
	return nil
}

func (r *ImportRunRepository) Finish(ctx context.Context, id string, outcome domain.Outcome) error {
	var result []byte
	if outcome.Result != nil {
		encoded, err := json.Marshal(outcome.Result)
		if err != nil {
			return fmt.Errorf("encode run result: %w", err)
		}
		result = encoded
	}

	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&models.ImportRun{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      string(outcome.Status),
			"total":       outcome.Total,
			"successful":  outcome.Successful,
			"failed":      outcome.Failed,
			"warnings":    outcome.Warnings,
			"duplicates":  outcome.Duplicates,
			"message":     nullableText(outcome.Message),
			"result":      result,
			"finished_at": now,
			"updated_at":  now,
		})
	if tx.Error != nil {
		return fmt.Errorf("finish import run: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

func (r *ImportRunRepository) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	var row models.ImportRun
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("get import run: %w", err)
	}

	run := &domain.Run{
		ID:         row.ID,
		Kind:       domain.Kind(row.Kind),
		TenantID:   row.TenantID,
		CreatedBy:  row.CreatedBy,
		Status:     domain.Status(row.Status),
		Total:      row.Total,
		Successful: row.Successful,
		Failed:     row.Failed,
		Warnings:   row.Warnings,
		Duplicates: row.Duplicates,
		Result:     row.Result,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
	}
	if row.TeamID != nil {
		run.TeamID = *row.TeamID
	}
	if row.Message != nil {
		run.Message = *row.Message
	}
	return run, nil
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
