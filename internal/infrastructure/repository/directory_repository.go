package repository

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
	"github.com/mohammadpnp/appraisal-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type DirectoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// LoadDirectory reads the tenant's offices, teams and the emails already in use.
func (r *DirectoryRepository) LoadDirectory(ctx context.Context, tenantID string) (domain.Directory, error) {
	db := r.db.WithContext(ctx)

	var offices []models.Office
	if err := db.Where("tenant_id = ?", tenantID).Order("name").Find(&offices).Error; err != nil {
		return domain.Directory{}, fmt.Errorf("load offices: %w", err)
	}
	var teams []models.Team
	if err := db.Where("tenant_id = ?", tenantID).Order("name").Find(&teams).Error; err != nil {
		return domain.Directory{}, fmt.Errorf("load teams: %w", err)
	}
	var emails []string
	if err := db.Model(&models.Profile{}).Where("tenant_id = ?", tenantID).Pluck("lower(email)", &emails).Error; err != nil {
		return domain.Directory{}, fmt.Errorf("load profile emails: %w", err)
	}

	dir := domain.Directory{
		Offices: make([]domain.Office, 0, len(offices)),
		Teams:   make([]domain.Team, 0, len(teams)),
		Emails:  emails,
	}
	for _, o := range offices {
		dir.Offices = append(dir.Offices, domain.Office{ID: o.ID, Name: o.Name})
	}
	for _, t := range teams {
		team := domain.Team{ID: t.ID, Name: t.Name}
		if t.OfficeID != nil {
			team.OfficeID = *t.OfficeID
		}
		dir.Teams = append(dir.Teams, team)
	}
	return dir, nil
}
