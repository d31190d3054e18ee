package models

import "time"

type ImportRun struct {
	ID         string  `gorm:"type:uuid;primaryKey"`
	Kind       string  `gorm:"type:text;not null"`
	TenantID   string  `gorm:"type:uuid;not null;index"`
	TeamID     *string `gorm:"type:uuid"`
	CreatedBy  string  `gorm:"type:uuid;not null"`
	Status     string  `gorm:"type:text;not null"`
	Total      int     `gorm:"not null;default:0"`
	Successful int     `gorm:"not null;default:0"`
	Failed     int     `gorm:"not null;default:0"`
	Warnings   int     `gorm:"not null;default:0"`
	Duplicates int     `gorm:"not null;default:0"`
	Message    *string `gorm:"type:text"`
	Result     []byte  `gorm:"type:jsonb"`
	StartedAt  time.Time
	FinishedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ImportRun) TableName() string {
	return "import_runs"
}
