package models

import "time"

type Appraisal struct {
	ID             string   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TenantID       string   `gorm:"type:uuid;not null;index"`
	TeamID         string   `gorm:"type:uuid;not null"`
	CreatedBy      string   `gorm:"type:uuid;not null"`
	Address        string   `gorm:"type:text;not null"`
	Suburb         *string  `gorm:"type:text"`
	AppraisalDate  string   `gorm:"type:date;not null"`
	FollowUpDate   *string  `gorm:"type:date"`
	Stage          string   `gorm:"type:text;not null"`
	PropertyType   string   `gorm:"type:text;not null"`
	VendorName     *string  `gorm:"type:text"`
	VendorPhone    *string  `gorm:"type:text"`
	VendorEmail    *string  `gorm:"type:text"`
	EstimatedValue *float64 `gorm:"type:double precision"`
	Bedrooms       *int
	Bathrooms      *int
	Notes          *string `gorm:"type:text"`
	Latitude       *float64
	Longitude      *float64
	CreatedAt      time.Time
}

func (Appraisal) TableName() string {
	return "appraisals"
}

// AppraisalKey is the minimal projection read for duplicate detection.
type AppraisalKey struct {
	Address       string
	AppraisalDate string
}
