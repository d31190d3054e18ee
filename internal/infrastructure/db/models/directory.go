package models

type Office struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	TenantID string `gorm:"type:uuid;not null;index"`
	Name     string `gorm:"type:text;not null"`
}

func (Office) TableName() string {
	return "offices"
}

type Team struct {
	ID       string  `gorm:"type:uuid;primaryKey"`
	TenantID string  `gorm:"type:uuid;not null;index"`
	OfficeID *string `gorm:"type:uuid"`
	Name     string  `gorm:"type:text;not null"`
}

func (Team) TableName() string {
	return "teams"
}

type Profile struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	TenantID string `gorm:"type:uuid;not null;index"`
	Email    string `gorm:"type:text;not null"`
}

func (Profile) TableName() string {
	return "profiles"
}
