// Package model holds the GORM persistence models.
package model

import (
	"time"
)

// ProfileModel mirrors the 'profiles' table. ID is the identity-provider uid.
type ProfileModel struct {
	ID                    string     `gorm:"type:text;primaryKey"`
	Email                 string     `gorm:"type:varchar(255);not null"`
	RequiresPasswordReset bool       `gorm:"not null;default:false"`
	TemporaryPasswordHash *string    `gorm:"type:text"`
	TempPasswordExpiresAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
