package model

import (
	"time"
)

// CredentialModel mirrors the 'user_credentials' table used by the local identity provider.
type CredentialModel struct {
	UserID       string `gorm:"type:text;primaryKey"`
	Email        string `gorm:"type:varchar(255);not null"`
	PasswordHash string `gorm:"type:text;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "user_credentials"
}
