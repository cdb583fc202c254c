package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Certificate represents a professional certification
type Certificate struct {
	ID            uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title         string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Issuer        string                      `json:"issuer" db:"issuer" gorm:"type:text;not null"`
	IssueDate     time.Time                   `json:"issueDate" db:"issue_date" gorm:"type:timestamp;not null"`
	ExpiryDate    *time.Time                  `json:"expiryDate,omitempty" db:"expiry_date" gorm:"type:timestamp"`
	CredentialURL string                      `json:"credentialUrl" db:"credential_url" gorm:"type:text;not null;unique"`
	ImageURL      string                      `json:"imageUrl" db:"image_url" gorm:"type:text;not null"`
	Description   string                      `json:"description" db:"description" gorm:"type:text;not null"`
	Skills        datatypes.JSONSlice[string] `json:"skills" db:"skills"`
	Featured      bool                        `json:"featured" db:"featured" gorm:"not null;default:false;index"`
	CreatedAt     time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index"`
}
