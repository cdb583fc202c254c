package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Publication represents a published paper or article
type Publication struct {
	ID              uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title           string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Journal         string                      `json:"journal" db:"journal" gorm:"type:text;not null"`
	PublicationDate time.Time                   `json:"publicationDate" db:"publication_date" gorm:"type:timestamp;not null"`
	DOI             string                      `json:"doi" db:"doi" gorm:"type:text;not null;unique"`
	Abstract        string                      `json:"abstract" db:"abstract" gorm:"type:text;not null"`
	Keywords        datatypes.JSONSlice[string] `json:"keywords" db:"keywords"`
	PDFURL          *string                     `json:"pdfUrl,omitempty" db:"pdf_url" gorm:"type:text"`
	Featured        bool                        `json:"featured" db:"featured" gorm:"not null;default:false;index"`
	CreatedAt       time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index"`
}
