package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// About is the singleton profile document shown on the about page.
// Values is a delimited string, matching the shape the admin UI edits.
type About struct {
	ID        uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string                      `json:"name" db:"name" gorm:"type:text;not null"`
	Bio       string                      `json:"bio" db:"bio" gorm:"type:text;not null"`
	Values    string                      `json:"values" db:"values" gorm:"type:text;not null"`
	Skills    datatypes.JSONSlice[string] `json:"skills" db:"skills"`
	PhotoURL  string                      `json:"photoUrl" db:"photo_url" gorm:"type:text;not null;default:''"`
	CreatedAt time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time                   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
