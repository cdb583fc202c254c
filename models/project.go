package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project represents a portfolio project entry
type Project struct {
	ID           uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string                      `json:"description" db:"description" gorm:"type:text;not null"`
	ImageURL     string                      `json:"imageUrl" db:"image_url" gorm:"type:text;not null"`
	GithubURL    string                      `json:"githubUrl" db:"github_url" gorm:"type:text;not null"`
	DemoURL      string                      `json:"demoUrl" db:"demo_url" gorm:"type:text;not null"`
	Technologies datatypes.JSONSlice[string] `json:"technologies" db:"technologies"`
	Featured     bool                        `json:"featured" db:"featured" gorm:"not null;default:false;index"`
	Status       string                      `json:"status" db:"status" gorm:"type:text;not null;default:'COMPLETED'"`
	CreatedAt    time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index"`
}
