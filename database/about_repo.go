package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aakanni/portfolio-backend/models"
)

type AboutRepo struct {
	db *gorm.DB
}

func NewAboutRepo(db *gorm.DB) *AboutRepo {
	return &AboutRepo{db}
}

// Latest returns the most recently updated about document, or nil when none
// has been created yet.
func (r *AboutRepo) Latest() (*models.About, error) {
	var about models.About
	err := r.db.Order("updated_at DESC").First(&about).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &about, nil
}

// Upsert overwrites the singleton document when one exists, otherwise
// creates it.
func (r *AboutRepo) Upsert(incoming *models.About) (*models.About, error) {
	existing, err := r.Latest()
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if err := r.db.Create(incoming).Error; err != nil {
			return nil, err
		}
		return incoming, nil
	}

	existing.Name = incoming.Name
	existing.Bio = incoming.Bio
	existing.Values = incoming.Values
	existing.Skills = incoming.Skills
	existing.PhotoURL = incoming.PhotoURL
	existing.UpdatedAt = time.Now()
	if err := r.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
