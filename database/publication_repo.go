package database

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/aakanni/portfolio-backend/models"
)

var publicationSearchFields = []string{"title", "journal", "abstract", "keywords::text"}

type PublicationRepo struct {
	db *gorm.DB
}

func NewPublicationRepo(db *gorm.DB) *PublicationRepo {
	return &PublicationRepo{db}
}

// List returns one page of publications matching the search term and featured
// filter, newest first, plus the total match count.
func (r *PublicationRepo) List(term string, featured *bool, p Pagination) ([]models.Publication, int64, error) {
	filter := SearchFilter{Term: term, Fields: publicationSearchFields, Featured: featured}
	return r.list(filter, p)
}

// ListByTag returns publications whose keyword list contains the given value,
// case-insensitively, paginated newest first.
func (r *PublicationRepo) ListByTag(tag string, p Pagination) ([]models.Publication, int64, error) {
	filter := SearchFilter{Term: tag, Fields: []string{"keywords::text"}}
	return r.list(filter, p)
}

func (r *PublicationRepo) list(filter SearchFilter, p Pagination) ([]models.Publication, int64, error) {
	var publications []models.Publication
	var total int64

	g := new(errgroup.Group)
	g.Go(func() error {
		return r.db.Scopes(filter.Scope).
			Order("created_at DESC").
			Limit(p.Limit).
			Offset(p.Skip).
			Find(&publications).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Publication{}).Scopes(filter.Scope).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return publications, total, nil
}

// Featured returns all featured publications, newest first.
func (r *PublicationRepo) Featured() ([]models.Publication, error) {
	var publications []models.Publication
	err := r.db.Where("featured = ?", true).Order("created_at DESC").Find(&publications).Error
	return publications, err
}

// FindByID returns a publication by its ID, or nil when it does not exist.
func (r *PublicationRepo) FindByID(id uuid.UUID) (*models.Publication, error) {
	var publication models.Publication
	err := r.db.First(&publication, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &publication, nil
}

// Add inserts a new publication. The unique index on doi rejects duplicates
// at the store.
func (r *PublicationRepo) Add(publication *models.Publication) error {
	return r.db.Create(publication).Error
}

func (r *PublicationRepo) Update(publication *models.Publication) error {
	return r.db.Save(publication).Error
}

func (r *PublicationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Publication{}, "id = ?", id).Error
}
