package database

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/aakanni/portfolio-backend/models"
)

var certificateSearchFields = []string{"title", "issuer", "description", "skills::text"}

type CertificateRepo struct {
	db *gorm.DB
}

func NewCertificateRepo(db *gorm.DB) *CertificateRepo {
	return &CertificateRepo{db}
}

// List returns one page of certificates matching the search term and featured
// filter, newest first, plus the total match count.
func (r *CertificateRepo) List(term string, featured *bool, p Pagination) ([]models.Certificate, int64, error) {
	filter := SearchFilter{Term: term, Fields: certificateSearchFields, Featured: featured}
	return r.list(filter, p)
}

// ListBySkill returns certificates whose skill list contains the given value,
// case-insensitively, paginated newest first.
func (r *CertificateRepo) ListBySkill(skill string, p Pagination) ([]models.Certificate, int64, error) {
	filter := SearchFilter{Term: skill, Fields: []string{"skills::text"}}
	return r.list(filter, p)
}

func (r *CertificateRepo) list(filter SearchFilter, p Pagination) ([]models.Certificate, int64, error) {
	var certificates []models.Certificate
	var total int64

	g := new(errgroup.Group)
	g.Go(func() error {
		return r.db.Scopes(filter.Scope).
			Order("created_at DESC").
			Limit(p.Limit).
			Offset(p.Skip).
			Find(&certificates).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Certificate{}).Scopes(filter.Scope).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return certificates, total, nil
}

// Featured returns all featured certificates, newest first.
func (r *CertificateRepo) Featured() ([]models.Certificate, error) {
	var certificates []models.Certificate
	err := r.db.Where("featured = ?", true).Order("created_at DESC").Find(&certificates).Error
	return certificates, err
}

// FindByID returns a certificate by its ID, or nil when it does not exist.
func (r *CertificateRepo) FindByID(id uuid.UUID) (*models.Certificate, error) {
	var certificate models.Certificate
	err := r.db.First(&certificate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// Add inserts a new certificate. The unique index on credential_url rejects
// duplicates at the store.
func (r *CertificateRepo) Add(certificate *models.Certificate) error {
	return r.db.Create(certificate).Error
}

func (r *CertificateRepo) Update(certificate *models.Certificate) error {
	return r.db.Save(certificate).Error
}

func (r *CertificateRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Certificate{}, "id = ?", id).Error
}
