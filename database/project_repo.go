package database

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/aakanni/portfolio-backend/models"
)

// projectSearchFields are the columns a free-text search matches against.
// The JSON list column is matched over its text form.
var projectSearchFields = []string{"title", "description", "technologies::text"}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// List returns one page of projects matching the search term and featured
// filter, newest first, plus the total match count. The page query and the
// count query run concurrently.
func (r *ProjectRepo) List(term string, featured *bool, p Pagination) ([]models.Project, int64, error) {
	filter := SearchFilter{Term: term, Fields: projectSearchFields, Featured: featured}

	var projects []models.Project
	var total int64

	g := new(errgroup.Group)
	g.Go(func() error {
		return r.db.Scopes(filter.Scope).
			Order("created_at DESC").
			Limit(p.Limit).
			Offset(p.Skip).
			Find(&projects).Error
	})
	g.Go(func() error {
		return r.db.Model(&models.Project{}).Scopes(filter.Scope).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Featured returns all featured projects, newest first.
func (r *ProjectRepo) Featured() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("featured = ?", true).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when it does not exist.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update persists an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
