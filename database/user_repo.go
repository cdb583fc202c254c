package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aakanni/portfolio-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by id, or nil when it does not exist.
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	return r.findOne("id = ?", id)
}

// FindByEmail returns a user by email, or nil when it does not exist.
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	return r.findOne("email = ?", email)
}

// FindAdmin returns the admin user, or nil when none has been registered.
func (r *UserRepo) FindAdmin() (*models.User, error) {
	return r.findOne("role = ?", models.RoleAdmin)
}

func (r *UserRepo) findOne(cond string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, cond, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Taken reports whether a user with the given email or username exists.
func (r *UserRepo) Taken(email, username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// Count returns the total number of registered users.
func (r *UserRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
