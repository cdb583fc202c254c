package models

import (
	"time"

	"github.com/google/uuid"
)

const RoleAdmin = "admin"

// User is an account that can authenticate against the API. In practice a
// single admin user exists after bootstrap.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	Role         string    `json:"role" db:"role" gorm:"type:text;not null;default:'admin'"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
