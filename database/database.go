package database

import (
	"gorm.io/gorm"
)

// Database aggregates one repository per entity over a shared GORM instance.
// It is constructed once at startup and threaded through the API layer
// explicitly; nothing in this package holds global state.
type Database struct {
	projectRepo     *ProjectRepo
	certificateRepo *CertificateRepo
	publicationRepo *PublicationRepo
	blogPostRepo    *BlogPostRepo
	aboutRepo       *AboutRepo
	userRepo        *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:     NewProjectRepo(db),
		certificateRepo: NewCertificateRepo(db),
		publicationRepo: NewPublicationRepo(db),
		blogPostRepo:    NewBlogPostRepo(db),
		aboutRepo:       NewAboutRepo(db),
		userRepo:        NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CertificateRepo() *CertificateRepo {
	return d.certificateRepo
}

func (d Database) PublicationRepo() *PublicationRepo {
	return d.publicationRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) AboutRepo() *AboutRepo {
	return d.aboutRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}
