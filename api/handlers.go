package api

import (
	"github.com/aakanni/portfolio-backend/database"
	"github.com/aakanni/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens *services.TokenService, mailer services.Mailer) *routeHandlers {
	return &routeHandlers{
		projectHandler:     newProjectHandler(db.ProjectRepo()),
		certificateHandler: newCertificateHandler(db.CertificateRepo()),
		publicationHandler: newPublicationHandler(db.PublicationRepo()),
		blogPostHandler:    newBlogPostHandler(db.BlogPostRepo()),
		aboutHandler:       newAboutHandler(db.AboutRepo()),
		authHandler:        newAuthHandler(db.UserRepo(), tokens),
		contactHandler:     newContactHandler(mailer),
	}
}
