package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes mounts the public API. Collection reads are open; every
// mutation except blog engagement (likes, reads, comments) requires an
// authenticated admin.
//
// The two limiters are disjoint: credential endpoints consume only the
// strict budget, everything else only the general one.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, apiLimiter, authLimiter *ipRateLimiter, uploadsDir string, startupTime time.Time) {
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.middleware)
			r.Post("/auth/login", handlers.authHandler.login())
			r.Post("/auth/register", handlers.authHandler.register())
		})

		r.Group(func(r chi.Router) {
			r.Use(apiLimiter.middleware)

			r.Get("/health", healthCheck(startupTime))

			r.Get("/auth/users/count", handlers.authHandler.usersCount())
			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.Get("/auth/me", handlers.authHandler.me())
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", handlers.projectHandler.listProjects())
				r.Get("/featured", handlers.projectHandler.getFeaturedProjects())
				r.Get("/{projectID}", handlers.projectHandler.getProject())

				r.Group(func(r chi.Router) {
					r.Use(auth.authenticate, auth.requireAdmin)
					r.Post("/", handlers.projectHandler.createProject())
					r.Patch("/{projectID}", handlers.projectHandler.updateProject())
					r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
				})
			})

			r.Route("/certificates", func(r chi.Router) {
				r.Get("/", handlers.certificateHandler.listCertificates())
				r.Get("/featured", handlers.certificateHandler.getFeaturedCertificates())
				r.Get("/skill/{skill}", handlers.certificateHandler.listCertificatesBySkill())
				r.Get("/{certificateID}", handlers.certificateHandler.getCertificate())

				r.Group(func(r chi.Router) {
					r.Use(auth.authenticate, auth.requireAdmin)
					r.Post("/", handlers.certificateHandler.createCertificate())
					r.Patch("/{certificateID}", handlers.certificateHandler.updateCertificate())
					r.Delete("/{certificateID}", handlers.certificateHandler.deleteCertificate())
				})
			})

			r.Route("/publications", func(r chi.Router) {
				r.Get("/", handlers.publicationHandler.listPublications())
				r.Get("/featured", handlers.publicationHandler.getFeaturedPublications())
				r.Get("/tag/{tag}", handlers.publicationHandler.listPublicationsByTag())
				r.Get("/{publicationID}", handlers.publicationHandler.getPublication())

				r.Group(func(r chi.Router) {
					r.Use(auth.authenticate, auth.requireAdmin)
					r.Post("/", handlers.publicationHandler.createPublication())
					r.Patch("/{publicationID}", handlers.publicationHandler.updatePublication())
					r.Delete("/{publicationID}", handlers.publicationHandler.deletePublication())
				})
			})

			r.Route("/blog", func(r chi.Router) {
				r.Get("/", handlers.blogPostHandler.listPosts())
				r.Get("/featured", handlers.blogPostHandler.getFeaturedPosts())
				r.Get("/category/{category}", handlers.blogPostHandler.listPostsByCategory())
				r.Get("/tag/{tag}", handlers.blogPostHandler.listPostsByTag())
				r.Get("/{postID}", handlers.blogPostHandler.getPost())

				// Engagement endpoints are public; the voter identity is the
				// caller-supplied userId or the client IP.
				r.Post("/{postID}/like", handlers.blogPostHandler.toggleLike())
				r.Post("/{postID}/read", handlers.blogPostHandler.recordRead())
				r.Post("/{postID}/comment", handlers.blogPostHandler.addComment())
				r.Get("/{postID}/comments", handlers.blogPostHandler.listComments())

				r.Group(func(r chi.Router) {
					r.Use(auth.authenticate)
					r.Delete("/{postID}/comment/{commentID}", handlers.blogPostHandler.deleteComment())
				})

				r.Group(func(r chi.Router) {
					r.Use(auth.authenticate, auth.requireAdmin)
					r.Post("/", handlers.blogPostHandler.createPost())
					r.Patch("/{postID}", handlers.blogPostHandler.updatePost())
					r.Delete("/{postID}", handlers.blogPostHandler.deletePost())
				})
			})

			r.Route("/about", func(r chi.Router) {
				r.Get("/", handlers.aboutHandler.getAbout())

				r.Group(func(r chi.Router) {
					r.Use(auth.authenticate, auth.requireAdmin)
					r.Post("/", handlers.aboutHandler.upsertAbout())
				})
			})

			r.Post("/contact", handlers.contactHandler.sendMessage())
		})
	})

	// Uploaded assets (project screenshots, profile photos) are served
	// directly off disk.
	fileServer := http.FileServer(http.Dir(uploadsDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))
}

func healthCheck(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthCheck").Logger())

	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]any{
			"status": "ok",
			"uptime": time.Since(startupTime).String(),
		})
	}
}
