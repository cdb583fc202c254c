package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/aakanni/portfolio-backend/config"
	"github.com/aakanni/portfolio-backend/database"
	"github.com/aakanni/portfolio-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router, err := newRouter(db, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 60)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(db database.Database, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	jwtSecret := config.GetString(router.config, "JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	tokenTTL := config.GetDuration(router.config, "TOKEN_TTL", services.DefaultTokenTTL)
	if tokenTTL <= 0 {
		tokenTTL = services.DefaultTokenTTL
	}
	tokens := services.NewTokenService(jwtSecret, tokenTTL)
	mailer := services.NewMailer(router.config)

	handlers := initializeHandlers(db, tokens, mailer)
	authMiddleware := newAuthMiddleware(tokens)

	// Two limiter tiers: a strict one on credential endpoints, a loose one on
	// everything else.
	authLimiter := newIPRateLimiter(
		config.GetDuration(router.config, "AUTH_RATE_WINDOW", 15*time.Minute),
		config.GetInt(router.config, "AUTH_RATE_MAX", 5),
	)
	apiLimiter := newIPRateLimiter(
		config.GetDuration(router.config, "API_RATE_WINDOW", 15*time.Minute),
		config.GetInt(router.config, "API_RATE_MAX", 100),
	)

	acceptedOrigins := strings.Split(config.GetString(router.config, "ACCEPTED_ORIGINS", "*"), ",")
	for i := range acceptedOrigins {
		acceptedOrigins[i] = strings.TrimSpace(acceptedOrigins[i])
	}

	uploadsDir := config.GetString(router.config, "UPLOADS_DIR", "./uploads")

	chiRouter := chi.NewRouter()
	chiRouter.Use(recoverPanics)
	chiRouter.Use(requestLogger)
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	setupRoutes(chiRouter, handlers, authMiddleware, apiLimiter, authLimiter, uploadsDir, router.startupTime)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
