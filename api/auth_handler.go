package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/aakanni/portfolio-backend/errs"
	"github.com/aakanni/portfolio-backend/models"
	"github.com/aakanni/portfolio-backend/services"
)

type userStore interface {
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindAdmin() (*models.User, error)
	Taken(email, username string) (bool, error)
	Add(user *models.User) error
	Count() (int64, error)
}

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     userStore
	tokens    *services.TokenService
}

func newAuthHandler(users userStore, tokens *services.TokenService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		tokens:    tokens,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// userResponse is the public projection of a user; the password hash never
// leaves the server.
type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// login exchanges email+password for a signed bearer token. An unknown email
// and a wrong password produce the same response so the endpoint cannot be
// used to enumerate accounts.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if apiErr := decodeJSON(r, &req, false); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		if apiErr := validateStruct(req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		user, err := h.users.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid credentials"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid credentials"))
			return
		}

		token, err := h.tokens.Issue(user.ID.String(), user.Role)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign token")
			h.responder.WriteError(w, errs.NewInternalError("Failed to issue token"))
			return
		}

		h.responder.WriteJSON(w, authResponse{Token: token, User: newUserResponse(user)})
	}
}

// register bootstraps the first admin account. Once an admin exists the
// endpoint is permanently closed.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if apiErr := decodeJSON(r, &req, false); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		if apiErr := validateStruct(req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		admin, err := h.users.FindAdmin()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find admin", "user", err))
			return
		}
		if admin != nil {
			h.responder.WriteError(w, errs.NewForbiddenError("Admin already exists"))
			return
		}

		taken, err := h.users.Taken(req.Email, req.Username)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find user", "user", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewBadRequestError("User already exists"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to hash password")
			h.responder.WriteError(w, errs.NewInternalError("Failed to create user"))
			return
		}

		user := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}
		if err := h.users.Add(&user); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create user", "user", err))
			return
		}

		token, err := h.tokens.Issue(user.ID.String(), user.Role)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign token")
			h.responder.WriteError(w, errs.NewInternalError("Failed to issue token"))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, authResponse{Token: token, User: newUserResponse(&user)})
	}
}

// me returns the authenticated user.
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(ctxUserID(r.Context()))
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		user, dbErr := h.users.FindByID(userID)
		if dbErr != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find user", "user", dbErr))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		h.responder.WriteJSON(w, newUserResponse(user))
	}
}

// usersCount is public; the frontend uses it to decide whether the
// registration form should be offered.
func (h authHandler) usersCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := h.users.Count()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("count users", "users", err))
			return
		}

		h.responder.WriteJSON(w, map[string]int64{"count": count})
	}
}
