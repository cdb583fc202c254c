package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/aakanni/portfolio-backend/errs"
	"github.com/aakanni/portfolio-backend/models"
)

type aboutStore interface {
	Latest() (*models.About, error)
	Upsert(incoming *models.About) (*models.About, error)
}

type aboutHandler struct {
	responder Responder
	logger    zerolog.Logger
	about     aboutStore
}

func newAboutHandler(about aboutStore) aboutHandler {
	logger := log.With().Str("handlerName", "aboutHandler").Logger()

	return aboutHandler{
		responder: NewResponder(logger),
		logger:    logger,
		about:     about,
	}
}

type upsertAboutRequest struct {
	Name     string   `json:"name" validate:"required"`
	Bio      string   `json:"bio" validate:"required"`
	Values   string   `json:"values" validate:"required"`
	Skills   []string `json:"skills"`
	PhotoURL string   `json:"photoUrl"`
}

// getAbout returns the latest about document, or null when none has been
// written yet.
func (h aboutHandler) getAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		about, err := h.about.Latest()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find about", "about", err))
			return
		}

		h.responder.WriteJSON(w, about)
	}
}

// upsertAbout creates or overwrites the singleton about document.
func (h aboutHandler) upsertAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertAboutRequest
		if apiErr := decodeJSON(r, &req, false); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		if apiErr := validateStruct(req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		about, err := h.about.Upsert(&models.About{
			Name:     req.Name,
			Bio:      req.Bio,
			Values:   req.Values,
			Skills:   datatypes.NewJSONSlice(req.Skills),
			PhotoURL: req.PhotoURL,
		})
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("upsert about", "about", err))
			return
		}

		h.responder.WriteJSON(w, about)
	}
}
