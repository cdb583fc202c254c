package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/aakanni/portfolio-backend/database"
	"github.com/aakanni/portfolio-backend/errs"
	"github.com/aakanni/portfolio-backend/models"
)

type publicationStore interface {
	List(term string, featured *bool, p database.Pagination) ([]models.Publication, int64, error)
	ListByTag(tag string, p database.Pagination) ([]models.Publication, int64, error)
	Featured() ([]models.Publication, error)
	FindByID(id uuid.UUID) (*models.Publication, error)
	Add(publication *models.Publication) error
	Update(publication *models.Publication) error
	Delete(id uuid.UUID) error
}

type publicationHandler struct {
	responder    Responder
	logger       zerolog.Logger
	publications publicationStore
}

func newPublicationHandler(publications publicationStore) publicationHandler {
	logger := log.With().Str("handlerName", "publicationHandler").Logger()

	return publicationHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		publications: publications,
	}
}

type createPublicationRequest struct {
	Title           string    `json:"title" validate:"required"`
	Journal         string    `json:"journal" validate:"required"`
	PublicationDate time.Time `json:"publicationDate" validate:"required"`
	DOI             string    `json:"doi" validate:"required"`
	Abstract        string    `json:"abstract" validate:"required"`
	Keywords        []string  `json:"keywords"`
	PDFURL          *string   `json:"pdfUrl" validate:"omitempty,url"`
	Featured        bool      `json:"featured"`
}

type updatePublicationRequest struct {
	Title           *string    `json:"title"`
	Journal         *string    `json:"journal"`
	PublicationDate *time.Time `json:"publicationDate"`
	DOI             *string    `json:"doi"`
	Abstract        *string    `json:"abstract"`
	Keywords        *[]string  `json:"keywords"`
	PDFURL          *string    `json:"pdfUrl" validate:"omitempty,url"`
	Featured        *bool      `json:"featured"`
}

func (u updatePublicationRequest) apply(p *models.Publication) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Journal != nil {
		p.Journal = *u.Journal
	}
	if u.PublicationDate != nil {
		p.PublicationDate = *u.PublicationDate
	}
	if u.DOI != nil {
		p.DOI = *u.DOI
	}
	if u.Abstract != nil {
		p.Abstract = *u.Abstract
	}
	if u.Keywords != nil {
		p.Keywords = datatypes.NewJSONSlice(*u.Keywords)
	}
	if u.PDFURL != nil {
		p.PDFURL = u.PDFURL
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
}

func (h publicationHandler) listPublications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := parseListParams(r)

		publications, total, err := h.publications.List(params.search, params.featured, params.pagination)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list publications", "publications", err))
			return
		}

		h.responder.WriteJSON(w, database.NewPage(publications, total, params.pagination))
	}
}

func (h publicationHandler) listPublicationsByTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := chi.URLParam(r, "tag")
		params := parseListParams(r)

		publications, total, err := h.publications.ListByTag(tag, params.pagination)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list publications by tag", "publications", err))
			return
		}

		h.responder.WriteJSON(w, database.NewPage(publications, total, params.pagination))
	}
}

func (h publicationHandler) getFeaturedPublications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publications, err := h.publications.Featured()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list featured publications", "publications", err))
			return
		}

		h.responder.WriteJSON(w, publications)
	}
}

func (h publicationHandler) getPublication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicationID, apiErr := pathUUID(r, "publicationID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		publication, err := h.publications.FindByID(publicationID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find publication", "publication", err))
			return
		}
		if publication == nil {
			h.responder.WriteError(w, errs.NewNotFound("publication"))
			return
		}

		h.responder.WriteJSON(w, publication)
	}
}

func (h publicationHandler) createPublication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPublicationRequest
		if apiErr := decodeJSON(r, &req, false); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		if apiErr := validateStruct(req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		publication := models.Publication{
			Title:           req.Title,
			Journal:         req.Journal,
			PublicationDate: req.PublicationDate,
			DOI:             req.DOI,
			Abstract:        req.Abstract,
			Keywords:        datatypes.NewJSONSlice(req.Keywords),
			PDFURL:          req.PDFURL,
			Featured:        req.Featured,
		}

		if err := h.publications.Add(&publication); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create publication", "publication", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, publication)
	}
}

func (h publicationHandler) updatePublication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicationID, apiErr := pathUUID(r, "publicationID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		publication, err := h.publications.FindByID(publicationID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find publication", "publication", err))
			return
		}
		if publication == nil {
			h.responder.WriteError(w, errs.NewNotFound("publication"))
			return
		}

		var req updatePublicationRequest
		if apiErr := decodeJSON(r, &req, true); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		if apiErr := validateStruct(req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		req.apply(publication)

		if err := h.publications.Update(publication); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update publication", "publication", err))
			return
		}

		h.responder.WriteJSON(w, publication)
	}
}

func (h publicationHandler) deletePublication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicationID, apiErr := pathUUID(r, "publicationID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		publication, err := h.publications.FindByID(publicationID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find publication", "publication", err))
			return
		}
		if publication == nil {
			h.responder.WriteError(w, errs.NewNotFound("publication"))
			return
		}

		if err := h.publications.Delete(publicationID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete publication", "publication", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Publication deleted successfully",
		})
	}
}
