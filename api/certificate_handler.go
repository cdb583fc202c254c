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

type certificateStore interface {
	List(term string, featured *bool, p database.Pagination) ([]models.Certificate, int64, error)
	ListBySkill(skill string, p database.Pagination) ([]models.Certificate, int64, error)
	Featured() ([]models.Certificate, error)
	FindByID(id uuid.UUID) (*models.Certificate, error)
	Add(certificate *models.Certificate) error
	Update(certificate *models.Certificate) error
	Delete(id uuid.UUID) error
}

type certificateHandler struct {
	responder    Responder
	logger       zerolog.Logger
	certificates certificateStore
}

func newCertificateHandler(certificates certificateStore) certificateHandler {
	logger := log.With().Str("handlerName", "certificateHandler").Logger()

	return certificateHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		certificates: certificates,
	}
}

type createCertificateRequest struct {
	Title         string     `json:"title" validate:"required"`
	Issuer        string     `json:"issuer" validate:"required"`
	IssueDate     time.Time  `json:"issueDate" validate:"required"`
	ExpiryDate    *time.Time `json:"expiryDate"`
	CredentialURL string     `json:"credentialUrl" validate:"required"`
	ImageURL      string     `json:"imageUrl" validate:"required"`
	Description   string     `json:"description" validate:"required"`
	Skills        []string   `json:"skills"`
	Featured      bool       `json:"featured"`
}

type updateCertificateRequest struct {
	Title         *string    `json:"title"`
	Issuer        *string    `json:"issuer"`
	IssueDate     *time.Time `json:"issueDate"`
	ExpiryDate    *time.Time `json:"expiryDate"`
	CredentialURL *string    `json:"credentialUrl"`
	ImageURL      *string    `json:"imageUrl"`
	Description   *string    `json:"description"`
	Skills        *[]string  `json:"skills"`
	Featured      *bool      `json:"featured"`
}

func (u updateCertificateRequest) apply(c *models.Certificate) {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Issuer != nil {
		c.Issuer = *u.Issuer
	}
	if u.IssueDate != nil {
		c.IssueDate = *u.IssueDate
	}
	if u.ExpiryDate != nil {
		c.ExpiryDate = u.ExpiryDate
	}
	if u.CredentialURL != nil {
		c.CredentialURL = *u.CredentialURL
	}
	if u.ImageURL != nil {
		c.ImageURL = *u.ImageURL
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Skills != nil {
		c.Skills = datatypes.NewJSONSlice(*u.Skills)
	}
	if u.Featured != nil {
		c.Featured = *u.Featured
	}
}

func (h certificateHandler) listCertificates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := parseListParams(r)

		certificates, total, err := h.certificates.List(params.search, params.featured, params.pagination)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list certificates", "certificates", err))
			return
		}

		h.responder.WriteJSON(w, database.NewPage(certificates, total, params.pagination))
	}
}

func (h certificateHandler) listCertificatesBySkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skill := chi.URLParam(r, "skill")
		params := parseListParams(r)

		certificates, total, err := h.certificates.ListBySkill(skill, params.pagination)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list certificates by skill", "certificates", err))
			return
		}

		h.responder.WriteJSON(w, database.NewPage(certificates, total, params.pagination))
	}
}

func (h certificateHandler) getFeaturedCertificates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificates, err := h.certificates.Featured()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list featured certificates", "certificates", err))
			return
		}

		h.responder.WriteJSON(w, certificates)
	}
}

func (h certificateHandler) getCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, apiErr := pathUUID(r, "certificateID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		certificate, err := h.certificates.FindByID(certificateID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find certificate", "certificate", err))
			return
		}
		if certificate == nil {
			h.responder.WriteError(w, errs.NewNotFound("certificate"))
			return
		}

		h.responder.WriteJSON(w, certificate)
	}
}

func (h certificateHandler) createCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCertificateRequest
		if apiErr := decodeJSON(r, &req, false); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		if apiErr := validateStruct(req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		certificate := models.Certificate{
			Title:         req.Title,
			Issuer:        req.Issuer,
			IssueDate:     req.IssueDate,
			ExpiryDate:    req.ExpiryDate,
			CredentialURL: req.CredentialURL,
			ImageURL:      req.ImageURL,
			Description:   req.Description,
			Skills:        datatypes.NewJSONSlice(req.Skills),
			Featured:      req.Featured,
		}

		if err := h.certificates.Add(&certificate); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create certificate", "certificate", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, certificate)
	}
}

func (h certificateHandler) updateCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, apiErr := pathUUID(r, "certificateID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		certificate, err := h.certificates.FindByID(certificateID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find certificate", "certificate", err))
			return
		}
		if certificate == nil {
			h.responder.WriteError(w, errs.NewNotFound("certificate"))
			return
		}

		var req updateCertificateRequest
		if apiErr := decodeJSON(r, &req, true); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		req.apply(certificate)

		if err := h.certificates.Update(certificate); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update certificate", "certificate", err))
			return
		}

		h.responder.WriteJSON(w, certificate)
	}
}

func (h certificateHandler) deleteCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificateID, apiErr := pathUUID(r, "certificateID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		certificate, err := h.certificates.FindByID(certificateID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find certificate", "certificate", err))
			return
		}
		if certificate == nil {
			h.responder.WriteError(w, errs.NewNotFound("certificate"))
			return
		}

		if err := h.certificates.Delete(certificateID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete certificate", "certificate", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Certificate deleted successfully",
		})
	}
}
