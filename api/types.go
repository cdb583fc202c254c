package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aakanni/portfolio-backend/database"
	"github.com/aakanni/portfolio-backend/errs"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler     projectHandler
	certificateHandler certificateHandler
	publicationHandler publicationHandler
	blogPostHandler    blogPostHandler
	aboutHandler       aboutHandler
	authHandler        authHandler
	contactHandler     contactHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// listParams holds the common query parameters of a collection listing.
type listParams struct {
	pagination database.Pagination
	search     string
	featured   *bool
}

func parseListParams(r *http.Request) listParams {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))

	var featured *bool
	if raw := q.Get("featured"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			featured = &v
		}
	}

	return listParams{
		pagination: database.NewPagination(page, size),
		search:     q.Get("search"),
		featured:   featured,
	}
}

// pathUUID extracts and parses a uuid-typed URL parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, *errs.ApiErr) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError(fmt.Sprintf("missing %s", name))
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}
