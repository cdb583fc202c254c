package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/aakanni/portfolio-backend/database"
	"github.com/aakanni/portfolio-backend/errs"
	"github.com/aakanni/portfolio-backend/models"
)

// projectStore is the slice of the database the project handler depends on.
type projectStore interface {
	List(term string, featured *bool, p database.Pagination) ([]models.Project, int64, error)
	Featured() ([]models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
}

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  projectStore
}

func newProjectHandler(projects projectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

type createProjectRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	ImageURL     string   `json:"imageUrl" validate:"required"`
	GithubURL    string   `json:"githubUrl" validate:"required"`
	DemoURL      string   `json:"demoUrl" validate:"required"`
	Technologies []string `json:"technologies"`
	Featured     bool     `json:"featured"`
	Status       string   `json:"status"`
}

// updateProjectRequest is the partial-update payload. Only fields present in
// the request body are applied; unknown fields are rejected at decode time.
type updateProjectRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	ImageURL     *string   `json:"imageUrl"`
	GithubURL    *string   `json:"githubUrl"`
	DemoURL      *string   `json:"demoUrl"`
	Technologies *[]string `json:"technologies"`
	Featured     *bool     `json:"featured"`
	Status       *string   `json:"status"`
}

func (u updateProjectRequest) apply(p *models.Project) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.GithubURL != nil {
		p.GithubURL = *u.GithubURL
	}
	if u.DemoURL != nil {
		p.DemoURL = *u.DemoURL
	}
	if u.Technologies != nil {
		p.Technologies = datatypes.NewJSONSlice(*u.Technologies)
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
}

// listProjects returns a page of projects, newest first, optionally filtered
// by search term and featured flag.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := parseListParams(r)

		projects, total, err := h.projects.List(params.search, params.featured, params.pagination)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, database.NewPage(projects, total, params.pagination))
	}
}

func (h projectHandler) getFeaturedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.Featured()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("list featured projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := pathUUID(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectRequest
		if apiErr := decodeJSON(r, &req, false); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}
		if apiErr := validateStruct(req); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		status := req.Status
		if status == "" {
			status = "COMPLETED"
		}

		project := models.Project{
			Title:        req.Title,
			Description:  req.Description,
			ImageURL:     req.ImageURL,
			GithubURL:    req.GithubURL,
			DemoURL:      req.DemoURL,
			Technologies: datatypes.NewJSONSlice(req.Technologies),
			Featured:     req.Featured,
			Status:       status,
		}

		if err := h.projects.Add(&project); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create project", "project", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := pathUUID(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		var req updateProjectRequest
		if apiErr := decodeJSON(r, &req, true); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		req.apply(project)

		if err := h.projects.Update(project); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := pathUUID(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		if err := h.projects.Delete(projectID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "Project deleted successfully",
		})
	}
}
