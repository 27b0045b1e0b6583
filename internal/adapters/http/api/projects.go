package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artamananda/portfolio/internal/domain/catalog"
	"github.com/artamananda/portfolio/internal/domain/model"
)

// ProjectDependencies defines the interface for catalog reads.
type ProjectDependencies interface {
	Projects(ctx context.Context) []model.Project
	Project(ctx context.Context, slug string) (model.Project, error)
}

// ProjectsHandler serves the project listing.
type ProjectsHandler struct {
	deps ProjectDependencies
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(deps ProjectDependencies) *ProjectsHandler {
	return &ProjectsHandler{deps: deps}
}

// HandleListProjects handles GET /api/projects requests.
func (h *ProjectsHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	projects := h.deps.Projects(r.Context())
	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = projectResponse{Slug: p.Slug(), Project: p}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetProject handles GET /api/projects/{slug} requests.
func (h *ProjectsHandler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_project"

	slug := chi.URLParam(r, "slug")
	p, err := h.deps.Project(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, projectResponse{Slug: p.Slug(), Project: p})
}
