// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artamananda/portfolio/internal/domain/model"
	"github.com/artamananda/portfolio/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	UsageDependencies
	ProjectDependencies
	ProfileDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	usageHandler    *UsageHandler
	projectsHandler *ProjectsHandler
	profileHandler  *ProfileHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	if log == nil {
		log = logger.New(io.Discard)
	}
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		usageHandler:    NewUsageHandler(deps, log),
		projectsHandler: NewProjectsHandler(deps),
		profileHandler:  NewProfileHandler(deps),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/usage", MetricsMiddleware(s.usageHandler.HandleGetUsage, "usage"))
		r.Get("/projects", MetricsMiddleware(s.projectsHandler.HandleListProjects, "projects"))
		r.Get("/projects/{slug}", MetricsMiddleware(s.projectsHandler.HandleGetProject, "project"))
		r.Get("/profile", MetricsMiddleware(s.profileHandler.HandleGetProfile, "profile"))
	})
}

// projectResponse adds the lookup key to a listed project.
type projectResponse struct {
	Slug string `json:"slug"`
	model.Project
}

// profileResponse adds the composed name and renderable links to the profile.
type profileResponse struct {
	model.Profile
	Name  string             `json:"name"`
	Links []model.SocialLink `json:"links"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
