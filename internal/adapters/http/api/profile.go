package api

import (
	"context"
	"net/http"

	"github.com/artamananda/portfolio/internal/domain/model"
)

// ProfileDependencies defines the interface for the author profile.
type ProfileDependencies interface {
	Profile(ctx context.Context) model.Profile
}

// ProfileHandler serves the author profile.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleGetProfile handles GET /api/profile requests.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	p := h.deps.Profile(r.Context())
	writeJSON(w, http.StatusOK, profileResponse{
		Profile: p,
		Name:    p.Name(),
		Links:   p.Social.Links(),
	})
}
