package query

import (
	"context"
	"log/slog"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/api"
)

// ══════════════════════════════════════════════════════════════════════════════
// RESOLVE SHARE QUERY
// Anonymous read-only access to a public roadmap by its opaque token. The
// visitor has no identity, so the view carries no progress. A token revoked
// by a visibility toggle resolves to NotFound, never to a generic error.
// ══════════════════════════════════════════════════════════════════════════════

// ShareResolver is the slice of the backend client this query needs.
type ShareResolver interface {
	ResolveShared(ctx context.Context, token string) (*api.SharedRoadmap, error)
}

// ResolveShareHandler resolves share tokens for anonymous visitors.
type ResolveShareHandler struct {
	backend ShareResolver
	logger  *slog.Logger
}

// NewResolveShareHandler creates the handler.
func NewResolveShareHandler(backend ShareResolver, logger *slog.Logger) *ResolveShareHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResolveShareHandler{backend: backend, logger: logger}
}

// Handle resolves the token into the read-only roadmap view.
func (h *ResolveShareHandler) Handle(ctx context.Context, token string) (*api.SharedRoadmap, error) {
	if token == "" {
		return nil, shared.NewDomainError("sharing", "Resolve", shared.ErrInvalidID,
			"share token is required")
	}

	view, err := h.backend.ResolveShared(ctx, token)
	if err != nil {
		return nil, err
	}
	return view, nil
}
