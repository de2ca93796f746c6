// Package query contains read operations (CQRS - Queries).
// Queries shape scoped requests to the backend and assemble read models;
// they never mutate state and never duplicate server-side authorization.
package query

import (
	"context"
	"log/slog"
	"sort"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/api"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST ROADMAPS QUERY
// Ownership scoping is a query contract of the backend, not a client-side
// filter: a student caller receives only roadmaps they own.
// ══════════════════════════════════════════════════════════════════════════════

// RoadmapLister is the slice of the backend client this query needs.
type RoadmapLister interface {
	ListRoadmaps(ctx context.Context) ([]roadmap.Roadmap, error)
}

// ListRoadmapsHandler lists the caller's roadmaps.
type ListRoadmapsHandler struct {
	backend RoadmapLister
	logger  *slog.Logger
}

// NewListRoadmapsHandler creates the handler.
func NewListRoadmapsHandler(backend RoadmapLister, logger *slog.Logger) *ListRoadmapsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListRoadmapsHandler{backend: backend, logger: logger}
}

// Handle returns the roadmaps visible to the caller, newest first.
func (h *ListRoadmapsHandler) Handle(ctx context.Context) ([]roadmap.Roadmap, error) {
	roadmaps, err := h.backend.ListRoadmaps(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(roadmaps, func(i, j int) bool {
		return roadmaps[i].CreatedAt.After(roadmaps[j].CreatedAt)
	})
	return roadmaps, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LIST ALL ROADMAPS QUERY (ADMIN)
// Strictly wider than the owner-scoped listing: every roadmap in the system
// with the owning user's identity embedded per record. The backend rejects
// non-admin callers; no role check is duplicated here.
// ══════════════════════════════════════════════════════════════════════════════

// AdminRoadmapLister is the slice of the backend client this query needs.
type AdminRoadmapLister interface {
	ListAllRoadmaps(ctx context.Context) ([]api.OwnedRoadmap, error)
}

// ListAllRoadmapsHandler lists every roadmap in the system.
type ListAllRoadmapsHandler struct {
	backend AdminRoadmapLister
	logger  *slog.Logger
}

// NewListAllRoadmapsHandler creates the handler.
func NewListAllRoadmapsHandler(backend AdminRoadmapLister, logger *slog.Logger) *ListAllRoadmapsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListAllRoadmapsHandler{backend: backend, logger: logger}
}

// Handle returns all roadmaps with owners embedded, newest first.
func (h *ListAllRoadmapsHandler) Handle(ctx context.Context) ([]api.OwnedRoadmap, error) {
	owned, err := h.backend.ListAllRoadmaps(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Roadmap.CreatedAt.After(owned[j].Roadmap.CreatedAt)
	})
	return owned, nil
}
