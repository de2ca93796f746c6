package query

import (
	"context"
	"log/slog"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/progress"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
)

// ══════════════════════════════════════════════════════════════════════════════
// VIEW ROADMAP QUERY
// Assembles the full read model for one roadmap: the roadmap itself, its
// modules in order, the caller's completion map, and the aggregate
// percentage computed over modules that currently exist.
// ══════════════════════════════════════════════════════════════════════════════

// RoadmapView is the assembled read model.
type RoadmapView struct {
	// Roadmap is the roadmap record.
	Roadmap roadmap.Roadmap

	// Modules are ordered ascending by order.
	Modules []roadmap.Module

	// Completion maps module ID to the caller's flag.
	Completion progress.CompletionMap

	// CompletedCount counts completed modules that currently exist.
	CompletedCount int

	// Percentage is round(100 * completed / total), 0 for an empty roadmap.
	Percentage int
}

// RoadmapViewer is the slice of the backend client this query needs.
type RoadmapViewer interface {
	GetRoadmap(ctx context.Context, id string) (*roadmap.Roadmap, error)
	ListModules(ctx context.Context, roadmapID string) ([]roadmap.Module, error)
	ListProgress(ctx context.Context, roadmapID string) ([]progress.Progress, error)
}

// ViewRoadmapHandler assembles the roadmap read model.
type ViewRoadmapHandler struct {
	backend RoadmapViewer
	logger  *slog.Logger
}

// NewViewRoadmapHandler creates the handler.
func NewViewRoadmapHandler(backend RoadmapViewer, logger *slog.Logger) *ViewRoadmapHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewRoadmapHandler{backend: backend, logger: logger}
}

// Handle fetches the roadmap, its modules, and the caller's progress.
func (h *ViewRoadmapHandler) Handle(ctx context.Context, roadmapID string) (*RoadmapView, error) {
	r, err := h.backend.GetRoadmap(ctx, roadmapID)
	if err != nil {
		return nil, err
	}

	modules, err := h.backend.ListModules(ctx, roadmapID)
	if err != nil {
		return nil, err
	}

	records, err := h.backend.ListProgress(ctx, roadmapID)
	if err != nil {
		return nil, err
	}

	completion := progress.BuildCompletionMap(records)
	return &RoadmapView{
		Roadmap:        *r,
		Modules:        modules,
		Completion:     completion,
		CompletedCount: progress.CompletedCount(modules, completion),
		Percentage:     progress.Percentage(modules, completion),
	}, nil
}
