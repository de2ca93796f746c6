package command

import (
	"context"
	"log/slog"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE ROADMAP COMMAND
// Deletes a roadmap and requests removal of its dependent modules. The same
// handler serves owners and admins: the backend is the sole authority on
// whether the caller may delete this roadmap.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteRoadmapCommand identifies the roadmap to delete.
type DeleteRoadmapCommand struct {
	// RoadmapID is the roadmap to delete.
	RoadmapID string
}

// Validate validates the command.
func (c DeleteRoadmapCommand) Validate() error {
	if c.RoadmapID == "" {
		return shared.NewDomainError("roadmap", "Delete", shared.ErrInvalidID,
			"roadmap ID is required")
	}
	return nil
}

// DeleteRoadmapResult reports what was removed.
type DeleteRoadmapResult struct {
	// OrphanedModulesRemoved counts modules the handler had to delete
	// explicitly because the backend did not cascade.
	OrphanedModulesRemoved int

	// OrphanedModulesRemaining counts modules whose explicit cleanup
	// failed. Non-zero means the cleanup completed partially; the stale
	// records are excluded from percentage computations regardless.
	OrphanedModulesRemaining int
}

// RoadmapDeleter is the slice of the backend client this command needs.
type RoadmapDeleter interface {
	DeleteRoadmap(ctx context.Context, id string) error
	ListModules(ctx context.Context, roadmapID string) ([]roadmap.Module, error)
	DeleteModule(ctx context.Context, moduleID string) error
}

// DeleteRoadmapHandler handles roadmap deletion with explicit cascade
// cleanup when the backend leaves modules behind.
type DeleteRoadmapHandler struct {
	backend RoadmapDeleter
	logger  *slog.Logger
}

// NewDeleteRoadmapHandler creates the handler.
func NewDeleteRoadmapHandler(backend RoadmapDeleter, logger *slog.Logger) *DeleteRoadmapHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeleteRoadmapHandler{backend: backend, logger: logger}
}

// Handle deletes the roadmap, then checks for surviving modules and removes
// them one by one. Partial cleanup is tolerated and reported, not retried:
// this is the documented consistency risk of a backend without cascading
// delete.
func (h *DeleteRoadmapHandler) Handle(ctx context.Context, cmd DeleteRoadmapCommand) (*DeleteRoadmapResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.backend.DeleteRoadmap(ctx, cmd.RoadmapID); err != nil {
		return nil, err
	}
	h.logger.Info("roadmap deleted", "roadmap_id", cmd.RoadmapID)

	result := &DeleteRoadmapResult{}

	survivors, err := h.backend.ListModules(ctx, cmd.RoadmapID)
	if err != nil {
		if shared.IsNotFound(err) {
			// Backend cascaded; nothing left to clean up.
			return result, nil
		}
		h.logger.Warn("could not check for orphaned modules",
			"roadmap_id", cmd.RoadmapID, "error", err)
		return result, nil
	}

	for _, m := range survivors {
		if err := h.backend.DeleteModule(ctx, m.ID); err != nil {
			result.OrphanedModulesRemaining++
			h.logger.Warn("orphaned module cleanup failed",
				"roadmap_id", cmd.RoadmapID, "module_id", m.ID, "error", err)
			continue
		}
		result.OrphanedModulesRemoved++
	}

	if result.OrphanedModulesRemoved > 0 || result.OrphanedModulesRemaining > 0 {
		h.logger.Info("orphaned module cleanup finished",
			"roadmap_id", cmd.RoadmapID,
			"removed", result.OrphanedModulesRemoved,
			"remaining", result.OrphanedModulesRemaining)
	}
	return result, nil
}
