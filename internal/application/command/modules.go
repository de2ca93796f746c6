package command

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/api"
)

// ══════════════════════════════════════════════════════════════════════════════
// MODULE COMMANDS
// Appending keeps order = current count + 1. Removal renumbers the surviving
// siblings with the pure domain function and persists every changed order,
// so the stored sequence stays contiguous for all future readers. A purely
// local renumber would silently diverge after reload.
// ══════════════════════════════════════════════════════════════════════════════

// AddModuleCommand contains the data needed to append a module.
type AddModuleCommand struct {
	// RoadmapID is the parent roadmap.
	RoadmapID string `validate:"required"`

	// Title of the module.
	Title string `validate:"required,min=1,max=200"`

	// Description of the module.
	Description string `validate:"required"`

	// Content is optional long-form material.
	Content string
}

// RemoveModuleCommand identifies a module by its position.
type RemoveModuleCommand struct {
	// RoadmapID is the parent roadmap.
	RoadmapID string `validate:"required"`

	// Order is the 1-based position of the module to remove.
	Order int `validate:"required,min=1"`
}

// RemoveModuleResult reports the removal and the persisted renumbering.
type RemoveModuleResult struct {
	// Removed is the module that was deleted.
	Removed roadmap.Module

	// Remaining are the surviving modules with their corrected orders.
	Remaining []roadmap.Module

	// Renumbered counts siblings whose order was persisted anew.
	Renumbered int
}

// ModuleBackend is the slice of the backend client module commands need.
type ModuleBackend interface {
	ListModules(ctx context.Context, roadmapID string) ([]roadmap.Module, error)
	CreateModule(ctx context.Context, req api.CreateModuleRequest) (*roadmap.Module, error)
	UpdateModuleOrder(ctx context.Context, moduleID string, order int) (*roadmap.Module, error)
	DeleteModule(ctx context.Context, moduleID string) error
}

// ModuleHandler handles module mutations.
type ModuleHandler struct {
	backend  ModuleBackend
	logger   *slog.Logger
	validate *validator.Validate
}

// NewModuleHandler creates the handler.
func NewModuleHandler(backend ModuleBackend, logger *slog.Logger) *ModuleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModuleHandler{
		backend:  backend,
		logger:   logger,
		validate: validator.New(),
	}
}

// Add appends a module at order = current count + 1.
func (h *ModuleHandler) Add(ctx context.Context, cmd AddModuleCommand) (*roadmap.Module, error) {
	if err := h.validate.Struct(cmd); err != nil {
		return nil, shared.WrapError("module", "Add", shared.ErrValidation,
			"invalid module draft", err)
	}

	existing, err := h.backend.ListModules(ctx, cmd.RoadmapID)
	if err != nil {
		return nil, err
	}

	mod, err := h.backend.CreateModule(ctx, api.CreateModuleRequest{
		RoadmapID:   cmd.RoadmapID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Content:     cmd.Content,
		Order:       roadmap.NextOrder(existing),
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("module added",
		"roadmap_id", cmd.RoadmapID, "module_id", mod.ID, "order", mod.Order)
	return mod, nil
}

// Remove deletes the module at the given order and persists the corrected
// orders of every shifted sibling. A renumber failure after the delete is a
// partial failure: the result carries how far persistence got.
func (h *ModuleHandler) Remove(ctx context.Context, cmd RemoveModuleCommand) (*RemoveModuleResult, error) {
	if err := h.validate.Struct(cmd); err != nil {
		return nil, shared.WrapError("module", "Remove", shared.ErrValidation,
			"invalid removal request", err)
	}

	existing, err := h.backend.ListModules(ctx, cmd.RoadmapID)
	if err != nil {
		return nil, err
	}

	removed, remaining, changed, err := roadmap.RemoveAt(existing, cmd.Order)
	if err != nil {
		return nil, err
	}

	if err := h.backend.DeleteModule(ctx, removed.ID); err != nil {
		return nil, err
	}

	result := &RemoveModuleResult{Removed: removed, Remaining: remaining}
	for _, m := range changed {
		if _, err := h.backend.UpdateModuleOrder(ctx, m.ID, m.Order); err != nil {
			h.logger.Warn("renumbering stopped partway",
				"roadmap_id", cmd.RoadmapID, "module_id", m.ID,
				"persisted", result.Renumbered, "of", len(changed), "error", err)
			return result, shared.WrapError("module", "Remove", shared.ErrPartialFailure,
				"module removed but renumbering did not complete", err)
		}
		result.Renumbered++
	}

	h.logger.Info("module removed",
		"roadmap_id", cmd.RoadmapID, "module_id", removed.ID,
		"order", cmd.Order, "renumbered", result.Renumbered)
	return result, nil
}
