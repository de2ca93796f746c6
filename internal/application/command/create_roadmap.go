// Package command contains write operations (CQRS - Commands).
// Commands validate their input locally, shape the backend requests, and
// surface partial failure explicitly instead of hiding it behind a generic
// error. Authorization is never duplicated here: the backend decides.
package command

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
	"github.com/roadmap-saas/roadmap-hub/internal/infrastructure/api"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE ROADMAP COMMAND
// Creates a roadmap and its draft modules in sequence. The backend offers no
// multi-entity transaction, so a module failure after the roadmap persisted
// is reported as a partial failure carrying the persisted prefix.
// ══════════════════════════════════════════════════════════════════════════════

// ModuleDraft is a module as entered before the roadmap exists. Drafts with
// a blank title are skipped, not rejected.
type ModuleDraft struct {
	Title       string
	Description string
	Content     string
}

// CreateRoadmapCommand contains the data needed to create a roadmap.
type CreateRoadmapCommand struct {
	// Title of the roadmap.
	Title string `validate:"required,min=1,max=200"`

	// Description of the roadmap.
	Description string `validate:"required"`

	// IsPublic requests a share token to be minted at creation.
	IsPublic bool

	// Modules are the ordered drafts to create under the roadmap.
	Modules []ModuleDraft

	// CorrelationID for tracing. Generated when empty.
	CorrelationID string
}

// CreateRoadmapResult contains the outcome, including the persisted prefix
// when creation stopped partway.
type CreateRoadmapResult struct {
	// Roadmap is the created roadmap.
	Roadmap roadmap.Roadmap

	// Modules are the modules that were persisted, in order.
	Modules []roadmap.Module

	// SkippedDrafts counts blank drafts that were not sent.
	SkippedDrafts int
}

// RoadmapCreator is the slice of the backend client this command needs.
type RoadmapCreator interface {
	CreateRoadmap(ctx context.Context, req api.CreateRoadmapRequest) (*roadmap.Roadmap, error)
	CreateModule(ctx context.Context, req api.CreateModuleRequest) (*roadmap.Module, error)
}

// CreateRoadmapHandler handles roadmap creation.
type CreateRoadmapHandler struct {
	backend  RoadmapCreator
	logger   *slog.Logger
	validate *validator.Validate
}

// NewCreateRoadmapHandler creates the handler.
func NewCreateRoadmapHandler(backend RoadmapCreator, logger *slog.Logger) *CreateRoadmapHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateRoadmapHandler{
		backend:  backend,
		logger:   logger,
		validate: validator.New(),
	}
}

// Handle creates the roadmap, then each non-blank draft module in order.
// On a module failure the already-created roadmap and modules remain
// persisted; the returned error wraps ErrPartialFailure and the result
// carries everything that was persisted.
func (h *CreateRoadmapHandler) Handle(ctx context.Context, cmd CreateRoadmapCommand) (*CreateRoadmapResult, error) {
	if err := h.validate.Struct(cmd); err != nil {
		return nil, shared.WrapError("roadmap", "Create", shared.ErrValidation,
			"invalid roadmap draft", err)
	}

	if cmd.CorrelationID == "" {
		cmd.CorrelationID = uuid.New().String()
	}
	log := h.logger.With("correlation_id", cmd.CorrelationID)

	req := api.CreateRoadmapRequest{
		Title:       cmd.Title,
		Description: cmd.Description,
		IsPublic:    cmd.IsPublic,
	}
	// A public roadmap gets its opaque share token minted at creation.
	if cmd.IsPublic {
		req.ShareToken = uuid.New().String()
	}

	created, err := h.backend.CreateRoadmap(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Info("roadmap created", "roadmap_id", created.ID, "public", created.IsPublic)

	result := &CreateRoadmapResult{Roadmap: *created}

	order := 0
	for _, draft := range cmd.Modules {
		if isBlank(draft.Title) {
			result.SkippedDrafts++
			continue
		}
		order++

		mod, err := h.backend.CreateModule(ctx, api.CreateModuleRequest{
			RoadmapID:   created.ID,
			Title:       draft.Title,
			Description: draft.Description,
			Content:     draft.Content,
			Order:       order,
		})
		if err != nil {
			log.Warn("module creation failed partway",
				"roadmap_id", created.ID, "order", order, "persisted", len(result.Modules), "error", err)
			return result, shared.WrapError("roadmap", "Create", shared.ErrPartialFailure,
				"roadmap persisted but module creation failed", err)
		}
		result.Modules = append(result.Modules, *mod)
	}

	return result, nil
}

// isBlank reports whether a draft field is empty after trimming.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
