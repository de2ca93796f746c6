package command

import (
	"context"
	"log/slog"
	"sync"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/progress"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS TRACKER
// Tracks the session user's completion view for one roadmap and toggles
// flags optimistically. Toggles for the same module are serialized so two
// in-flight flips can never resolve out of order; distinct modules proceed
// concurrently. Conflict resolution at the backend is last-write-wins,
// acceptable because a user exclusively controls their own records.
// ══════════════════════════════════════════════════════════════════════════════

// ProgressBackend is the slice of the backend client the tracker needs.
type ProgressBackend interface {
	ListProgress(ctx context.Context, roadmapID string) ([]progress.Progress, error)
	UpsertProgress(ctx context.Context, moduleID string, completed bool) (*progress.Progress, error)
}

// ProgressTracker holds the completion view for the currently displayed
// roadmap. Loading a new view bumps the generation; results of toggles
// still in flight for an abandoned view are discarded instead of being
// applied to the new one.
type ProgressTracker struct {
	backend ProgressBackend
	logger  *slog.Logger

	// gates serializes toggles per module ID.
	gates sync.Map // moduleID -> *sync.Mutex

	mu         sync.Mutex
	generation uint64
	roadmapID  string
	completion progress.CompletionMap
	states     map[string]shared.OpState
}

// NewProgressTracker creates a tracker with an empty view.
func NewProgressTracker(backend ProgressBackend, logger *slog.Logger) *ProgressTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressTracker{
		backend:    backend,
		logger:     logger,
		completion: progress.CompletionMap{},
		states:     map[string]shared.OpState{},
	}
}

// LoadView fetches the session user's progress for a roadmap and makes it
// the current view. Any toggle still in flight for the previous view will
// be discarded on completion.
func (t *ProgressTracker) LoadView(ctx context.Context, roadmapID string) error {
	records, err := t.backend.ListProgress(ctx, roadmapID)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.generation++
	t.roadmapID = roadmapID
	t.completion = progress.BuildCompletionMap(records)
	t.states = map[string]shared.OpState{}
	return nil
}

// Reset abandons the current view.
func (t *ProgressTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.generation++
	t.roadmapID = ""
	t.completion = progress.CompletionMap{}
	t.states = map[string]shared.OpState{}
}

// Toggle flips the completion flag for a module and persists it via upsert.
// The flip is applied optimistically and rolled back if the backend call
// fails. Two sequential toggles of the same module restore the original
// value exactly. The returned bool is the flag's value after the call.
func (t *ProgressTracker) Toggle(ctx context.Context, moduleID string) (bool, error) {
	if moduleID == "" {
		return false, shared.NewDomainError("progress", "Toggle", shared.ErrInvalidID,
			"module ID is required")
	}

	// Serialize toggles for this module: a second flip must not be issued
	// until the prior one has resolved.
	gate := t.gateFor(moduleID)
	gate.Lock()
	defer gate.Unlock()

	t.mu.Lock()
	gen := t.generation
	current := t.completion[moduleID]
	next := !current
	t.completion[moduleID] = next
	t.states[moduleID] = shared.OpPending
	t.mu.Unlock()

	_, err := t.backend.UpsertProgress(ctx, moduleID, next)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.generation != gen {
		// The view was abandoned while the call was in flight. The write
		// may have landed on the backend, but it must not touch the state
		// of the view that is active now.
		t.logger.Debug("discarding toggle result for abandoned view", "module_id", moduleID)
		return next, shared.ErrStale
	}

	if err != nil {
		t.completion[moduleID] = current
		t.states[moduleID] = shared.OpFailed
		return current, err
	}

	t.states[moduleID] = shared.OpSucceeded
	return next, nil
}

// Completed reports the current flag for a module in the active view.
func (t *ProgressTracker) Completed(moduleID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completion[moduleID]
}

// Completion returns a copy of the active view's completion map.
func (t *ProgressTracker) Completion() progress.CompletionMap {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := make(progress.CompletionMap, len(t.completion))
	for k, v := range t.completion {
		m[k] = v
	}
	return m
}

// Percentage computes the aggregate completion over the given modules using
// the active view. Stale flags for modules not in the list never count.
func (t *ProgressTracker) Percentage(modules []roadmap.Module) int {
	return progress.Percentage(modules, t.Completion())
}

// ModuleState reports the operation state for a module in the active view.
func (t *ProgressTracker) ModuleState(moduleID string) shared.OpState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.states[moduleID]
}

// gateFor returns the serialization mutex for a module.
func (t *ProgressTracker) gateFor(moduleID string) *sync.Mutex {
	v, _ := t.gates.LoadOrStore(moduleID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
