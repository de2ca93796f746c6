// Package progress contains the per-user, per-module completion entity and
// the pure aggregate computation over it. Nothing here touches the network,
// so the whole package is unit-testable in isolation.
package progress

import (
	"math"
	"time"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
)

// Progress is one user's completion flag for one module. At most one record
// exists per (user, module) pair; the backend upserts on write.
type Progress struct {
	// ID is the backend-assigned identifier.
	ID string

	// UserID references the user the flag belongs to.
	UserID string

	// ModuleID references the module the flag is for.
	ModuleID string

	// Completed is the current completion state.
	Completed bool

	// UpdatedAt is when the flag last changed.
	UpdatedAt time.Time
}

// CompletionMap indexes completion flags by module ID. Absent entries mean
// "not completed".
type CompletionMap map[string]bool

// BuildCompletionMap folds progress records into a CompletionMap.
func BuildCompletionMap(records []Progress) CompletionMap {
	m := make(CompletionMap, len(records))
	for _, p := range records {
		m[p.ModuleID] = p.Completed
	}
	return m
}

// Percentage computes round(100 * completed / total) over the given modules.
// Only module IDs present in modules are counted, so stale entries for
// deleted modules never inflate the result. Zero modules yields zero.
func Percentage(modules []roadmap.Module, completion CompletionMap) int {
	if len(modules) == 0 {
		return 0
	}
	completed := 0
	for _, m := range modules {
		if completion[m.ID] {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(modules))))
}

// CompletedCount counts modules marked completed, scoped to the given
// modules the same way Percentage is.
func CompletedCount(modules []roadmap.Module, completion CompletionMap) int {
	n := 0
	for _, m := range modules {
		if completion[m.ID] {
			n++
		}
	}
	return n
}
