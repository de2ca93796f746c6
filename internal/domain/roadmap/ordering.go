package roadmap

import (
	"sort"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
)

// SortByOrder returns a copy of modules sorted ascending by order. The input
// slice is never mutated through a shared reference.
func SortByOrder(modules []Module) []Module {
	sorted := make([]Module, len(modules))
	copy(sorted, modules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// CheckContiguous verifies that module orders form the gap-free sequence 1..N.
func CheckContiguous(modules []Module) error {
	seen := make(map[int]bool, len(modules))
	for _, m := range modules {
		if m.Order < 1 || m.Order > len(modules) {
			return shared.NewDomainError("module", "CheckContiguous", shared.ErrInvalidState,
				"module order outside 1..N")
		}
		if seen[m.Order] {
			return shared.NewDomainError("module", "CheckContiguous", shared.ErrInvalidState,
				"duplicate module order")
		}
		seen[m.Order] = true
	}
	return nil
}

// RemoveAt returns the module at the given 1-based order, the remaining
// modules renumbered to 1..N-1 with relative order preserved, and the subset
// of remaining modules whose order actually changed (the ones that must be
// persisted). The input slice is not modified.
func RemoveAt(modules []Module, order int) (removed Module, remaining []Module, changed []Module, err error) {
	sorted := SortByOrder(modules)

	idx := -1
	for i, m := range sorted {
		if m.Order == order {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Module{}, nil, nil, shared.ErrOrderOutOfRange
	}

	removed = sorted[idx]
	remaining = make([]Module, 0, len(sorted)-1)
	remaining = append(remaining, sorted[:idx]...)
	remaining = append(remaining, sorted[idx+1:]...)

	for i := range remaining {
		want := i + 1
		if remaining[i].Order != want {
			remaining[i].Order = want
			changed = append(changed, remaining[i])
		}
	}
	return removed, remaining, changed, nil
}

// NextOrder returns the order an appended module receives: current count + 1.
func NextOrder(modules []Module) int {
	return len(modules) + 1
}
