package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
)

func modules(orders ...int) []Module {
	ms := make([]Module, 0, len(orders))
	for _, o := range orders {
		ms = append(ms, Module{ID: string(rune('a' + o)), RoadmapID: "r1", Order: o})
	}
	return ms
}

func TestRemoveAt_MiddleRenumbersTail(t *testing.T) {
	ms := []Module{
		{ID: "m1", Title: "Basics", Order: 1},
		{ID: "m2", Title: "Equations", Order: 2},
		{ID: "m3", Title: "Functions", Order: 3},
	}

	removed, remaining, changed, err := RemoveAt(ms, 2)
	require.NoError(t, err)

	assert.Equal(t, "m2", removed.ID)
	require.Len(t, remaining, 2)
	assert.Equal(t, []int{1, 2}, []int{remaining[0].Order, remaining[1].Order})
	assert.Equal(t, "m1", remaining[0].ID)
	assert.Equal(t, "m3", remaining[1].ID)

	// Only the shifted module needs persisting.
	require.Len(t, changed, 1)
	assert.Equal(t, "m3", changed[0].ID)
	assert.Equal(t, 2, changed[0].Order)

	assert.NoError(t, CheckContiguous(remaining))
}

func TestRemoveAt_FirstShiftsEverything(t *testing.T) {
	_, remaining, changed, err := RemoveAt(modules(1, 2, 3, 4), 1)
	require.NoError(t, err)

	assert.Len(t, remaining, 3)
	assert.Len(t, changed, 3)
	assert.NoError(t, CheckContiguous(remaining))
}

func TestRemoveAt_LastChangesNothing(t *testing.T) {
	_, remaining, changed, err := RemoveAt(modules(1, 2, 3), 3)
	require.NoError(t, err)

	assert.Len(t, remaining, 2)
	assert.Empty(t, changed)
	assert.NoError(t, CheckContiguous(remaining))
}

func TestRemoveAt_UnknownOrder(t *testing.T) {
	_, _, _, err := RemoveAt(modules(1, 2), 5)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestRemoveAt_DoesNotMutateInput(t *testing.T) {
	ms := modules(1, 2, 3)
	_, _, _, err := RemoveAt(ms, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, []int{ms[0].Order, ms[1].Order, ms[2].Order})
}

func TestRemoveAt_PreservesRelativeOrderOnUnsortedInput(t *testing.T) {
	ms := []Module{
		{ID: "c", Order: 3},
		{ID: "a", Order: 1},
		{ID: "b", Order: 2},
	}

	_, remaining, _, err := RemoveAt(ms, 1)
	require.NoError(t, err)

	require.Len(t, remaining, 2)
	assert.Equal(t, "b", remaining[0].ID)
	assert.Equal(t, "c", remaining[1].ID)
}

func TestCheckContiguous(t *testing.T) {
	assert.NoError(t, CheckContiguous(nil))
	assert.NoError(t, CheckContiguous(modules(1, 2, 3)))
	assert.Error(t, CheckContiguous(modules(1, 3)))
	assert.Error(t, CheckContiguous(modules(1, 1, 2)))
	assert.Error(t, CheckContiguous(modules(0, 1)))
}

func TestNextOrder(t *testing.T) {
	assert.Equal(t, 1, NextOrder(nil))
	assert.Equal(t, 4, NextOrder(modules(1, 2, 3)))
}

func TestRoadmapValidate_ShareTokenInvariant(t *testing.T) {
	assert.NoError(t, (&Roadmap{IsPublic: true, ShareToken: "tok"}).Validate())
	assert.NoError(t, (&Roadmap{IsPublic: false}).Validate())
	assert.Error(t, (&Roadmap{IsPublic: true}).Validate())
	assert.Error(t, (&Roadmap{IsPublic: false, ShareToken: "tok"}).Validate())
}
