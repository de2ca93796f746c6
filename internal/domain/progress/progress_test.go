package progress

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roadmap-saas/roadmap-hub/internal/domain/roadmap"
)

func mods(n int) []roadmap.Module {
	ms := make([]roadmap.Module, 0, n)
	for i := 1; i <= n; i++ {
		ms = append(ms, roadmap.Module{ID: fmt.Sprintf("m%d", i), Order: i})
	}
	return ms
}

func TestPercentage_ZeroModules(t *testing.T) {
	assert.Equal(t, 0, Percentage(nil, CompletionMap{}))
	assert.Equal(t, 0, Percentage([]roadmap.Module{}, CompletionMap{"ghost": true}))
}

func TestPercentage_Rounding(t *testing.T) {
	ms := mods(3)

	assert.Equal(t, 0, Percentage(ms, CompletionMap{}))
	assert.Equal(t, 33, Percentage(ms, CompletionMap{"m1": true}))
	assert.Equal(t, 67, Percentage(ms, CompletionMap{"m1": true, "m2": true}))
	assert.Equal(t, 100, Percentage(ms, CompletionMap{"m1": true, "m2": true, "m3": true}))
}

func TestPercentage_IgnoresStaleEntries(t *testing.T) {
	ms := mods(2)
	completion := CompletionMap{
		"m1":      true,
		"deleted": true, // module no longer exists
	}

	assert.Equal(t, 50, Percentage(ms, completion))
	assert.Equal(t, 1, CompletedCount(ms, completion))
}

func TestPercentage_FalseEntriesDoNotCount(t *testing.T) {
	ms := mods(2)
	assert.Equal(t, 0, Percentage(ms, CompletionMap{"m1": false, "m2": false}))
}

func TestPercentage_Bounds(t *testing.T) {
	for n := 0; n <= 10; n++ {
		ms := mods(n)
		for c := 0; c <= n; c++ {
			completion := CompletionMap{}
			for i := 1; i <= c; i++ {
				completion[fmt.Sprintf("m%d", i)] = true
			}
			p := Percentage(ms, completion)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}
}

func TestBuildCompletionMap_LastRecordWins(t *testing.T) {
	m := BuildCompletionMap([]Progress{
		{ModuleID: "m1", Completed: true},
		{ModuleID: "m2", Completed: false},
		{ModuleID: "m1", Completed: false},
	})

	assert.False(t, m["m1"])
	assert.False(t, m["m2"])
	assert.False(t, m["absent"])
}
