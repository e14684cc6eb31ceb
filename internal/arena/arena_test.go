package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/internal/arena"
)

func TestArenaStableHandles(t *testing.T) {
	var a arena.Arena[string]

	var handles []arena.Handle
	for i := 0; i < 200; i++ {
		handles = append(handles, a.New(string(rune('a'+i%26))))
	}

	require.Equal(t, 200, a.Len())
	for i, h := range handles {
		assert.Equal(t, string(rune('a'+i%26)), *a.At(h))
	}
}

func TestArenaPointerStaysValidAcrossGrowth(t *testing.T) {
	var a arena.Arena[int]

	h := a.New(42)
	p := a.At(h)

	for i := 0; i < 1000; i++ {
		a.New(i)
	}

	assert.Equal(t, 42, *p, "growing the arena must not invalidate earlier pointers")
	assert.Equal(t, 42, *a.At(h))
}

func TestArenaAll(t *testing.T) {
	var a arena.Arena[int]
	want := []int{10, 20, 30}
	for _, v := range want {
		a.New(v)
	}

	var got []int
	a.All(func(_ arena.Handle, v *int) bool {
		got = append(got, *v)
		return true
	})
	assert.Equal(t, want, got)
}
