package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triggerlang/core/source"
	"github.com/triggerlang/core/value"
)

func TestDeepCloneIsStructurallyEqualAndDisjoint(t *testing.T) {
	var src value.Heap
	inner := src.Alloc(value.Int(7), source.Span{})
	arr := src.Alloc(value.Array([]value.Handle{inner}), source.Span{})

	var dst value.Heap
	cloned := value.DeepClone(&dst, &src, arr)

	assert.True(t, value.Equal(&src, arr, &dst, cloned))

	// Mutating the clone must not affect the original: they share no heap
	// handles (spec.md §8 invariant 5).
	clonedArr := dst.Get(cloned)
	dst.Set(clonedArr.Value.Elems[0], value.Int(99), source.Span{})
	assert.Equal(t, int64(7), src.Get(inner).Value.Int)
	assert.Equal(t, int64(99), dst.Get(clonedArr.Value.Elems[0]).Value.Int)
}

func TestTruthy(t *testing.T) {
	assert.True(t, value.Truthy(value.Bool(true)))
	assert.False(t, value.Truthy(value.Bool(false)))
	assert.False(t, value.Truthy(value.Empty()))
	assert.True(t, value.Truthy(value.Int(1)))
	assert.False(t, value.Truthy(value.Int(0)))
}
