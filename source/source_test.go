package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triggerlang/core/source"
)

func TestRegisterAndSlice(t *testing.T) {
	reg := source.NewRegistry(nil)
	id := reg.Register("main.tr", "x = 10")

	sp := source.Span{ID: id, Start: 0, End: 1}
	assert.Equal(t, "x", reg.Slice(sp))
	assert.True(t, sp.IsValid())
}

func TestJoinSameSource(t *testing.T) {
	reg := source.NewRegistry(nil)
	id := reg.Register("a", "0123456789")

	a := source.Span{ID: id, Start: 2, End: 4}
	b := source.Span{ID: id, Start: 6, End: 9}
	joined := a.Join(b)
	assert.Equal(t, source.Span{ID: id, Start: 2, End: 9}, joined)
}

func TestJoinDifferentSourcePanics(t *testing.T) {
	reg := source.NewRegistry(nil)
	a := reg.Register("a", "x")
	b := reg.Register("b", "y")

	assert.Panics(t, func() {
		source.Span{ID: a, Start: 0, End: 1}.Join(source.Span{ID: b, Start: 0, End: 1})
	})
}

func TestLoadCachesByName(t *testing.T) {
	calls := 0
	loader := loaderFunc(func(name string) (string, error) {
		calls++
		return "dbg 1", nil
	})
	reg := source.NewRegistry(loader)

	id1, err := reg.Load("main.tr")
	assert.NoError(t, err)
	id2, err := reg.Load("main.tr")
	assert.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, calls)
}

type loaderFunc func(name string) (string, error)

func (f loaderFunc) Load(name string) (string, error) { return f(name) }
