package bccache_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/bccache"
	"github.com/triggerlang/core/bytecode"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	c, err := bccache.Open(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	_, ok := c.Load(1, "anything")
	assert.False(t, ok)
}

func TestSaveLoadRoundTripsOnMatchingText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.yaml")
	c, err := bccache.Open(path)
	require.NoError(t, err)

	mod := &bytecode.Module{Functions: []bytecode.Function{{Code: []bytecode.Instr{{Op: bytecode.Return}}}}}
	c.Save(1, "dbg 1", mod)

	got, ok := c.Load(1, "dbg 1")
	require.True(t, ok)
	if diff := cmp.Diff(mod, got); diff != "" {
		t.Errorf("module changed across cache round trip (-want +got):\n%s", diff)
	}
}

func TestLoadMissesOnChangedText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.yaml")
	c, err := bccache.Open(path)
	require.NoError(t, err)

	mod := &bytecode.Module{Functions: []bytecode.Function{{Code: []bytecode.Instr{{Op: bytecode.Return}}}}}
	c.Save(1, "dbg 1", mod)

	_, ok := c.Load(1, "dbg 2")
	assert.False(t, ok)
}

func TestFlushPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.yaml")
	c, err := bccache.Open(path)
	require.NoError(t, err)

	mod := &bytecode.Module{Functions: []bytecode.Function{{Code: []bytecode.Instr{{Op: bytecode.Return}}}}}
	c.Save(1, "dbg 1", mod)
	require.NoError(t, c.Flush())

	reloaded, err := bccache.Open(path)
	require.NoError(t, err)
	got, ok := reloaded.Load(1, "dbg 1")
	require.True(t, ok)
	assert.Equal(t, mod, got)
}
