// Package bccache is the optional on-disk bytecode cache spec.md §6
// mentions: "an optional bytecode cache file keyed by source content hash".
// It lets a driver skip re-lexing, re-parsing, and re-compiling a source
// whose text has not changed since the cache was written.
//
// Grounded on the teacher's use of gopkg.in/yaml.v3 for structured fixture
// data (experimental/ir/ir_test.go); a cache file is written once per build
// and read far more often, so a human-diffable text format beats a binary
// one for the size this module operates at.
package bccache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/source"
)

// entry is one cached module, keyed by the sha256 of the source text it was
// compiled from.
type entry struct {
	Hash   string           `yaml:"hash"`
	Module *bytecode.Module `yaml:"module"`
}

// Cache holds compiled modules in memory, keyed by source.ID, and can
// persist them to and reload them from a YAML file on disk.
type Cache struct {
	path    string
	entries map[source.ID]entry
}

// Open loads a cache from path if it exists; a missing file is not an error,
// it just starts an empty cache (the first Flush creates the file).
func Open(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[source.ID]entry)}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	var onDisk struct {
		Entries map[source.ID]entry `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &onDisk); err != nil {
		return nil, err
	}
	c.entries = onDisk.Entries
	if c.entries == nil {
		c.entries = make(map[source.ID]entry)
	}
	return c, nil
}

// Load returns the module cached for id if its recorded hash matches text's
// content hash, i.e. the source has not changed since the module was cached.
func (c *Cache) Load(id source.ID, text string) (*bytecode.Module, bool) {
	e, ok := c.entries[id]
	if !ok || e.Hash != hashText(text) {
		return nil, false
	}
	return e.Module, true
}

// Save records mod as the cached compilation of id's current text. It does
// not write to disk; call Flush to persist.
func (c *Cache) Save(id source.ID, text string, mod *bytecode.Module) {
	c.entries[id] = entry{Hash: hashText(text), Module: mod}
}

// Flush writes the cache's current contents to its path.
func (c *Cache) Flush() error {
	out := struct {
		Entries map[source.ID]entry `yaml:"entries"`
	}{Entries: c.entries}
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
