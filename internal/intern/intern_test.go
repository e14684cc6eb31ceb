package intern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triggerlang/core/internal/intern"
)

func TestInternRoundTrip(t *testing.T) {
	var tab intern.Table

	a := tab.Intern("context")
	b := tab.Intern("context")
	assert.Equal(t, a, b, "interning the same string twice must yield the same symbol")
	assert.Equal(t, "context", tab.Value(a))

	c := tab.Intern("trigger")
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, tab.Len())
}

func TestInternEmptyString(t *testing.T) {
	var tab intern.Table
	assert.Equal(t, intern.Symbol(0), tab.Intern(""))
	assert.Equal(t, "", tab.Value(0))
	assert.Equal(t, 0, tab.Len())
}
