package diag_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triggerlang/core/diag"
	"github.com/triggerlang/core/source"
)

type recordingSink struct {
	got []diag.Diagnostic
}

func (r *recordingSink) Report(d diag.Diagnostic) { r.got = append(r.got, d) }

func TestContextWitnessRequiresError(t *testing.T) {
	ctx := diag.NewContext(nil)
	_, ok := ctx.Witness()
	assert.False(t, ok, "no witness before any error is reported")

	ctx.Warnf(source.Span{}, "cosmetic", "just a warning")
	_, ok = ctx.Witness()
	assert.False(t, ok, "warnings alone must not produce a witness")

	ctx.Errorf(source.Span{}, "broken", "something broke")
	w, ok := ctx.Witness()
	require.True(t, ok)
	_ = w
	assert.True(t, ctx.HasErrors())
	assert.Equal(t, 1, ctx.ErrorCount())
}

func TestContextForwardsToSink(t *testing.T) {
	sink := &recordingSink{}
	ctx := diag.NewContext(sink)
	ctx.Errorf(source.Span{}, "bad", "oops")
	require.Len(t, sink.got, 1)
	assert.Equal(t, diag.Error, sink.got[0].Severity)
}

func TestANSISinkRendersLabel(t *testing.T) {
	reg := source.NewRegistry(nil)
	id := reg.Register("main.tr", "dbg q\n")

	var buf bytes.Buffer
	sink := &diag.ANSISink{Writer: &buf, Registry: reg}
	sink.Report(diag.Diagnostic{
		Severity: diag.Error,
		Title:    "NonexistentVariable",
		Message:  "undefined variable q",
		Labels: []diag.Label{
			{Span: source.Span{ID: id, Start: 4, End: 5}, Text: "not defined"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "NonexistentVariable")
	assert.Contains(t, out, "dbg q")
	assert.Contains(t, out, "not defined")
}
