package core

import (
	"io"

	"github.com/triggerlang/core/bccache"
	"github.com/triggerlang/core/bytecode"
	"github.com/triggerlang/core/compiler"
	"github.com/triggerlang/core/diag"
	"github.com/triggerlang/core/internal/intern"
	"github.com/triggerlang/core/parser"
	"github.com/triggerlang/core/source"
	"github.com/triggerlang/core/token"
	"github.com/triggerlang/core/value"
	"github.com/triggerlang/core/vm"
)

// Session owns the shared, cross-phase state of one driver run: the source
// registry, the string interner, and the per-source compiled-bytecode map
// spec.md §6 describes. It exposes the three façade operations the spec
// names: Compile, Run, EmitDebug.
type Session struct {
	Loader source.Loader
	Sink   diag.Sink

	// MaxLiveContexts bounds a Run call's scheduler queue (spec.md §5's
	// "Budget bounds"); 0 means unbounded.
	MaxLiveContexts int
	// DbgOut receives Dbg opcode output during Run; nil defaults to
	// os.Stdout (see vm.New).
	DbgOut io.Writer
	// Cache, if set, is consulted before compiling and populated after
	// (spec.md §6's "optional bytecode cache file keyed by source content
	// hash").
	Cache *bccache.Cache

	registry *source.Registry
	interner intern.Table
	modules  map[source.ID]*bytecode.Module
}

// NewSession creates a session that resolves sources through loader and
// reports diagnostics to sink.
func NewSession(loader source.Loader, sink diag.Sink) *Session {
	return &Session{
		Loader:   loader,
		Sink:     sink,
		registry: source.NewRegistry(loader),
		modules:  make(map[source.ID]*bytecode.Module),
	}
}

// Compile implements spec.md §6's `compile(source_id) -> Result<(),
// ErrorWitness>`: it locates the source, runs lex/parse/compile, and records
// the resulting bytecode in the session's module map.
func (s *Session) Compile(name string) (diag.Witness, bool, error) {
	id, err := s.registry.Load(name)
	if err != nil {
		return diag.Witness{}, false, err
	}

	diags := diag.NewContext(s.Sink)

	if s.Cache != nil {
		if mod, ok := s.Cache.Load(id, s.registry.Text(id)); ok {
			s.modules[id] = mod
			return diag.Witness{}, false, nil
		}
	}

	toks := token.Lex(id, s.registry.Text(id))
	block, witness, hasErr := parser.Parse(toks, diags)
	if hasErr {
		return witness, true, nil
	}

	mod := compiler.Compile(block, &s.interner, diags, id)
	if witness, ok := diags.Witness(); ok {
		return witness, true, nil
	}

	s.modules[id] = mod
	if s.Cache != nil {
		s.Cache.Save(id, s.registry.Text(id), mod)
	}
	return diag.Witness{}, false, nil
}

// Run implements spec.md §6's `run(source_id) -> Multi<Result<ValueHandle,
// ErrorWitness>>`: it locates function 0 of the source's bytecode, starts an
// empty initial context, and returns the scheduler's final multiset.
// Compile must have succeeded for name first.
func (s *Session) Run(name string) ([]vm.Outcome, error) {
	id, err := s.registry.Load(name)
	if err != nil {
		return nil, err
	}
	mod, ok := s.modules[id]
	if !ok {
		return nil, errNotCompiled(name)
	}

	diags := diag.NewContext(s.Sink)
	machine := vm.New(mod, diags, s.MaxLiveContexts, s.DbgOut)
	return machine.Run(), nil
}

// EmitDebug implements spec.md §6's `emit_debug(source_id, writer)`:
// pretty-prints every function of name's compiled module.
func (s *Session) EmitDebug(name string, w io.Writer) error {
	id, err := s.registry.Load(name)
	if err != nil {
		return err
	}
	mod, ok := s.modules[id]
	if !ok {
		return errNotCompiled(name)
	}
	bytecode.DisassembleModule(w, mod, s.registry)
	return nil
}

// ResultValue reads an outcome's value from that outcome's context heap, for
// callers that want to inspect its structure rather than just format it. It
// returns false for an error outcome.
func ResultValue(o vm.Outcome) (value.Value, bool) {
	if o.IsError {
		return value.Value{}, false
	}
	return o.Heap.Get(o.Value).Value, true
}

type notCompiledError string

func (e notCompiledError) Error() string { return "core: " + string(e) + " was not compiled" }

func errNotCompiled(name string) error { return notCompiledError(name) }
