// Package core is the embeddable compiler/VM pair for the trigger-function
// scripting language: lex, parse, compile to bytecode, and execute under a
// context-forking scheduler (spec.md §§1-2). [Session] is the entry point; it
// wires the phases together the way a driver program would, while leaving
// source loading and diagnostic rendering to the caller (spec.md §6).
//
// The sub-packages mirror the phases: token (lexer), parser, ast, compiler,
// protobc, bytecode, vm, value, plus the shared scope, diag, source, and
// internal/{arena,intern} infrastructure every phase draws on.
package core
