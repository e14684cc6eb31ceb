package compiler

import (
	"sort"

	"github.com/triggerlang/core/ast"
	"github.com/triggerlang/core/internal/intern"
)

// capturedVar is one entry of a macro literal's conservative capture set:
// a free variable plus the enclosing function's slot holding it.
type capturedVar struct {
	sym           intern.Symbol
	enclosingSlot int
	mutable       bool
}

// analyzeCaptures computes the conservative capture-set spec.md §3's
// invariant allows ("slots referenced by LoadVar... not assigned by a
// preceding SetVar in any execution path, conservative approximation
// permitted"): every name read anywhere in the macro's own body that is not
// one of its own parameters or assigned anywhere in its own body, resolved
// against the scope active where the literal appears. Nested macro/trigger
// literals are treated as opaque — they perform their own capture analysis
// independently when compileMacroLit reaches them.
func (c *Compiler) analyzeCaptures(params []ast.Pattern, body *ast.Block, exprBdy ast.Expr) []capturedVar {
	bound := map[string]bool{}
	for _, p := range params {
		collectPatternBoundNames(p, bound)
	}
	if body != nil {
		for _, s := range body.Stmts {
			collectAssignedNamesStmt(s, bound)
		}
	}
	free := map[string]bool{}
	if body != nil {
		for _, s := range body.Stmts {
			collectFreeNamesStmt(s, bound, free)
		}
	}
	if exprBdy != nil {
		collectFreeNamesExpr(exprBdy, bound, free)
	}

	names := make([]string, 0, len(free))
	for n := range free {
		names = append(names, n)
	}
	sort.Strings(names)

	enclosing := c.cur()
	var out []capturedVar
	for _, name := range names {
		sym := c.interner.Intern(name)
		b, ok := c.scopes.Lookup(enclosing.curScope, sym)
		if !ok {
			continue
		}
		out = append(out, capturedVar{sym: sym, enclosingSlot: b.Slot, mutable: b.Mutable})
	}
	return out
}

func collectPatternBoundNames(p ast.Pattern, bound map[string]bool) {
	switch pt := p.(type) {
	case *ast.PathPattern:
		if len(pt.Segments) == 0 {
			bound[pt.Name] = true
		}
	case *ast.MutBinderPattern:
		collectPatternBoundNames(pt.Inner, bound)
	case *ast.RefBinderPattern:
		collectPatternBoundNames(pt.Inner, bound)
	case *ast.BothPattern:
		collectPatternBoundNames(pt.Left, bound)
		collectPatternBoundNames(pt.Right, bound)
	case *ast.EitherPattern:
		collectPatternBoundNames(pt.Left, bound)
		collectPatternBoundNames(pt.Right, bound)
	case *ast.GuardPattern:
		collectPatternBoundNames(pt.Inner, bound)
	}
}

func collectAssignedNamesStmt(s ast.Stmt, bound map[string]bool) {
	switch st := s.(type) {
	case *ast.AssignStmt:
		collectPatternBoundNames(st.LHS, bound)
	case *ast.CompoundAssignStmt:
		collectPatternBoundNames(st.Target, bound)
	case *ast.IfStmt:
		for _, br := range st.Branches {
			for _, inner := range br.Body.Stmts {
				collectAssignedNamesStmt(inner, bound)
			}
		}
		if st.Else != nil {
			for _, inner := range st.Else.Stmts {
				collectAssignedNamesStmt(inner, bound)
			}
		}
	case *ast.WhileStmt:
		for _, inner := range st.Body.Stmts {
			collectAssignedNamesStmt(inner, bound)
		}
	case *ast.ForStmt:
		collectPatternBoundNames(st.Pat, bound)
		for _, inner := range st.Body.Stmts {
			collectAssignedNamesStmt(inner, bound)
		}
	case *ast.TryStmt:
		for _, inner := range st.Body.Stmts {
			collectAssignedNamesStmt(inner, bound)
		}
		if st.Catch.Pat != nil {
			collectPatternBoundNames(st.Catch.Pat, bound)
		}
		for _, inner := range st.Catch.Body.Stmts {
			collectAssignedNamesStmt(inner, bound)
		}
	case *ast.ArrowStmt:
		collectAssignedNamesStmt(st.Inner, bound)
	case *ast.UnsafeBlockStmt:
		for _, inner := range st.Body.Stmts {
			collectAssignedNamesStmt(inner, bound)
		}
	}
}

// collectFreeNamesStmt records every Ident read reachable from s, except
// names in bound, into free.
func collectFreeNamesStmt(s ast.Stmt, bound, free map[string]bool) {
	switch st := s.(type) {
	case *ast.ExprStmt:
		collectFreeNamesExpr(st.X, bound, free)
	case *ast.AssignStmt:
		collectFreeNamesExpr(st.RHS, bound, free)
	case *ast.CompoundAssignStmt:
		collectFreeNamesExpr(st.RHS, bound, free)
	case *ast.IfStmt:
		for _, br := range st.Branches {
			collectFreeNamesExpr(br.Cond, bound, free)
			for _, inner := range br.Body.Stmts {
				collectFreeNamesStmt(inner, bound, free)
			}
		}
		if st.Else != nil {
			for _, inner := range st.Else.Stmts {
				collectFreeNamesStmt(inner, bound, free)
			}
		}
	case *ast.WhileStmt:
		collectFreeNamesExpr(st.Cond, bound, free)
		for _, inner := range st.Body.Stmts {
			collectFreeNamesStmt(inner, bound, free)
		}
	case *ast.ForStmt:
		collectFreeNamesExpr(st.Iter, bound, free)
		for _, inner := range st.Body.Stmts {
			collectFreeNamesStmt(inner, bound, free)
		}
	case *ast.TryStmt:
		for _, inner := range st.Body.Stmts {
			collectFreeNamesStmt(inner, bound, free)
		}
		for _, inner := range st.Catch.Body.Stmts {
			collectFreeNamesStmt(inner, bound, free)
		}
	case *ast.ReturnStmt:
		if st.Value != nil {
			collectFreeNamesExpr(st.Value, bound, free)
		}
	case *ast.ThrowStmt:
		collectFreeNamesExpr(st.Value, bound, free)
	case *ast.ArrowStmt:
		collectFreeNamesStmt(st.Inner, bound, free)
	case *ast.UnsafeBlockStmt:
		for _, inner := range st.Body.Stmts {
			collectFreeNamesStmt(inner, bound, free)
		}
	}
}

func collectFreeNamesExpr(e ast.Expr, bound, free map[string]bool) {
	switch x := e.(type) {
	case *ast.Ident:
		if !bound[x.Name] {
			free[x.Name] = true
		}
	case *ast.ArrayLit:
		for _, el := range x.Elems {
			collectFreeNamesExpr(el, bound, free)
		}
	case *ast.BinaryExpr:
		collectFreeNamesExpr(x.Left, bound, free)
		collectFreeNamesExpr(x.Right, bound, free)
	case *ast.UnaryExpr:
		collectFreeNamesExpr(x.Operand, bound, free)
	case *ast.CallExpr:
		collectFreeNamesExpr(x.Callee, bound, free)
		for _, a := range x.Args {
			collectFreeNamesExpr(a, bound, free)
		}
	case *ast.TernaryExpr:
		collectFreeNamesExpr(x.Then, bound, free)
		collectFreeNamesExpr(x.Cond, bound, free)
		collectFreeNamesExpr(x.Else, bound, free)
	case *ast.TypeofExpr:
		collectFreeNamesExpr(x.Operand, bound, free)
	case *ast.MemberExpr:
		collectFreeNamesExpr(x.Target, bound, free)
	case *ast.TypeMemberExpr:
		collectFreeNamesExpr(x.Target, bound, free)
	case *ast.AssocExpr:
		collectFreeNamesExpr(x.Target, bound, free)
	case *ast.IndexExpr:
		collectFreeNamesExpr(x.Target, bound, free)
		collectFreeNamesExpr(x.Index, bound, free)
	case *ast.DbgExpr:
		collectFreeNamesExpr(x.Operand, bound, free)
	case *ast.MaybeExpr:
		collectFreeNamesExpr(x.Operand, bound, free)
	case *ast.TriggerCallExpr:
		collectFreeNamesExpr(x.Operand, bound, free)
	case *ast.IsExpr:
		collectFreeNamesExpr(x.Operand, bound, free)
	case *ast.InstanceLit:
		collectFreeNamesExpr(x.Base, bound, free)
		for _, f := range x.Fields {
			collectFreeNamesExpr(f.Value, bound, free)
		}
	case *ast.MatchExpr:
		collectFreeNamesExpr(x.Scrutinee, bound, free)
		for _, arm := range x.Arms {
			collectFreeNamesExpr(arm.Body, bound, free)
		}
	}
	// IntLit, FloatLit, BoolLit, DomainIDLit, EmptyExpr: no sub-expressions.
	// MacroLit, TriggerLit: opaque, see analyzeCaptures's doc comment.
}
