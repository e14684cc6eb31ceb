package ast

import "github.com/triggerlang/core/source"

// Constructors for the parser: base is unexported, so code outside this
// package builds nodes through these rather than struct literals.

func NewIntLit(sp source.Span, text string) *IntLit { return &IntLit{base{sp}, text} }
func NewFloatLit(sp source.Span, text string) *FloatLit { return &FloatLit{base{sp}, text} }
func NewBoolLit(sp source.Span, v bool) *BoolLit { return &BoolLit{base{sp}, v} }
func NewDomainIDLit(sp source.Span, text string) *DomainIDLit { return &DomainIDLit{base{sp}, text} }
func NewIdent(sp source.Span, name string) *Ident { return &Ident{base{sp}, name} }
func NewArrayLit(sp source.Span, elems []Expr) *ArrayLit { return &ArrayLit{base{sp}, elems} }

func NewBinaryExpr(sp source.Span, op BinOp, l, r Expr) *BinaryExpr {
	return &BinaryExpr{base{sp}, op, l, r}
}

func NewUnaryExpr(sp source.Span, op UnOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{base{sp}, op, operand}
}

func NewCallExpr(sp source.Span, callee Expr, args []Expr) *CallExpr {
	return &CallExpr{base{sp}, callee, args}
}

func NewMacroLit(sp source.Span, params []Pattern, retPat Pattern, body *Block, exprBdy Expr) *MacroLit {
	return &MacroLit{base{sp}, params, retPat, body, exprBdy}
}

func NewTriggerLit(sp source.Span, body *Block) *TriggerLit { return &TriggerLit{base{sp}, body} }

func NewTernaryExpr(sp source.Span, then, cond, els Expr) *TernaryExpr {
	return &TernaryExpr{base{sp}, then, cond, els}
}

func NewTypeofExpr(sp source.Span, operand Expr) *TypeofExpr { return &TypeofExpr{base{sp}, operand} }

func NewMemberExpr(sp source.Span, target Expr, name string) *MemberExpr {
	return &MemberExpr{base{sp}, target, name}
}

func NewTypeMemberExpr(sp source.Span, target Expr) *TypeMemberExpr {
	return &TypeMemberExpr{base{sp}, target}
}

func NewAssocExpr(sp source.Span, target Expr, name string) *AssocExpr {
	return &AssocExpr{base{sp}, target, name}
}

func NewIndexExpr(sp source.Span, target, index Expr) *IndexExpr {
	return &IndexExpr{base{sp}, target, index}
}

func NewDbgExpr(sp source.Span, operand Expr) *DbgExpr { return &DbgExpr{base{sp}, operand} }
func NewMaybeExpr(sp source.Span, operand Expr) *MaybeExpr { return &MaybeExpr{base{sp}, operand} }

func NewTriggerCallExpr(sp source.Span, operand Expr) *TriggerCallExpr {
	return &TriggerCallExpr{base{sp}, operand}
}

func NewIsExpr(sp source.Span, operand Expr, pat Pattern) *IsExpr {
	return &IsExpr{base{sp}, operand, pat}
}

func NewInstanceLit(sp source.Span, of Expr, fields []FieldInit) *InstanceLit {
	return &InstanceLit{base{sp}, of, fields}
}

func NewEmptyExpr(sp source.Span) *EmptyExpr { return &EmptyExpr{base{sp}} }

func NewMatchExpr(sp source.Span, scrutinee Expr, arms []MatchArm) *MatchExpr {
	return &MatchExpr{base{sp}, scrutinee, arms}
}

// ---- Statements --------------------------------------------------------

func NewExprStmt(sp source.Span, x Expr) *ExprStmt { return &ExprStmt{base{sp}, x} }

func NewAssignStmt(sp source.Span, lhs Pattern, rhs Expr) *AssignStmt {
	return &AssignStmt{base{sp}, lhs, rhs}
}

func NewCompoundAssignStmt(sp source.Span, target Pattern, op CompoundOp, rhs Expr) *CompoundAssignStmt {
	return &CompoundAssignStmt{base{sp}, target, op, rhs}
}

func NewIfStmt(sp source.Span, branches []IfBranch, els *Block) *IfStmt {
	return &IfStmt{base{sp}, branches, els}
}

func NewWhileStmt(sp source.Span, cond Expr, body *Block) *WhileStmt {
	return &WhileStmt{base{sp}, cond, body}
}

func NewForStmt(sp source.Span, pat Pattern, iter Expr, body *Block) *ForStmt {
	return &ForStmt{base{sp}, pat, iter, body}
}

func NewTryStmt(sp source.Span, body *Block, catch CatchClause) *TryStmt {
	return &TryStmt{base{sp}, body, catch}
}

func NewReturnStmt(sp source.Span, value Expr) *ReturnStmt { return &ReturnStmt{base{sp}, value} }
func NewBreakStmt(sp source.Span) *BreakStmt                { return &BreakStmt{base{sp}} }
func NewContinueStmt(sp source.Span) *ContinueStmt          { return &ContinueStmt{base{sp}} }
func NewArrowStmt(sp source.Span, inner Stmt) *ArrowStmt    { return &ArrowStmt{base{sp}, inner} }
func NewThrowStmt(sp source.Span, value Expr) *ThrowStmt    { return &ThrowStmt{base{sp}, value} }

func NewTypeDefStmt(sp source.Span, name string, fields []string) *TypeDefStmt {
	return &TypeDefStmt{base{sp}, name, fields}
}

func NewUnsafeBlockStmt(sp source.Span, body *Block) *UnsafeBlockStmt {
	return &UnsafeBlockStmt{base{sp}, body}
}

// ---- Patterns -----------------------------------------------------------

func NewWildcardPattern(sp source.Span) *WildcardPattern { return &WildcardPattern{base{sp}} }

func NewTypeTestPattern(sp source.Span, typeName string) *TypeTestPattern {
	return &TypeTestPattern{base{sp}, typeName}
}

func NewEitherPattern(sp source.Span, l, r Pattern) *EitherPattern {
	return &EitherPattern{base{sp}, l, r}
}

func NewBothPattern(sp source.Span, l, r Pattern) *BothPattern {
	return &BothPattern{base{sp}, l, r}
}

func NewComparePattern(sp source.Span, op CompareOp, value Expr) *ComparePattern {
	return &ComparePattern{base{sp}, op, value}
}

func NewArrayShapePattern(sp source.Span, outer, elem Pattern) *ArrayShapePattern {
	return &ArrayShapePattern{base{sp}, elem, outer}
}

func NewDictShapePattern(sp source.Span, outer, key, value Pattern) *DictShapePattern {
	return &DictShapePattern{base{sp}, key, value, outer}
}

func NewArrayDestructurePattern(sp source.Span, elems []Pattern, rest Pattern) *ArrayDestructurePattern {
	return &ArrayDestructurePattern{base{sp}, elems, rest}
}

func NewDictDestructurePattern(sp source.Span, fields []DictFieldPattern) *DictDestructurePattern {
	return &DictDestructurePattern{base{sp}, fields}
}

func NewInstanceDestructurePattern(sp source.Span, typeName string, fields []DictFieldPattern) *InstanceDestructurePattern {
	return &InstanceDestructurePattern{base{sp}, typeName, fields}
}

func NewMaybeDestructurePattern(sp source.Span, inner Pattern) *MaybeDestructurePattern {
	return &MaybeDestructurePattern{base{sp}, inner}
}

func NewEmptyPattern(sp source.Span) *EmptyPattern { return &EmptyPattern{base{sp}} }

func NewPathPattern(sp source.Span, name string, segments []PathSegment) *PathPattern {
	return &PathPattern{base{sp}, name, segments}
}

func NewMutBinderPattern(sp source.Span, inner Pattern) *MutBinderPattern {
	return &MutBinderPattern{base{sp}, inner}
}

func NewRefBinderPattern(sp source.Span, inner Pattern) *RefBinderPattern {
	return &RefBinderPattern{base{sp}, inner}
}

func NewGuardPattern(sp source.Span, inner Pattern, guard Expr) *GuardPattern {
	return &GuardPattern{base{sp}, inner, guard}
}
