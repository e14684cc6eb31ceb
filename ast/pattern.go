package ast

// WildcardPattern is `_`: matches anything, binds nothing.
type WildcardPattern struct{ base }

// TypeTestPattern is `@Type`: matches a value of the named type.
type TypeTestPattern struct {
	base
	TypeName string
}

// EitherPattern is `P | Q`: matches if either alternative matches.
type EitherPattern struct {
	base
	Left, Right Pattern
}

// BothPattern is `P & Q` or `P : Q`: matches if both alternatives match.
type BothPattern struct {
	base
	Left, Right Pattern
}

// CompareOp enumerates the literal-comparison pattern operators.
type CompareOp int

const (
	PEq CompareOp = iota
	PNe
	PLt
	PLe
	PGt
	PGe
	PIn
)

// ComparePattern matches when the scrutinee compares to Value per Op.
type ComparePattern struct {
	base
	Op    CompareOp
	Value Expr
}

// ArrayShapePattern is `P[Q]`: an array whose every element matches Q, and
// whose own identity binds to P (spec.md §3).
type ArrayShapePattern struct {
	base
	Elem  Pattern
	Outer Pattern
}

// DictShapePattern is the dict analogue of ArrayShapePattern.
type DictShapePattern struct {
	base
	Key, Value Pattern
	Outer      Pattern
}

// ArrayDestructurePattern destructures an array positionally.
type ArrayDestructurePattern struct {
	base
	Elems []Pattern
	Rest  Pattern // nil if there is no `...rest` tail
}

type DictFieldPattern struct {
	Key string
	Pat Pattern
}

// DictDestructurePattern destructures a dict by field name.
type DictDestructurePattern struct {
	base
	Fields []DictFieldPattern
}

// InstanceDestructurePattern destructures a named-type instance by field.
type InstanceDestructurePattern struct {
	base
	TypeName string
	Fields   []DictFieldPattern
}

// MaybeDestructurePattern matches a present maybe-value, binding its payload
// to Inner.
type MaybeDestructurePattern struct {
	base
	Inner Pattern
}

// EmptyPattern matches the unit value.
type EmptyPattern struct{ base }

// PathSegmentKind enumerates the three postfix forms a path pattern can
// chain: `.field`, `[index]`, `::assoc`.
type PathSegmentKind int

const (
	PathField PathSegmentKind = iota
	PathIndex
	PathAssoc
)

type PathSegment struct {
	Kind  PathSegmentKind
	Name  string // Field, Assoc
	Index Expr   // Index
}

// PathPattern is `var.field[index]::assoc`: an assignment target. A bare
// identifier with no segments is the common case (a fresh or existing
// binding) and the only path form the compiler lowers; a path with segments
// is rejected with a diagnostic.
type PathPattern struct {
	base
	Name     string
	Segments []PathSegment
}

// MutBinderPattern is `mut name`: a fresh, mutable binding.
type MutBinderPattern struct {
	base
	Inner Pattern
}

// RefBinderPattern is `&name`: binds a reference rather than copying.
type RefBinderPattern struct {
	base
	Inner Pattern
}

// GuardPattern is `P if expr`: P must match, and the guard must evaluate
// truthy, for the whole pattern to match.
type GuardPattern struct {
	base
	Inner Pattern
	Guard Expr
}

func (*WildcardPattern) patternNode()            {}
func (*TypeTestPattern) patternNode()            {}
func (*EitherPattern) patternNode()              {}
func (*BothPattern) patternNode()                {}
func (*ComparePattern) patternNode()             {}
func (*ArrayShapePattern) patternNode()          {}
func (*DictShapePattern) patternNode()           {}
func (*ArrayDestructurePattern) patternNode()    {}
func (*DictDestructurePattern) patternNode()     {}
func (*InstanceDestructurePattern) patternNode() {}
func (*MaybeDestructurePattern) patternNode()    {}
func (*EmptyPattern) patternNode()               {}
func (*PathPattern) patternNode()                {}
func (*MutBinderPattern) patternNode()           {}
func (*RefBinderPattern) patternNode()           {}
func (*GuardPattern) patternNode()               {}
