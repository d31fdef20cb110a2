package statements

// Expression is an already-compiled expression node. The core never
// inspects expressions; it only carries them into emitted statements.
type Expression interface {
	String() string
}

// RawExpression is an expression held as source text.
type RawExpression string

func (e RawExpression) String() string {
	return string(e)
}

// Modifier is the passing convention of an operator parameter.
type Modifier int

const (
	In Modifier = iota
	Var
	Const
)

func (m Modifier) String() string {
	switch m {
	case Var:
		return "var"
	case Const:
		return "const"
	default:
		return ""
	}
}

// ParseModifier accepts "", "in", "var" and "const".
func ParseModifier(s string) (Modifier, bool) {
	switch s {
	case "", "in":
		return In, true
	case "var":
		return Var, true
	case "const":
		return Const, true
	default:
		return In, false
	}
}

// ReferenceAction is the referential action taken when a target row changes.
type ReferenceAction int

const (
	Require ReferenceAction = iota
	Cascade
	Clear
	Set
)

func (a ReferenceAction) String() string {
	switch a {
	case Cascade:
		return "cascade"
	case Clear:
		return "clear"
	case Set:
		return "set"
	default:
		return "require"
	}
}

// ParseReferenceAction accepts the lower-case action keywords.
func ParseReferenceAction(s string) (ReferenceAction, bool) {
	switch s {
	case "", "require":
		return Require, true
	case "cascade":
		return Cascade, true
	case "clear":
		return Clear, true
	case "set":
		return Set, true
	default:
		return Require, false
	}
}
