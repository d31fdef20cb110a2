// Package signature models the parameter lists of operators and resolves an
// actual argument list against a set of overloads.
package signature

import (
	"strings"

	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
	"schemacore/pkg/types"
)

// Operand is a formal parameter as declared.
type Operand struct {
	Name     string
	Type     types.DataType
	Modifier statements.Modifier
}

// Element is one position of a signature. The type is shared.
type Element struct {
	Type     types.DataType
	Modifier statements.Modifier
}

// IsVar reports whether the position binds by reference.
func (e Element) IsVar() bool {
	return e.Modifier == statements.Var
}

func (e Element) String() string {
	if e.IsVar() {
		return "var " + e.Type.Name()
	}
	return e.Type.Name()
}

// Signature is a fixed-length vector of parameter types and modifiers.
type Signature struct {
	elements []Element
}

func New(elements ...Element) *Signature {
	return &Signature{elements: append([]Element(nil), elements...)}
}

// FromOperands builds the signature declared by a formal parameter list.
func FromOperands(operands []Operand) *Signature {
	elements := make([]Element, len(operands))
	for i, o := range operands {
		elements[i] = Element{Type: o.Type, Modifier: o.Modifier}
	}
	return &Signature{elements: elements}
}

// Of builds a by-value signature over the given types.
func Of(dataTypes ...types.DataType) *Signature {
	elements := make([]Element, len(dataTypes))
	for i, t := range dataTypes {
		elements[i] = Element{Type: t}
	}
	return &Signature{elements: elements}
}

// Copy returns a signature with the same elements.
func (s *Signature) Copy() *Signature {
	return New(s.elements...)
}

func (s *Signature) Count() int {
	return len(s.elements)
}

func (s *Signature) At(i int) Element {
	return s.elements[i]
}

func (s *Signature) Elements() []Element {
	return append([]Element(nil), s.elements...)
}

// Equals holds when every position pairs equal types with the same var-ness.
func (s *Signature) Equals(other *Signature) bool {
	if s.Count() != other.Count() {
		return false
	}
	for i, e := range s.elements {
		o := other.elements[i]
		if e.IsVar() != o.IsVar() || !e.Type.Equals(o.Type) {
			return false
		}
	}
	return true
}

// Is reports whether arguments of this signature can bind to formal
// parameters of other. Var positions bind invariantly and never unify
// with by-value positions.
func (s *Signature) Is(other *Signature) bool {
	if s.Count() != other.Count() {
		return false
	}
	for i, e := range s.elements {
		o := other.elements[i]
		if e.IsVar() != o.IsVar() {
			return false
		}
		if e.IsVar() {
			if !e.Type.Equals(o.Type) {
				return false
			}
			continue
		}
		if !binds(e.Type, o.Type) {
			return false
		}
	}
	return true
}

func binds(actual, formal types.DataType) bool {
	if exactBinding {
		return actual.Equals(formal)
	}
	return actual.Is(formal)
}

// HasNonScalarElements reports whether any position is neither a scalar
// type nor generic.
func (s *Signature) HasNonScalarElements() bool {
	for _, e := range s.elements {
		if !types.IsScalarOrGeneric(e.Type) {
			return true
		}
	}
	return false
}

// widenings counts the positions at which binding s to formal converts
// to a wider type.
func (s *Signature) widenings(formal *Signature) int {
	n := 0
	for i, e := range s.elements {
		if !e.Type.Equals(formal.elements[i].Type) {
			n++
		}
	}
	return n
}

// String renders "(System.Integer, var System.String)".
func (s *Signature) String() string {
	parts := make([]string, len(s.elements))
	for i, e := range s.elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// EmitParameters renders the signature as formal parameters named by position.
func (s *Signature) EmitParameters(names []string, mode primitives.EmitMode) []statements.FormalParameter {
	params := make([]statements.FormalParameter, len(s.elements))
	for i, e := range s.elements {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		params[i] = statements.FormalParameter{Name: name, Modifier: e.Modifier, Type: e.Type.EmitSpecifier(mode)}
	}
	return params
}
