package types

import (
	"schemacore/pkg/catalog/object"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// ListType is an ordered collection of values of one element type. The
// element type is shared, not copied.
type ListType struct {
	element    DataType
	isGeneric  bool
	disposable bool
}

// NewListType returns a list of element. A nil element gives the generic
// list type.
func NewListType(element DataType) *ListType {
	if element == nil {
		return NewGenericListType()
	}
	return &ListType{element: element, disposable: true}
}

func NewGenericListType() *ListType {
	return &ListType{isGeneric: true, disposable: true}
}

// ElementType is nil for the generic list type.
func (t *ListType) ElementType() DataType { return t.element }
func (t *ListType) IsGeneric() bool       { return t.isGeneric }
func (t *ListType) IsDisposable() bool    { return t.disposable }
func (t *ListType) StaticByteSize() int   { return HandleByteSize }

func (t *ListType) Name() string {
	if t.isGeneric || t.element == nil {
		return "list"
	}
	return "list(" + t.element.Name() + ")"
}

func (t *ListType) String() string { return t.Name() }

func (t *ListType) Equals(other DataType) bool {
	o, ok := other.(*ListType)
	if !ok || t.isGeneric != o.isGeneric {
		return false
	}
	return t.isGeneric || t.element.Equals(o.element)
}

func (t *ListType) Equivalent(other DataType) bool {
	o, ok := other.(*ListType)
	if !ok || t.isGeneric != o.isGeneric {
		return false
	}
	return t.isGeneric || t.element.Equivalent(o.element)
}

// Is holds against the generic list type, and otherwise when the element
// type Is the other's element type.
func (t *ListType) Is(other DataType) bool {
	switch o := other.(type) {
	case *GenericType:
		return true
	case *ListType:
		if o.isGeneric {
			return true
		}
		return !t.isGeneric && t.element.Is(o.element)
	default:
		return false
	}
}

func (t *ListType) Compatible(other DataType) bool {
	return compatible(t, other)
}

func (t *ListType) EmitSpecifier(mode primitives.EmitMode) statements.TypeSpecifier {
	if t.isGeneric {
		return statements.ListTypeSpecifier{Generic: true}
	}
	return statements.ListTypeSpecifier{Element: t.element.EmitSpecifier(mode)}
}

func (t *ListType) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if t.element == nil {
		return nil
	}
	return t.element.IncludeDependencies(session, source, target, mode)
}
