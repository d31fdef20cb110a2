package types

import (
	"schemacore/pkg/catalog/object"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// GenericType is the universal supertype: every type Is generic.
type GenericType struct{}

func NewGenericType() *GenericType {
	return &GenericType{}
}

func (t *GenericType) Name() string        { return "generic" }
func (t *GenericType) String() string      { return t.Name() }
func (t *GenericType) IsGeneric() bool     { return true }
func (t *GenericType) IsDisposable() bool  { return true }
func (t *GenericType) StaticByteSize() int { return HandleByteSize }

func (t *GenericType) Equals(other DataType) bool {
	_, ok := other.(*GenericType)
	return ok
}

func (t *GenericType) Equivalent(other DataType) bool {
	return t.Equals(other)
}

// Is holds only against generic itself.
func (t *GenericType) Is(other DataType) bool {
	return t.Equals(other)
}

func (t *GenericType) Compatible(other DataType) bool {
	return compatible(t, other)
}

func (t *GenericType) EmitSpecifier(mode primitives.EmitMode) statements.TypeSpecifier {
	return statements.GenericTypeSpecifier{}
}

func (t *GenericType) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	return nil
}
