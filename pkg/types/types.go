// Package types implements the data type algebra: the closed set of
// Generic, Scalar, Row, Table and List types, the column containers row and
// table types are built from, and the relations between them.
//
// Equals is structural identity within a variant. Equivalent is reserved for
// physical layout comparisons and is order sensitive for rows and tables.
// Is is asymmetric structural subtyping and Compatible is Is in either
// direction.
package types

import (
	"schemacore/pkg/catalog/object"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// HandleByteSize is the fixed footprint of values stored out of line behind
// a stream handle: lists, tables and generic values.
const HandleByteSize = 8

// DataType is implemented by exactly the five variants in this package.
type DataType interface {
	Name() string
	String() string

	// IsGeneric distinguishes the unparameterized family member, e.g.
	// "table" rather than "table { ID : System.Integer }".
	IsGeneric() bool

	// IsDisposable reports whether values need explicit release.
	IsDisposable() bool

	// StaticByteSize is the fixed-width storage footprint of a value.
	StaticByteSize() int

	Equals(other DataType) bool
	Equivalent(other DataType) bool
	Is(other DataType) bool
	Compatible(other DataType) bool

	EmitSpecifier(mode primitives.EmitMode) statements.TypeSpecifier

	// IncludeDependencies adds every named type this type refers to into
	// target exactly once. source is only read.
	IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error

	sealed()
}

func compatible(a, b DataType) bool {
	return a.Is(b) || b.Is(a)
}

// IsScalarOrGeneric reports whether t is a scalar type or the universal generic type.
func IsScalarOrGeneric(t DataType) bool {
	switch t.(type) {
	case *ScalarType, *GenericType:
		return true
	default:
		return false
	}
}

func (*GenericType) sealed() {}
func (*ScalarType) sealed()  {}
func (*RowType) sealed()     {}
func (*TableType) sealed()   {}
func (*ListType) sealed()    {}
