package statements

type StatementType int

const (
	Block StatementType = iota
	SetLibrary
	CreateScalarType
	CreateRepresentation
	CreateDefault
	CreateSpecial
	CreateTable
	CreateView
	CreateConstraint
	CreateReference
	CreateOperator
	CreateDevice
	AlterTable
	AlterReference
	Drop
)

func (st StatementType) String() string {
	switch st {
	case Block:
		return "BLOCK"
	case SetLibrary:
		return "SET LIBRARY"
	case CreateScalarType:
		return "CREATE TYPE"
	case CreateRepresentation:
		return "CREATE REPRESENTATION"
	case CreateDefault:
		return "CREATE DEFAULT"
	case CreateSpecial:
		return "CREATE SPECIAL"
	case CreateTable:
		return "CREATE TABLE"
	case CreateView:
		return "CREATE VIEW"
	case CreateConstraint:
		return "CREATE CONSTRAINT"
	case CreateReference:
		return "CREATE REFERENCE"
	case CreateOperator:
		return "CREATE OPERATOR"
	case CreateDevice:
		return "CREATE DEVICE"
	case AlterTable:
		return "ALTER TABLE"
	case AlterReference:
		return "ALTER REFERENCE"
	case Drop:
		return "DROP"
	default:
		return "UNKNOWN"
	}
}

// IsCreate returns true for statements that introduce a catalog object.
func (st StatementType) IsCreate() bool {
	return st >= CreateScalarType && st <= CreateDevice
}

// IsAlter returns true for statements that modify an existing catalog object.
func (st StatementType) IsAlter() bool {
	return st == AlterTable || st == AlterReference
}

// Statement is the interface that all emitted statements implement.
type Statement interface {
	// GetType returns the type of the statement
	GetType() StatementType
	// String returns the statement rendered as schema source text
	String() string
	// Validate checks if the statement is well formed and returns an error if not
	Validate() error
}
