package types

import (
	"schemacore/pkg/catalog/object"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// Prefixes qualifying the columns of the before and after image rows a
// table type exposes to its event handlers.
const (
	NewRowPrefix = "new"
	OldRowPrefix = "old"
)

// TableType is a relation type described by its columns. Values are held
// out of line, so the static footprint is a handle.
type TableType struct {
	columns    *Columns
	isGeneric  bool
	disposable bool
}

func NewTableType(columns *Columns) *TableType {
	if columns == nil {
		columns = NewColumns()
	}
	return &TableType{columns: columns, disposable: true}
}

func NewGenericTableType() *TableType {
	return &TableType{columns: NewColumns(), isGeneric: true, disposable: true}
}

func (t *TableType) Columns() *Columns   { return t.columns }
func (t *TableType) IsGeneric() bool     { return t.isGeneric }
func (t *TableType) IsDisposable() bool  { return t.disposable }
func (t *TableType) StaticByteSize() int { return HandleByteSize }

func (t *TableType) Name() string {
	if t.isGeneric {
		return "table"
	}
	return "table " + t.columns.String()
}

func (t *TableType) String() string { return t.Name() }

// RowType is the row type of the table's rows. Each call builds the view
// from the current columns.
func (t *TableType) RowType() *RowType {
	if t.isGeneric {
		return NewGenericRowType()
	}
	return NewRowTypeFrom(t.columns, "")
}

// NewRowType is the after image row, columns qualified with "new".
func (t *TableType) NewRowType() *RowType {
	return NewRowTypeFrom(t.columns, NewRowPrefix)
}

// OldRowType is the before image row, columns qualified with "old".
func (t *TableType) OldRowType() *RowType {
	return NewRowTypeFrom(t.columns, OldRowPrefix)
}

func (t *TableType) Equals(other DataType) bool {
	o, ok := other.(*TableType)
	if !ok || t.isGeneric != o.isGeneric {
		return false
	}
	return t.columns.Equals(o.columns)
}

func (t *TableType) Equivalent(other DataType) bool {
	o, ok := other.(*TableType)
	if !ok || t.isGeneric != o.isGeneric {
		return false
	}
	return t.columns.Equivalent(o.columns)
}

func (t *TableType) Is(other DataType) bool {
	switch o := other.(type) {
	case *GenericType:
		return true
	case *TableType:
		if o.isGeneric {
			return true
		}
		return !t.isGeneric && t.columns.Is(o.columns)
	default:
		return false
	}
}

func (t *TableType) Compatible(other DataType) bool {
	return compatible(t, other)
}

func (t *TableType) EmitSpecifier(mode primitives.EmitMode) statements.TypeSpecifier {
	if t.isGeneric {
		return statements.TableTypeSpecifier{Generic: true}
	}
	return statements.TableTypeSpecifier{Columns: t.columns.emitSpecifiers(mode)}
}

func (t *TableType) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	return t.columns.includeDependencies(session, source, target, mode)
}
