package types

import (
	"schemacore/pkg/catalog/object"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// RowType is a tuple type described by its columns. The generic row type
// has no columns and every row type Is it.
type RowType struct {
	columns    *Columns
	isGeneric  bool
	disposable bool
}

// NewRowType creates a row type over the given columns. The container is
// owned by the row type from here on.
func NewRowType(columns *Columns) *RowType {
	if columns == nil {
		columns = NewColumns()
	}
	return &RowType{columns: columns}
}

// NewRowTypeFrom builds a row type from copies of columns, qualified by prefix.
func NewRowTypeFrom(columns *Columns, prefix string) *RowType {
	return &RowType{columns: columns.Copy(prefix)}
}

func NewGenericRowType() *RowType {
	return &RowType{columns: NewColumns(), isGeneric: true}
}

func (t *RowType) Columns() *Columns  { return t.columns }
func (t *RowType) IsGeneric() bool    { return t.isGeneric }
func (t *RowType) IsDisposable() bool { return t.disposable }

func (t *RowType) SetDisposable(disposable bool) {
	t.disposable = disposable
}

func (t *RowType) Name() string {
	if t.isGeneric {
		return "row"
	}
	return "row " + t.columns.String()
}

func (t *RowType) String() string { return t.Name() }

// StaticByteSize is a two-byte-per-eight-columns nil bitmap followed by
// the column values.
func (t *RowType) StaticByteSize() int {
	return nilBitmapSize(t.columns.Count()) + t.columns.staticByteSize()
}

func nilBitmapSize(columnCount int) int {
	return (columnCount + 7) / 8 * 2
}

func (t *RowType) Equals(other DataType) bool {
	o, ok := other.(*RowType)
	if !ok || t.isGeneric != o.isGeneric {
		return false
	}
	return t.columns.Equals(o.columns)
}

func (t *RowType) Equivalent(other DataType) bool {
	o, ok := other.(*RowType)
	if !ok || t.isGeneric != o.isGeneric {
		return false
	}
	return t.columns.Equivalent(o.columns)
}

func (t *RowType) Is(other DataType) bool {
	switch o := other.(type) {
	case *GenericType:
		return true
	case *RowType:
		if o.isGeneric {
			return true
		}
		return !t.isGeneric && t.columns.Is(o.columns)
	default:
		return false
	}
}

func (t *RowType) Compatible(other DataType) bool {
	return compatible(t, other)
}

func (t *RowType) EmitSpecifier(mode primitives.EmitMode) statements.TypeSpecifier {
	if t.isGeneric {
		return statements.RowTypeSpecifier{Generic: true}
	}
	return statements.RowTypeSpecifier{Columns: t.columns.emitSpecifiers(mode)}
}

func (t *RowType) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	return t.columns.includeDependencies(session, source, target, mode)
}
