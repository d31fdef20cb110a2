package catalog

import (
	"fmt"

	"schemacore/pkg/types"
)

// ColumnDef defines a column for table variable building.
type ColumnDef struct {
	Name      string
	Type      types.DataType
	IsNilable bool
}

// TableVarBuilder assembles a base table variable column by column.
type TableVarBuilder struct {
	name    string
	library string
	columns []ColumnDef
	keys    [][]string
}

func NewTableVarBuilder(name string) *TableVarBuilder {
	return &TableVarBuilder{
		name:    name,
		columns: make([]ColumnDef, 0),
	}
}

// InLibrary sets the library the table variable belongs to.
func (b *TableVarBuilder) InLibrary(library string) *TableVarBuilder {
	b.library = library
	return b
}

// AddColumn adds a column that requires a value.
func (b *TableVarBuilder) AddColumn(name string, dataType types.DataType) *TableVarBuilder {
	b.columns = append(b.columns, ColumnDef{Name: name, Type: dataType})
	return b
}

// AddNilableColumn adds a column that may be nil.
func (b *TableVarBuilder) AddNilableColumn(name string, dataType types.DataType) *TableVarBuilder {
	b.columns = append(b.columns, ColumnDef{Name: name, Type: dataType, IsNilable: true})
	return b
}

// AddKey declares a key over previously added columns.
func (b *TableVarBuilder) AddKey(columns ...string) *TableVarBuilder {
	b.keys = append(b.keys, columns)
	return b
}

// Build constructs the table variable.
func (b *TableVarBuilder) Build() (*TableVar, error) {
	if b.name == "" {
		return nil, fmt.Errorf("table variable name cannot be empty")
	}

	columns := types.NewColumns()
	for _, def := range b.columns {
		if def.Type == nil {
			return nil, fmt.Errorf("column '%s' of %s has no type", def.Name, b.name)
		}
		if err := columns.Add(types.NewColumn(def.Name, def.Type)); err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", b.name, err)
		}
	}

	tv := NewBaseTableVar(b.name, types.NewTableType(columns))
	tv.SetLibrary(b.library)
	for _, def := range b.columns {
		if def.IsNilable {
			if err := tv.SetNilable(def.Name, true); err != nil {
				return nil, err
			}
		}
	}
	for _, key := range b.keys {
		if err := tv.AddKey(key...); err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", b.name, err)
		}
	}
	return tv, nil
}
