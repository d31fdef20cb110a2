package catalog

import (
	"fmt"
	"slices"

	"schemacore/pkg/catalog/object"
	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
	"schemacore/pkg/types"
)

// TableVar is a named relation in the catalog: a base table, or a view
// derived from an expression over other table variables.
type TableVar struct {
	object.BaseObject
	tableType  *types.TableType
	nilable    map[string]bool
	keys       []*Key
	expression statements.Expression
}

func newTableVar(kind object.Kind, name string, tableType *types.TableType) *TableVar {
	return &TableVar{
		BaseObject: object.NewBaseObject(kind, name),
		tableType:  tableType,
		nilable:    make(map[string]bool),
	}
}

func NewBaseTableVar(name string, tableType *types.TableType) *TableVar {
	return newTableVar(object.KindTableVar, name, tableType)
}

// NewDerivedTableVar creates a view. The expression is kept as written.
func NewDerivedTableVar(name string, tableType *types.TableType, expression statements.Expression) *TableVar {
	tv := newTableVar(object.KindView, name, tableType)
	tv.expression = expression
	return tv
}

func (tv *TableVar) TableType() *types.TableType       { return tv.tableType }
func (tv *TableVar) Columns() *types.Columns           { return tv.tableType.Columns() }
func (tv *TableVar) IsDerived() bool                   { return tv.Kind() == object.KindView }
func (tv *TableVar) Expression() statements.Expression { return tv.expression }

// RowType is the type of one row of the table variable.
func (tv *TableVar) RowType() *types.RowType {
	return tv.tableType.RowType()
}

func (tv *TableVar) SetNilable(column string, nilable bool) error {
	if !tv.Columns().Contains(column) {
		return schemaerr.ColumnNotFound(column).In("SetNilable", "TableVar")
	}
	tv.nilable[column] = nilable
	return nil
}

func (tv *TableVar) IsNilable(column string) bool {
	return tv.nilable[column]
}

// AddKey declares a key. Every key column must be a column of the table.
func (tv *TableVar) AddKey(columns ...string) error {
	if len(columns) == 0 {
		return fmt.Errorf("key of %s must have at least one column", tv.Name())
	}
	for _, c := range columns {
		if !tv.Columns().Contains(c) {
			return schemaerr.ColumnNotFound(c).In("AddKey", "TableVar")
		}
	}
	key := NewKey(columns...)
	if tv.HasKey(key) {
		return nil
	}
	tv.keys = append(tv.keys, key)
	return nil
}

func (tv *TableVar) Keys() []*Key {
	return slices.Clone(tv.keys)
}

func (tv *TableVar) HasKey(key *Key) bool {
	for _, k := range tv.keys {
		if k.Equals(key) {
			return true
		}
	}
	return false
}

// IsKey reports whether columns include every column of some key.
func (tv *TableVar) IsKey(columns []string) bool {
	for _, k := range tv.keys {
		covered := true
		for _, c := range k.columns {
			if !slices.Contains(columns, c) {
				covered = false
				break
			}
		}
		if covered {
			return true
		}
	}
	return false
}

// SourceReferences returns the references in c whose source is tv, in
// creation order.
func (tv *TableVar) SourceReferences(c *object.Catalog) *References {
	return tv.references(c, func(r *Reference) bool { return r.SourceTable().ID() == tv.ID() })
}

// TargetReferences returns the references in c that target tv.
func (tv *TableVar) TargetReferences(c *object.Catalog) *References {
	return tv.references(c, func(r *Reference) bool { return r.TargetTable().ID() == tv.ID() })
}

func (tv *TableVar) references(c *object.Catalog, match func(*Reference) bool) *References {
	result := NewReferences()
	for _, obj := range c.Objects() {
		if r, ok := obj.(*Reference); ok && match(r) {
			result.AddInCreationOrder(r)
		}
	}
	return result
}

func (tv *TableVar) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if target.Contains(tv.Name()) {
		return nil
	}
	if err := object.Include(session, tv, source, target, mode); err != nil {
		return err
	}
	if err := tv.tableType.IncludeDependencies(session, source, target, mode); err != nil {
		return err
	}
	if !tv.ID().IsValid() {
		return nil
	}
	for _, owned := range source.OwnedBy(tv.ID()) {
		if err := owned.IncludeDependencies(session, source, target, mode); err != nil {
			return err
		}
	}
	return nil
}

func (tv *TableVar) columnDefinition(c *types.Column, mode primitives.EmitMode) statements.ColumnDefinition {
	return statements.ColumnDefinition{
		Name:      c.Name(),
		Type:      c.DataType().EmitSpecifier(mode),
		IsNilable: tv.nilable[c.Name()],
	}
}

func (tv *TableVar) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	md := tv.EmitMetaData(mode)
	if tv.IsDerived() {
		return statements.NewCreateViewStatement(tv.EmitName(), tv.expression, md), nil
	}

	s := statements.NewCreateTableStatement(tv.EmitName(), md)
	for _, c := range tv.Columns().All() {
		def := tv.columnDefinition(c, mode)
		s.AddColumn(def.Name, def.Type, def.IsNilable)
	}
	for _, k := range tv.keys {
		s.AddKey(k.Columns()...)
	}
	return s, nil
}

func (tv *TableVar) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	if tv.IsDerived() {
		return statements.NewDropStatement(statements.DropView, tv.EmitName()), nil
	}
	return statements.NewDropStatement(statements.DropTable, tv.EmitName()), nil
}

// EmitAlterStatement describes the changes from old to tv as column, key
// and tag alterations. Views cannot be altered and report false.
func (tv *TableVar) EmitAlterStatement(old object.Object, mode primitives.EmitMode) (statements.Statement, bool, error) {
	prior, ok := old.(*TableVar)
	if !ok || tv.IsDerived() || prior.IsDerived() {
		return nil, false, nil
	}

	s := statements.NewAlterTableStatement(tv.EmitName())
	for _, c := range tv.Columns().All() {
		i := prior.Columns().IndexOfName(c.Name())
		if i < 0 {
			s.CreateColumns = append(s.CreateColumns, tv.columnDefinition(c, mode))
			continue
		}
		before := prior.Columns().At(i)
		if !before.DataType().Equals(c.DataType()) || prior.IsNilable(c.Name()) != tv.IsNilable(c.Name()) {
			s.AlterColumns = append(s.AlterColumns, tv.columnDefinition(c, mode))
		}
	}
	for _, c := range prior.Columns().All() {
		if !tv.Columns().Contains(c.Name()) {
			s.DropColumns = append(s.DropColumns, c.Name())
		}
	}
	for _, k := range prior.keys {
		if !tv.HasKey(k) {
			s.DropKeys = append(s.DropKeys, statements.KeyDefinition{Columns: k.Columns()})
		}
	}
	for _, k := range tv.keys {
		if !prior.HasKey(k) {
			s.CreateKeys = append(s.CreateKeys, statements.KeyDefinition{Columns: k.Columns()})
		}
	}
	if tv.MetaData().String() != prior.MetaData().String() {
		s.MetaData = tv.EmitMetaData(mode)
	}

	if s.IsEmpty() {
		return nil, true, nil
	}
	return s, true, nil
}
