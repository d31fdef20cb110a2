package catalog

import (
	"schemacore/pkg/catalog/object"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
	"schemacore/pkg/types"
)

// ownedObject is the shared part of objects that live inside a scalar type
// or a table variable. The owner is referenced by id; its name is kept for
// emission.
type ownedObject struct {
	object.BaseObject
	ownerName string
}

func newOwnedObject(kind object.Kind, owner object.Object, name string) ownedObject {
	o := ownedObject{
		BaseObject: object.NewBaseObject(kind, name),
		ownerName:  owner.Name(),
	}
	o.SetOwner(owner.ID())
	o.SetLibrary(owner.Library())
	o.SetSystem(owner.IsSystem())
	if owner.ID().IsValid() {
		o.AddDependency(owner.ID())
	}
	return o
}

// OwnerName is the name of the owning scalar type or table variable.
func (o *ownedObject) OwnerName() string { return o.ownerName }

func (o *ownedObject) emitOwnerName() string {
	return object.EnsureRooted(o.ownerName)
}

// RepresentationProperty is one component of a representation.
type RepresentationProperty struct {
	Name string
	Type types.DataType
}

// Representation is a physical representation of a scalar type.
type Representation struct {
	ownedObject
	properties []RepresentationProperty
}

func NewRepresentation(owner *types.ScalarType, name string, properties ...RepresentationProperty) *Representation {
	return &Representation{
		ownedObject: newOwnedObject(object.KindRepresentation, owner, name),
		properties:  append([]RepresentationProperty(nil), properties...),
	}
}

func (r *Representation) Properties() []RepresentationProperty {
	return append([]RepresentationProperty(nil), r.properties...)
}

func (r *Representation) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if target.ContainsID(r.ID()) {
		return nil
	}
	if err := object.Include(session, r, source, target, mode); err != nil {
		return err
	}
	for _, p := range r.properties {
		if err := p.Type.IncludeDependencies(session, source, target, mode); err != nil {
			return err
		}
	}
	return nil
}

func (r *Representation) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	props := make([]statements.NamedTypeSpecifier, len(r.properties))
	for i, p := range r.properties {
		props[i] = statements.NamedTypeSpecifier{Name: p.Name, Type: p.Type.EmitSpecifier(mode)}
	}
	return statements.NewCreateRepresentationStatement(r.emitOwnerName(), r.Name(), props, r.EmitMetaData(mode)), nil
}

func (r *Representation) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewDropOwnedStatement(statements.DropRepresentation, r.emitOwnerName(), r.Name()), nil
}

// ScalarTypeDefault is the default value of a scalar type.
type ScalarTypeDefault struct {
	ownedObject
	expression statements.Expression
}

func NewScalarTypeDefault(owner *types.ScalarType, expression statements.Expression) *ScalarTypeDefault {
	return &ScalarTypeDefault{
		ownedObject: newOwnedObject(object.KindScalarTypeDefault, owner, owner.Name()+".Default"),
		expression:  expression,
	}
}

func (d *ScalarTypeDefault) Expression() statements.Expression { return d.expression }

func (d *ScalarTypeDefault) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if target.ContainsID(d.ID()) {
		return nil
	}
	return object.Include(session, d, source, target, mode)
}

func (d *ScalarTypeDefault) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewCreateDefaultStatement(d.emitOwnerName(), "", d.expression, d.EmitMetaData(mode)), nil
}

func (d *ScalarTypeDefault) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewDropOwnedStatement(statements.DropDefault, d.emitOwnerName(), ""), nil
}

// ColumnDefault is the default value of one column of a table variable.
type ColumnDefault struct {
	ownedObject
	column     string
	expression statements.Expression
}

func NewColumnDefault(owner *TableVar, column string, expression statements.Expression) *ColumnDefault {
	return &ColumnDefault{
		ownedObject: newOwnedObject(object.KindColumnDefault, owner, owner.Name()+"."+column+".Default"),
		column:      column,
		expression:  expression,
	}
}

func (d *ColumnDefault) ColumnName() string                { return d.column }
func (d *ColumnDefault) Expression() statements.Expression { return d.expression }

func (d *ColumnDefault) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if target.ContainsID(d.ID()) {
		return nil
	}
	return object.Include(session, d, source, target, mode)
}

func (d *ColumnDefault) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewCreateDefaultStatement(d.emitOwnerName(), d.column, d.expression, d.EmitMetaData(mode)), nil
}

func (d *ColumnDefault) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	s := statements.NewDropOwnedStatement(statements.DropDefault, d.emitOwnerName(), "")
	s.ColumnName = d.column
	return s, nil
}

// Special is a named distinguished value of a scalar type.
type Special struct {
	ownedObject
	value statements.Expression
}

func NewSpecial(owner *types.ScalarType, name string, value statements.Expression) *Special {
	return &Special{
		ownedObject: newOwnedObject(object.KindSpecial, owner, name),
		value:       value,
	}
}

func (s *Special) Value() statements.Expression { return s.value }

func (s *Special) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if target.ContainsID(s.ID()) {
		return nil
	}
	return object.Include(session, s, source, target, mode)
}

func (s *Special) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewCreateSpecialStatement(s.emitOwnerName(), s.Name(), s.value, s.EmitMetaData(mode)), nil
}

func (s *Special) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewDropOwnedStatement(statements.DropSpecial, s.emitOwnerName(), s.Name()), nil
}

// Constraint is a row or table level constraint of a table variable.
type Constraint struct {
	ownedObject
	expression statements.Expression
}

func NewConstraint(owner *TableVar, name string, expression statements.Expression) *Constraint {
	return &Constraint{
		ownedObject: newOwnedObject(object.KindConstraint, owner, name),
		expression:  expression,
	}
}

func (c *Constraint) Expression() statements.Expression { return c.expression }

func (c *Constraint) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if target.ContainsID(c.ID()) {
		return nil
	}
	return object.Include(session, c, source, target, mode)
}

func (c *Constraint) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewCreateConstraintStatement(c.emitOwnerName(), c.Name(), c.expression, c.EmitMetaData(mode)), nil
}

func (c *Constraint) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewDropOwnedStatement(statements.DropConstraint, c.emitOwnerName(), c.Name()), nil
}
