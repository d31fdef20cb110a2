package catalog

import (
	"fmt"
	"slices"

	"schemacore/pkg/catalog/object"
	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// EnforcedTag marks emitted references whose constraint is not enforced.
const EnforcedTag = "DAE.Enforced"

// ReferenceAction is what happens to referencing rows when a referenced
// row is updated or deleted. Set carries one expression per key column.
type ReferenceAction struct {
	Action      statements.ReferenceAction
	Expressions []statements.Expression
}

func (a ReferenceAction) emit() statements.ReferenceActionDefinition {
	return statements.ReferenceActionDefinition{
		Action:      a.Action,
		Expressions: slices.Clone(a.Expressions),
	}
}

func (a ReferenceAction) equals(other ReferenceAction) bool {
	if a.Action != other.Action || len(a.Expressions) != len(other.Expressions) {
		return false
	}
	for i, e := range a.Expressions {
		if e.String() != other.Expressions[i].String() {
			return false
		}
	}
	return true
}

// Reference binds the source key of one table variable to the target key
// of another. The table variables and the parent reference are shared;
// the keys and action expressions belong to the reference.
type Reference struct {
	object.BaseObject
	sourceTable *TableVar
	targetTable *TableVar
	sourceKey   *JoinKey
	targetKey   *JoinKey
	update      ReferenceAction
	delete      ReferenceAction
	enforced    bool
	parent      *Reference
	isExcluded  bool
}

// NewReference creates a base reference. Both keys must have the same,
// positive number of columns and name columns of their table.
func NewReference(name string, source *TableVar, sourceKey *JoinKey, target *TableVar, targetKey *JoinKey) (*Reference, error) {
	r := &Reference{
		BaseObject:  object.NewBaseObject(object.KindReference, name),
		sourceTable: source,
		targetTable: target,
		enforced:    true,
	}
	if err := r.SetKeys(sourceKey, targetKey); err != nil {
		return nil, err
	}
	return r, nil
}

// SetKeys replaces both join keys together.
func (r *Reference) SetKeys(sourceKey, targetKey *JoinKey) error {
	if sourceKey == nil || targetKey == nil || sourceKey.Count() == 0 {
		return schemaerr.InvalidReference(r.Name(), "reference keys must have at least one column")
	}
	if sourceKey.Count() != targetKey.Count() {
		return schemaerr.InvalidReference(r.Name(),
			fmt.Sprintf("source key has %d columns, target key has %d", sourceKey.Count(), targetKey.Count()))
	}
	if err := checkKeyColumns(r.sourceTable, sourceKey); err != nil {
		return schemaerr.InvalidReference(r.Name(), err.Error())
	}
	if err := checkKeyColumns(r.targetTable, targetKey); err != nil {
		return schemaerr.InvalidReference(r.Name(), err.Error())
	}
	r.sourceKey = sourceKey
	r.targetKey = targetKey
	return nil
}

func checkKeyColumns(tv *TableVar, key *JoinKey) error {
	if tv == nil {
		return fmt.Errorf("missing table variable")
	}
	for _, c := range key.columns {
		if !tv.Columns().Contains(c) {
			return fmt.Errorf("column %s is not a column of %s", c, tv.Name())
		}
	}
	return nil
}

func (r *Reference) SourceTable() *TableVar        { return r.sourceTable }
func (r *Reference) TargetTable() *TableVar        { return r.targetTable }
func (r *Reference) SourceKey() *JoinKey           { return r.sourceKey }
func (r *Reference) TargetKey() *JoinKey           { return r.targetKey }
func (r *Reference) UpdateAction() ReferenceAction { return r.update }
func (r *Reference) DeleteAction() ReferenceAction { return r.delete }
func (r *Reference) Enforced() bool                { return r.enforced }
func (r *Reference) ParentReference() *Reference   { return r.parent }
func (r *Reference) IsDerived() bool               { return r.parent != nil }

// IsExcluded is only meaningful on derived references: set, it stops the
// reference from being inferred again through later joins.
func (r *Reference) IsExcluded() bool { return r.isExcluded }

func (r *Reference) SetExcluded(isExcluded bool) { r.isExcluded = isExcluded }
func (r *Reference) SetEnforced(enforced bool)   { r.enforced = enforced }

// SetUpdateAction sets the update action. A Set action needs one
// expression per key column.
func (r *Reference) SetUpdateAction(action ReferenceAction) error {
	if err := r.checkAction(action); err != nil {
		return err
	}
	r.update = action
	return nil
}

func (r *Reference) SetDeleteAction(action ReferenceAction) error {
	if err := r.checkAction(action); err != nil {
		return err
	}
	r.delete = action
	return nil
}

func (r *Reference) checkAction(action ReferenceAction) error {
	if action.Action != statements.Set {
		return nil
	}
	if len(action.Expressions) != r.sourceKey.Count() {
		return schemaerr.InvalidReference(r.Name(),
			fmt.Sprintf("set action has %d expressions for %d key columns", len(action.Expressions), r.sourceKey.Count()))
	}
	return nil
}

// OriginatingReferenceName is the name of the base reference this
// reference was derived from, or its own name if it is a base reference.
func (r *Reference) OriginatingReferenceName() string {
	current := r
	for current.parent != nil {
		current = current.parent
	}
	return current.Name()
}

// Derive creates a reference derived from r by a query operator, over the
// table variables the operator produced. The keys are copied.
func (r *Reference) Derive(name string, source *TableVar, sourceKey *JoinKey, target *TableVar, targetKey *JoinKey) (*Reference, error) {
	derived, err := NewReference(name, source, sourceKey.Copy(), target, targetKey.Copy())
	if err != nil {
		return nil, err
	}
	derived.parent = r
	derived.update = r.update
	derived.delete = r.delete
	derived.enforced = r.enforced
	derived.SetLibrary(r.Library())
	derived.SetGenerated(true)
	return derived, nil
}

// Dependencies includes both table variables.
func (r *Reference) Dependencies() []primitives.ObjectID {
	deps := r.BaseObject.Dependencies()
	for _, tv := range []*TableVar{r.sourceTable, r.targetTable} {
		if tv.ID().IsValid() && !slices.Contains(deps, tv.ID()) {
			deps = append(deps, tv.ID())
		}
	}
	return deps
}

func (r *Reference) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if target.Contains(r.Name()) {
		return nil
	}
	if err := object.Include(session, r, source, target, mode); err != nil {
		return err
	}
	if err := r.sourceTable.IncludeDependencies(session, source, target, mode); err != nil {
		return err
	}
	return r.targetTable.IncludeDependencies(session, source, target, mode)
}

func (r *Reference) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	md := r.EmitMetaData(mode)
	if !r.enforced {
		md.AddOrUpdate(EnforcedTag, "false", true)
	}
	s := statements.NewCreateReferenceStatement(r.EmitName(), md)
	s.SourceTable = r.sourceTable.EmitName()
	s.SourceColumns = r.sourceKey.Columns()
	s.TargetTable = r.targetTable.EmitName()
	s.TargetColumns = r.targetKey.Columns()
	s.Update = r.update.emit()
	s.Delete = r.delete.emit()
	return s, nil
}

func (r *Reference) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewDropStatement(statements.DropReference, r.EmitName()), nil
}

// EmitAlterStatement alters the actions and tags of a reference whose
// endpoints and keys are unchanged. Otherwise it reports false and the
// reference must be recreated.
func (r *Reference) EmitAlterStatement(old object.Object, mode primitives.EmitMode) (statements.Statement, bool, error) {
	prior, ok := old.(*Reference)
	if !ok || !r.sameShape(prior) {
		return nil, false, nil
	}

	s := statements.NewAlterReferenceStatement(r.EmitName())
	if !r.update.equals(prior.update) {
		update := r.update.emit()
		s.Update = &update
	}
	if !r.delete.equals(prior.delete) {
		del := r.delete.emit()
		s.Delete = &del
	}
	if r.MetaData().String() != prior.MetaData().String() || r.enforced != prior.enforced {
		md := r.EmitMetaData(mode)
		md.AddOrUpdate(EnforcedTag, fmt.Sprintf("%t", r.enforced), true)
		s.MetaData = md
	}
	if s.Update == nil && s.Delete == nil && s.MetaData.Len() == 0 {
		return nil, true, nil
	}
	return s, true, nil
}

func (r *Reference) sameShape(other *Reference) bool {
	return object.EnsureUnrooted(r.sourceTable.Name()) == object.EnsureUnrooted(other.sourceTable.Name()) &&
		object.EnsureUnrooted(r.targetTable.Name()) == object.EnsureUnrooted(other.targetTable.Name()) &&
		r.sourceKey.Equals(other.sourceKey) &&
		r.targetKey.Equals(other.targetKey)
}
