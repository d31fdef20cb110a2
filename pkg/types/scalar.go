package types

import (
	"slices"

	"schemacore/pkg/catalog/object"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// ScalarType is a named domain type. It is a catalog object: its
// representations, default and specials are owned objects stored in the
// same catalog under its id.
type ScalarType struct {
	object.BaseObject
	parents    []*ScalarType
	byteSize   int
	disposable bool
	isGeneric  bool
}

// NewScalarType creates a scalar type with the given native footprint.
func NewScalarType(name string, byteSize int) *ScalarType {
	return &ScalarType{
		BaseObject: object.NewBaseObject(object.KindScalarType, name),
		byteSize:   byteSize,
	}
}

// NewGenericScalarType creates the scalar family member every scalar type Is.
func NewGenericScalarType(name string) *ScalarType {
	t := NewScalarType(name, HandleByteSize)
	t.isGeneric = true
	return t
}

func (t *ScalarType) String() string      { return t.Name() }
func (t *ScalarType) IsGeneric() bool     { return t.isGeneric }
func (t *ScalarType) IsDisposable() bool  { return t.disposable }
func (t *ScalarType) StaticByteSize() int { return t.byteSize }

func (t *ScalarType) SetDisposable(disposable bool) {
	t.disposable = disposable
}

// AddParent declares t "like" parent, making t a subtype of parent.
func (t *ScalarType) AddParent(parent *ScalarType) {
	for _, p := range t.parents {
		if p == parent {
			return
		}
	}
	t.parents = append(t.parents, parent)
}

// Dependencies includes the parent types.
func (t *ScalarType) Dependencies() []primitives.ObjectID {
	deps := t.BaseObject.Dependencies()
	for _, p := range t.parents {
		if p.ID().IsValid() && !slices.Contains(deps, p.ID()) {
			deps = append(deps, p.ID())
		}
	}
	return deps
}

func (t *ScalarType) Parents() []*ScalarType {
	return append([]*ScalarType(nil), t.parents...)
}

func (t *ScalarType) sameName(other *ScalarType) bool {
	return object.EnsureUnrooted(t.Name()) == object.EnsureUnrooted(other.Name())
}

func (t *ScalarType) Equals(other DataType) bool {
	o, ok := other.(*ScalarType)
	return ok && t.sameName(o)
}

func (t *ScalarType) Equivalent(other DataType) bool {
	return t.Equals(other)
}

// Is holds for generic, for the generic scalar family, for t itself and
// for every ancestor reachable through parent types.
func (t *ScalarType) Is(other DataType) bool {
	switch o := other.(type) {
	case *GenericType:
		return true
	case *ScalarType:
		if o.isGeneric || t.sameName(o) {
			return true
		}
		for _, p := range t.parents {
			if p.Is(o) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (t *ScalarType) Compatible(other DataType) bool {
	return compatible(t, other)
}

func (t *ScalarType) EmitSpecifier(mode primitives.EmitMode) statements.TypeSpecifier {
	if t.isGeneric {
		return statements.ScalarTypeSpecifier{Generic: true}
	}
	return statements.ScalarTypeSpecifier{Name: object.EnsureRooted(t.Name())}
}

// IncludeDependencies adds t, its parents and the objects it owns to target.
func (t *ScalarType) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if t.isGeneric || target.Contains(t.Name()) {
		return nil
	}
	if err := object.Include(session, t, source, target, mode); err != nil {
		return err
	}
	for _, p := range t.parents {
		if err := p.IncludeDependencies(session, source, target, mode); err != nil {
			return err
		}
	}
	if !t.ID().IsValid() {
		return nil
	}
	for _, owned := range source.OwnedBy(t.ID()) {
		if err := owned.IncludeDependencies(session, source, target, mode); err != nil {
			return err
		}
	}
	return nil
}

func (t *ScalarType) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	parents := make([]string, len(t.parents))
	for i, p := range t.parents {
		parents[i] = object.EnsureRooted(p.Name())
	}
	return statements.NewCreateScalarTypeStatement(t.EmitName(), parents, t.EmitMetaData(mode)), nil
}

func (t *ScalarType) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewDropStatement(statements.DropType, t.EmitName()), nil
}
