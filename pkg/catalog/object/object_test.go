package object

import (
	"io"
	"log/slog"
	"testing"

	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

type testSession struct{}

func (testSession) SessionID() primitives.SessionID { return 1 }
func (testSession) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testObject struct {
	BaseObject
}

func newTestObject(kind Kind, name string) *testObject {
	return &testObject{BaseObject: NewBaseObject(kind, name)}
}

func (o *testObject) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewCreateScalarTypeStatement(EnsureRooted(o.Name()), nil, nil), nil
}

func (o *testObject) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewDropStatement(statements.DropType, EnsureRooted(o.Name())), nil
}

func (o *testObject) IncludeDependencies(session Session, source, target *Catalog, mode primitives.EmitMode) error {
	return Include(session, o, source, target, mode)
}

func TestCatalog_AddAssignsIDsInCreationOrder(t *testing.T) {
	c := NewCatalog()
	a := newTestObject(KindScalarType, "Sales.Money")
	b := newTestObject(KindScalarType, "Sales.Rate")

	if err := c.Add(a); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := c.Add(b); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.ID() != 1 || b.ID() != 2 {
		t.Errorf("Expected ids 1 and 2, got %d and %d", a.ID(), b.ID())
	}

	imported := newTestObject(KindScalarType, "Sales.Copied")
	imported.SetID(10)
	if err := c.Add(imported); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if next := c.NextID(); next != 11 {
		t.Errorf("Expected next id 11, got %d", next)
	}

	late := newTestObject(KindScalarType, "Sales.Late")
	late.SetID(5)
	if err := c.Add(late); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got := c.Objects()
	expected := []primitives.ObjectID{1, 2, 5, 10}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d objects, got %d", len(expected), len(got))
	}
	for i, id := range expected {
		if got[i].ID() != id {
			t.Errorf("Position %d: expected id %d, got %d", i, id, got[i].ID())
		}
	}
}

func TestCatalog_DuplicateName(t *testing.T) {
	c := NewCatalog()
	if err := c.Add(newTestObject(KindScalarType, "Sales.Money")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	err := c.Add(newTestObject(KindScalarType, ".Sales.Money"))
	if !schemaerr.HasCode(err, schemaerr.CodeDuplicateObject) {
		t.Errorf("Expected DUPLICATE_OBJECT, got %v", err)
	}
}

func TestCatalog_Resolve(t *testing.T) {
	c := NewCatalog()
	_ = c.Add(newTestObject(KindTableVar, "Sales.Orders"))
	_ = c.Add(newTestObject(KindTableVar, "Archive.Orders"))
	_ = c.Add(newTestObject(KindTableVar, "Sales.Customers"))

	if obj, err := c.Resolve("Customers"); err != nil || obj.Name() != "Sales.Customers" {
		t.Errorf("Expected Sales.Customers, got %v, %v", obj, err)
	}
	if obj, err := c.Resolve(".Sales.Orders"); err != nil || obj.Name() != "Sales.Orders" {
		t.Errorf("Expected rooted lookup to succeed, got %v, %v", obj, err)
	}
	if _, err := c.Resolve("Orders"); !schemaerr.HasCode(err, schemaerr.CodeObjectNotFound) {
		t.Errorf("Expected ambiguous lookup to fail, got %v", err)
	}
}

func TestCatalog_RemoveAndOwned(t *testing.T) {
	c := NewCatalog()
	table := newTestObject(KindTableVar, "Sales.Orders")
	_ = c.Add(table)
	constraint := newTestObject(KindConstraint, "PositiveTotal")
	constraint.SetOwner(table.ID())
	_ = c.Add(newTestObject(KindConstraint, "PositiveTotal"))
	_ = c.Add(constraint)

	if owned := c.OwnedBy(table.ID()); len(owned) != 1 || owned[0] != constraint {
		t.Errorf("Expected exactly the owned constraint, got %v", owned)
	}
	if err := c.Remove(table.ID()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c.Contains("Sales.Orders") || c.ContainsID(table.ID()) {
		t.Error("Removed table should be gone")
	}
	if err := c.Remove(table.ID()); !schemaerr.HasCode(err, schemaerr.CodeObjectNotFound) {
		t.Errorf("Expected OBJECT_NOT_FOUND, got %v", err)
	}
}

func TestInclude_IsIdempotentAndTerminates(t *testing.T) {
	source := NewCatalog()
	a := newTestObject(KindScalarType, "Sales.A")
	b := newTestObject(KindScalarType, "Sales.B")
	_ = source.Add(a)
	_ = source.Add(b)
	a.AddDependency(b.ID())
	b.AddDependency(a.ID())

	target := NewCatalog()
	if err := a.IncludeDependencies(testSession{}, source, target, primitives.ForCopy); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if target.Len() != 2 {
		t.Fatalf("Expected 2 objects in target, got %d", target.Len())
	}
	if err := a.IncludeDependencies(testSession{}, source, target, primitives.ForCopy); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if target.Len() != 2 {
		t.Errorf("Second include changed target size to %d", target.Len())
	}
	if source.Len() != 2 {
		t.Errorf("Source catalog was modified")
	}
}

func TestInclude_MissingDependency(t *testing.T) {
	source := NewCatalog()
	a := newTestObject(KindScalarType, "Sales.A")
	_ = source.Add(a)
	a.AddDependency(99)

	err := a.IncludeDependencies(testSession{}, source, NewCatalog(), primitives.ForCopy)
	if !schemaerr.HasCode(err, schemaerr.CodeObjectNotFound) {
		t.Errorf("Expected OBJECT_NOT_FOUND, got %v", err)
	}
}

func TestSetATObjectImpliesGenerated(t *testing.T) {
	o := newTestObject(KindTableVar, "Sales.AT_Orders")
	o.SetATObject(true)
	if !o.IsGenerated() {
		t.Error("AT objects should be generated")
	}
}
