package emission

import (
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"schemacore/pkg/catalog"
	"schemacore/pkg/catalog/catalogio"
	"schemacore/pkg/catalog/object"
	"schemacore/pkg/metrics"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
	"schemacore/pkg/types"
)

type testSession struct{}

func (testSession) SessionID() primitives.SessionID { return 1 }
func (testSession) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubObject struct {
	object.BaseObject
}

func newStub(id primitives.ObjectID, kind object.Kind, name string) *stubObject {
	s := &stubObject{BaseObject: object.NewBaseObject(kind, name)}
	s.SetID(id)
	s.SetLibrary("Sales")
	return s
}

func (s *stubObject) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewSetLibraryStatement(s.Name()), nil
}

func (s *stubObject) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewDropStatement(statements.DropTable, s.Name()), nil
}

func (s *stubObject) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	return object.Include(session, s, source, target, mode)
}

type sales struct {
	types     *types.SystemTypes
	catalog   *object.Catalog
	customers *catalog.TableVar
	orders    *catalog.TableVar
	reference *catalog.Reference
}

// newSales builds System (ids 1-14), Sales.Customers (15), Sales.Orders (16)
// and the reference from orders to customers (17).
func newSales(t *testing.T, withReference bool) *sales {
	t.Helper()
	st := types.NewSystemTypes()
	c := object.NewCatalog()
	if err := st.Register(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	c.AddLibrary(object.Library{Name: "Sales", Requisites: []string{"System"}})

	customers, err := catalog.NewTableVarBuilder("Sales.Customers").
		InLibrary("Sales").
		AddColumn("ID", st.Integer).
		AddNilableColumn("Name", st.String).
		AddKey("ID").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	orders, err := catalog.NewTableVarBuilder("Sales.Orders").
		InLibrary("Sales").
		AddColumn("ID", st.Integer).
		AddColumn("CustomerID", st.Integer).
		AddColumn("Total", st.Money).
		AddKey("ID").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, tv := range []*catalog.TableVar{customers, orders} {
		if err := c.Add(tv); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	s := &sales{types: st, catalog: c, customers: customers, orders: orders}
	if withReference {
		r, err := catalog.NewReference("Sales.OrdersCustomer", orders, catalog.NewJoinKey("CustomerID"), customers, catalog.NewJoinKey("ID"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		r.SetLibrary("Sales")
		if err := c.Add(r); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		s.reference = r
	}
	return s
}

func statementTypes(block *statements.BlockStatement) []statements.StatementType {
	result := make([]statements.StatementType, len(block.Statements))
	for i, s := range block.Statements {
		result[i] = s.GetType()
	}
	return result
}

func TestShouldEmit(t *testing.T) {
	plain := newStub(20, object.KindTableVar, "Sales.Plain")

	system := newStub(21, object.KindScalarType, "System.Thing")
	system.SetSystem(true)

	generated := newStub(22, object.KindTableVar, "Sales.Generated")
	generated.SetGenerated(true)

	session := newStub(23, object.KindTableVar, "Sales.Session")
	session.SetGenerated(true)
	session.SetSession(1, "Temp")

	at := newStub(24, object.KindTableVar, "Sales.AT")
	at.SetATObject(true)

	device := newStub(25, object.KindTableVar, "Sales.OnDevice")
	device.SetDeviceSpecific(true)

	tests := []struct {
		name     string
		opts     Options
		obj      object.Object
		expected bool
	}{
		{"plain object with no request", Options{}, plain, true},
		{"system object excluded by default", Options{}, system, false},
		{"system object with include system", Options{IncludeSystem: true}, system, true},
		{"generated object excluded by default", Options{}, generated, false},
		{"generated object with include generated", Options{IncludeGenerated: true}, generated, true},
		{"generated session object", Options{}, session, true},
		{"AT object not explicitly requested", Options{}, at, false},
		{"AT object explicitly requested", Options{RequestedObjects: []primitives.ObjectID{24}}, at, true},
		{"device specific for remote", Options{Mode: primitives.ForRemote}, device, false},
		{"device specific for copy", Options{Mode: primitives.ForCopy}, device, true},
		{"not requested", Options{RequestedObjects: []primitives.ObjectID{99}}, plain, false},
		{"requested", Options{RequestedObjects: []primitives.ObjectID{20}}, plain, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ec := NewEmissionContext(testSession{}, tt.opts)
			if got := ec.ShouldEmit(tt.obj); got != tt.expected {
				t.Errorf("Expected ShouldEmit %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestShouldEmitDrop(t *testing.T) {
	s := newSales(t, false)

	systemType := s.types.Integer
	systemConstraint := catalog.NewConstraint(s.customers, "SystemCheck", statements.RawExpression("true"))
	systemConstraint.SetSystem(true)
	constraint := catalog.NewConstraint(s.customers, "NameCheck", statements.RawExpression("Name <> ''"))

	tests := []struct {
		name     string
		opts     Options
		obj      object.Object
		expected bool
	}{
		{"system catalog object by default", Options{}, systemType, false},
		{"system catalog object with include system", Options{IncludeSystem: true}, systemType, true},
		{"system owned object with include system", Options{IncludeSystem: true}, systemConstraint, false},
		{"user owned object", Options{}, constraint, true},
		{"owned object of requested owner", Options{RequestedObjects: []primitives.ObjectID{s.customers.ID()}}, constraint, true},
		{"owned object of other owner", Options{RequestedObjects: []primitives.ObjectID{s.orders.ID()}}, constraint, false},
		{"library filter ignores case", Options{LibraryName: "sales"}, s.orders, true},
		{"library filter mismatch", Options{LibraryName: "Billing"}, s.orders, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ec := NewEmissionContext(testSession{}, tt.opts)
			if got := ec.ShouldEmitDrop(tt.obj); got != tt.expected {
				t.Errorf("Expected ShouldEmitDrop %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestShouldEmitWithLibrary(t *testing.T) {
	obj := newStub(20, object.KindTableVar, "Sales.Plain")

	tests := []struct {
		library  string
		expected bool
	}{
		{"", true},
		{"Sales", true},
		{"SALES", true},
		{"System", false},
	}
	for _, tt := range tests {
		ec := NewEmissionContext(testSession{}, Options{LibraryName: tt.library})
		if got := ec.ShouldEmitWithLibrary(obj); got != tt.expected {
			t.Errorf("library %q: Expected %v, got %v", tt.library, tt.expected, got)
		}
	}
}

func TestEmitCatalog(t *testing.T) {
	s := newSales(t, true)
	m := metrics.NewEmissionMetrics()
	ec := NewEmissionContext(testSession{}, Options{}).WithMetrics(m)

	block, err := ec.EmitCatalog(s.catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []statements.StatementType{
		statements.SetLibrary,
		statements.CreateTable,
		statements.CreateTable,
		statements.CreateReference,
	}
	if diff := cmp.Diff(expected, statementTypes(block)); diff != "" {
		t.Errorf("statement types mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Sales"}, ec.EmittedLibraries()); diff != "" {
		t.Errorf("emitted libraries mismatch (-want +got):\n%s", diff)
	}
	if len(ec.EmittedObjects()) != 3 {
		t.Errorf("Expected 3 emitted objects, got %d", len(ec.EmittedObjects()))
	}
	if got := testutil.ToFloat64(m.StatementCount("BaseTableVar", metrics.ActionCreate)); got != 2 {
		t.Errorf("Expected 2 table creates recorded, got %v", got)
	}
	if got := testutil.ToFloat64(m.SkipCount(skipSystem)); got != 14 {
		t.Errorf("Expected 14 system skips recorded, got %v", got)
	}
}

func TestEmitCatalog_IncludeSystemSwitchesLibraries(t *testing.T) {
	s := newSales(t, false)
	ec := NewEmissionContext(testSession{}, Options{IncludeSystem: true})

	block, err := ec.EmitCatalog(s.catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := block.Count(statements.SetLibrary); got != 2 {
		t.Errorf("Expected 2 library headers, got %d", got)
	}
	if got := block.Count(statements.CreateScalarType); got != 14 {
		t.Errorf("Expected 14 type creates, got %d", got)
	}
	libs := ec.EmittedLibraries()
	slices.Sort(libs)
	if diff := cmp.Diff([]string{"Sales", "System"}, libs); diff != "" {
		t.Errorf("emitted libraries mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitCatalog_Requested(t *testing.T) {
	tests := []struct {
		name              string
		includeDependents bool
		expected          []statements.StatementType
	}{
		{
			name:     "requested only",
			expected: []statements.StatementType{statements.SetLibrary, statements.CreateTable},
		},
		{
			name:              "with dependents",
			includeDependents: true,
			expected:          []statements.StatementType{statements.SetLibrary, statements.CreateTable, statements.CreateReference},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSales(t, true)
			ec := NewEmissionContext(testSession{}, Options{
				RequestedObjects:  []primitives.ObjectID{s.customers.ID()},
				IncludeDependents: tt.includeDependents,
			})
			block, err := ec.EmitCatalog(s.catalog)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.expected, statementTypes(block)); diff != "" {
				t.Errorf("statement types mismatch (-want +got):\n%s", diff)
			}
			if ec.IsEmitted(s.orders.ID()) {
				t.Errorf("Expected orders not to be emitted")
			}
		})
	}
}

func TestEmitCatalog_LibraryFilter(t *testing.T) {
	s := newSales(t, false)
	ec := NewEmissionContext(testSession{}, Options{LibraryName: "Billing"})

	block, err := ec.EmitCatalog(s.catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if block.Len() != 0 {
		t.Errorf("Expected empty block, got %d statements", block.Len())
	}
}

func TestEmitDropCatalog(t *testing.T) {
	s := newSales(t, true)
	ec := NewEmissionContext(testSession{}, Options{})

	block, err := ec.EmitDropCatalog(s.catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var targets []statements.DropTarget
	var names []string
	for _, stmt := range block.Statements {
		if drop, ok := stmt.(*statements.DropStatement); ok {
			targets = append(targets, drop.Target)
			names = append(names, drop.ObjectName)
		}
	}
	if diff := cmp.Diff([]statements.DropTarget{statements.DropReference, statements.DropTable, statements.DropTable}, targets); diff != "" {
		t.Errorf("drop targets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{".Sales.OrdersCustomer", ".Sales.Orders", ".Sales.Customers"}, names); diff != "" {
		t.Errorf("drop names mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitDropCatalog_DropsDependentsFirst(t *testing.T) {
	s := newSales(t, true)
	ec := NewEmissionContext(testSession{}, Options{
		RequestedObjects:  []primitives.ObjectID{s.customers.ID()},
		IncludeDependents: true,
	})

	block, err := ec.EmitDropCatalog(s.catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := []statements.StatementType{statements.SetLibrary, statements.Drop, statements.Drop}
	if diff := cmp.Diff(expected, statementTypes(block)); diff != "" {
		t.Errorf("statement types mismatch (-want +got):\n%s", diff)
	}
	first := block.Statements[1].(*statements.DropStatement)
	if first.Target != statements.DropReference {
		t.Errorf("Expected reference dropped first, got %s", first.Target)
	}
}

func TestEmitChanges(t *testing.T) {
	old := newSales(t, true)

	updated := newSales(t, false)
	placed := types.NewColumn("Placed", updated.types.DateTime)
	if err := updated.orders.Columns().Add(placed); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	products, err := catalog.NewTableVarBuilder("Sales.Products").
		InLibrary("Sales").
		AddColumn("ID", updated.types.Integer).
		AddKey("ID").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := updated.catalog.Add(products); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	m := metrics.NewEmissionMetrics()
	ec := NewEmissionContext(testSession{}, Options{}).WithMetrics(m)
	block, err := ec.EmitChanges(old.catalog, updated.catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []statements.StatementType{
		statements.SetLibrary,
		statements.Drop,
		statements.AlterTable,
		statements.CreateTable,
	}
	if diff := cmp.Diff(expected, statementTypes(block)); diff != "" {
		t.Errorf("statement types mismatch (-want +got):\n%s", diff)
	}

	alter := block.Statements[2].(*statements.AlterTableStatement)
	if alter.ObjectName != ".Sales.Orders" {
		t.Errorf("Expected alter of .Sales.Orders, got %s", alter.ObjectName)
	}
	if len(alter.CreateColumns) != 1 || alter.CreateColumns[0].Name != "Placed" {
		t.Errorf("Expected Placed column to be created, got %+v", alter.CreateColumns)
	}
	if got := testutil.ToFloat64(m.StatementCount("BaseTableVar", metrics.ActionAlter)); got != 1 {
		t.Errorf("Expected 1 alter recorded, got %v", got)
	}
}

func TestEmitChanges_NoChanges(t *testing.T) {
	ec := NewEmissionContext(testSession{}, Options{})
	block, err := ec.EmitChanges(newSales(t, true).catalog, newSales(t, true).catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if block.Len() != 0 {
		t.Errorf("Expected no statements, got:\n%s", block.String())
	}
}

func TestEmitChanges_RecreatesWhenAlterUnsupported(t *testing.T) {
	old := newSales(t, true)
	updated := newSales(t, true)
	updated.reference.SetEnforced(false)

	ec := NewEmissionContext(testSession{}, Options{})
	block, err := ec.EmitChanges(old.catalog, updated.catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if block.Len() == 0 {
		t.Fatalf("Expected statements for the changed reference")
	}
	last := block.Statements[block.Len()-1]
	if last.GetType() != statements.AlterReference && last.GetType() != statements.CreateReference {
		t.Errorf("Expected the reference to be altered or recreated, got %s", last.GetType())
	}
}

func TestEmitChanges_AddsReferenceToExistingTables(t *testing.T) {
	ec := NewEmissionContext(testSession{}, Options{})
	block, err := ec.EmitChanges(newSales(t, false).catalog, newSales(t, true).catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []statements.StatementType{statements.SetLibrary, statements.CreateReference}
	if diff := cmp.Diff(expected, statementTypes(block)); diff != "" {
		t.Errorf("statement types mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitChanges_AddsConstraintToExistingTable(t *testing.T) {
	updated := newSales(t, false)
	constraint := catalog.NewConstraint(updated.orders, "TotalPositive", statements.RawExpression("Total > 0"))
	if err := updated.catalog.Add(constraint); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ec := NewEmissionContext(testSession{}, Options{})
	block, err := ec.EmitChanges(newSales(t, false).catalog, updated.catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []statements.StatementType{statements.SetLibrary, statements.CreateConstraint}
	if diff := cmp.Diff(expected, statementTypes(block)); diff != "" {
		t.Errorf("statement types mismatch (-want +got):\n%s", diff)
	}
}

// newClients is newSales with Customers replaced by Clients: Sales.Orders
// (15), Sales.Clients (16) and Sales.OrdersCustomer from orders to clients
// (17).
func newClients(t *testing.T) *object.Catalog {
	t.Helper()
	st := types.NewSystemTypes()
	c := object.NewCatalog()
	if err := st.Register(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	c.AddLibrary(object.Library{Name: "Sales", Requisites: []string{"System"}})

	orders, err := catalog.NewTableVarBuilder("Sales.Orders").
		InLibrary("Sales").
		AddColumn("ID", st.Integer).
		AddColumn("CustomerID", st.Integer).
		AddColumn("Total", st.Money).
		AddKey("ID").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	clients, err := catalog.NewTableVarBuilder("Sales.Clients").
		InLibrary("Sales").
		AddColumn("ID", st.Integer).
		AddKey("ID").
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, tv := range []*catalog.TableVar{orders, clients} {
		if err := c.Add(tv); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	r, err := catalog.NewReference("Sales.OrdersCustomer", orders, catalog.NewJoinKey("CustomerID"), clients, catalog.NewJoinKey("ID"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r.SetLibrary("Sales")
	if err := c.Add(r); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return c
}

func TestEmitChanges_RecreatesKeptDependentOfDroppedTable(t *testing.T) {
	ec := NewEmissionContext(testSession{}, Options{})
	block, err := ec.EmitChanges(newSales(t, true).catalog, newClients(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []statements.StatementType{
		statements.SetLibrary,
		statements.Drop,
		statements.Drop,
		statements.CreateTable,
		statements.CreateReference,
	}
	if diff := cmp.Diff(expected, statementTypes(block)); diff != "" {
		t.Fatalf("statement types mismatch (-want +got):\n%s", diff)
	}

	var dropped []string
	for _, stmt := range block.Statements[1:3] {
		dropped = append(dropped, stmt.(*statements.DropStatement).ObjectName)
	}
	if diff := cmp.Diff([]string{".Sales.OrdersCustomer", ".Sales.Customers"}, dropped); diff != "" {
		t.Errorf("dropped objects mismatch (-want +got):\n%s", diff)
	}
	created := block.Statements[3].(*statements.CreateTableStatement)
	if created.ObjectName != ".Sales.Clients" {
		t.Errorf("Expected .Sales.Clients to be created, got %s", created.ObjectName)
	}
}

func TestEmitChanges_SessionObjectsMatchAcrossLoads(t *testing.T) {
	doc := `
libraries: [{name: Sales}]
tables:
  - library: Sales
    session: Scratch
    columns: [{name: ID, type: System.Integer}]
    constraints:
      - { name: Positive, expression: "ID > 0" }
`
	load := func() *object.Catalog {
		c, err := catalogio.NewLoader(catalog.DefaultRegistries()).Load("session.yaml", strings.NewReader(doc))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		return c
	}

	ec := NewEmissionContext(testSession{}, Options{})
	block, err := ec.EmitChanges(load(), load())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if block.Len() != 0 {
		t.Errorf("Expected no statements, got:\n%s", block.String())
	}
}

func TestIncludeRequested(t *testing.T) {
	s := newSales(t, true)
	ec := NewEmissionContext(testSession{}, Options{
		RequestedObjects: []primitives.ObjectID{s.orders.ID()},
	})

	target, err := ec.IncludeRequested(s.catalog)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, name := range []string{"Sales.Orders", "System.Integer", "System.Money", "System.Decimal"} {
		if !target.Contains(name) {
			t.Errorf("Expected %s to be included", name)
		}
	}
	for _, name := range []string{"Sales.Customers", "Sales.OrdersCustomer", "System.Guid"} {
		if target.Contains(name) {
			t.Errorf("Expected %s not to be included", name)
		}
	}
	if _, ok := target.LibraryByName("sales"); !ok {
		t.Errorf("Expected libraries to be copied")
	}
}
