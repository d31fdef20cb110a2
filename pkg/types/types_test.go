package types

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"schemacore/pkg/catalog/object"
	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

type testSession struct{}

func (testSession) SessionID() primitives.SessionID { return 1 }
func (testSession) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustColumns(t *testing.T, columns ...*Column) *Columns {
	t.Helper()
	cs, err := ColumnsOf(columns...)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return cs
}

func TestGenericFamilies(t *testing.T) {
	st := NewSystemTypes()
	concreteRow := NewRowType(mustColumns(t, NewColumn("A", st.Integer)))
	concreteTable := NewTableType(mustColumns(t, NewColumn("A", st.Integer)))
	concreteList := NewListType(st.Integer)

	tests := []struct {
		name     string
		concrete DataType
		generic  DataType
	}{
		{"row", concreteRow, st.Row},
		{"table", concreteTable, st.Table},
		{"list", concreteList, st.List},
		{"scalar", st.Integer, st.Scalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.generic.Is(tt.generic) {
				t.Errorf("Expected generic %s to be itself", tt.generic.Name())
			}
			if !tt.concrete.Is(tt.generic) {
				t.Errorf("Expected %s to be %s", tt.concrete.Name(), tt.generic.Name())
			}
			if tt.generic.Is(tt.concrete) {
				t.Errorf("Expected %s not to be %s", tt.generic.Name(), tt.concrete.Name())
			}
			if !tt.concrete.Is(st.Generic) || !tt.generic.Is(st.Generic) {
				t.Errorf("Expected every %s type to be generic", tt.name)
			}
			if st.Generic.Is(tt.concrete) {
				t.Errorf("Expected generic not to be %s", tt.concrete.Name())
			}
		})
	}
}

func TestVariantsNeverEqual(t *testing.T) {
	st := NewSystemTypes()
	cols := mustColumns(t, NewColumn("A", st.Integer))
	row := NewRowType(cols)
	table := NewTableType(cols.Copy(""))

	if row.Equals(table) || table.Equals(row) {
		t.Error("Expected a row type never to equal a table type")
	}
	if row.Is(table) || table.Is(row) {
		t.Error("Expected row and table families to be unrelated")
	}
	if st.Row.Equals(st.Table) {
		t.Error("Expected generic row not to equal generic table")
	}
}

func TestCompatibleIsSymmetric(t *testing.T) {
	st := NewSystemTypes()
	narrow := mustColumns(t, NewColumn("A", st.Money))
	wide := mustColumns(t, NewColumn("A", st.Decimal))

	all := []DataType{
		st.Generic, st.Scalar, st.Row, st.Table, st.List,
		st.Integer, st.Decimal, st.Money,
		NewRowType(narrow), NewRowType(wide),
		NewTableType(narrow.Copy("")), NewTableType(wide.Copy("")),
		NewListType(st.Money), NewListType(st.Decimal),
	}

	asymmetric := false
	for _, a := range all {
		for _, b := range all {
			if a.Compatible(b) != b.Compatible(a) {
				t.Errorf("Expected Compatible(%s, %s) to be symmetric", a.Name(), b.Name())
			}
			if a.Is(b) != b.Is(a) {
				asymmetric = true
			}
		}
	}
	if !asymmetric {
		t.Error("Expected Is to be asymmetric for at least one pair")
	}
}

func TestScalarParents(t *testing.T) {
	st := NewSystemTypes()

	if !st.Money.Is(st.Decimal) {
		t.Error("Expected Money to be Decimal")
	}
	if st.Decimal.Is(st.Money) {
		t.Error("Expected Decimal not to be Money")
	}
	if !st.Money.Compatible(st.Decimal) {
		t.Error("Expected Money and Decimal to be compatible")
	}
	if st.Integer.Is(st.Long) {
		t.Error("Expected unrelated scalars not to be each other")
	}
	if !st.Integer.Equals(NewScalarType(".System.Integer", 4)) {
		t.Error("Expected scalar equality to ignore rooting")
	}
}

func TestNewListTypeNilElement(t *testing.T) {
	st := NewSystemTypes()
	list := NewListType(nil)
	if !list.IsGeneric() {
		t.Fatalf("Expected a nil element to give the generic list")
	}
	if !list.Equals(NewGenericListType()) {
		t.Errorf("Expected nil-element list to equal the generic list")
	}
	if list.Equals(NewListType(st.Integer)) {
		t.Errorf("Expected generic list not to equal list(System.Integer)")
	}
	if !NewListType(st.Integer).Is(list) {
		t.Errorf("Expected list(System.Integer) to be a generic list")
	}
}

func TestNewListTypeName(t *testing.T) {
	st := NewSystemTypes()
	lists := NewListType(NewListType(st.Integer))
	if got := lists.Name(); got != "list(list(System.Integer))" {
		t.Errorf("Expected list(list(System.Integer)), got %s", got)
	}
	if !NewListType(st.Money).Is(NewListType(st.Decimal)) {
		t.Error("Expected list(Money) to be list(Decimal)")
	}
	if NewListType(st.Decimal).Is(NewListType(st.Money)) {
		t.Error("Expected list(Decimal) not to be list(Money)")
	}
}

func TestStaticByteSize(t *testing.T) {
	st := NewSystemTypes()

	rowOf := func(n int) *RowType {
		cs := NewColumns()
		for i := 0; i < n; i++ {
			if err := cs.Add(NewColumn(string(rune('A'+i)), st.Integer)); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		}
		return NewRowType(cs)
	}

	tests := []struct {
		name     string
		dataType DataType
		expected int
	}{
		{"empty row", rowOf(0), 0},
		{"one column", rowOf(1), 2 + 4},
		{"eight columns", rowOf(8), 2 + 8*4},
		{"nine columns", rowOf(9), 4 + 9*4},
		{"table", NewTableType(rowOf(9).Columns()), HandleByteSize},
		{"list", NewListType(st.Decimal), HandleByteSize},
		{"generic", st.Generic, HandleByteSize},
		{"scalar", st.Decimal, 16},
		{"nested row", NewRowType(mustColumns(t, NewColumn("R", rowOf(1)), NewColumn("L", NewListType(st.Integer)))), 2 + 6 + 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dataType.StaticByteSize(); got != tt.expected {
				t.Errorf("Expected %d bytes, got %d", tt.expected, got)
			}
		})
	}
}

func TestTableTypeDerivedRows(t *testing.T) {
	st := NewSystemTypes()
	table := NewTableType(mustColumns(t, NewColumn("ID", st.Integer), NewColumn("Name", st.String)))

	if diff := cmp.Diff([]string{"ID", "Name"}, table.RowType().Columns().Names()); diff != "" {
		t.Errorf("RowType columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"new.ID", "new.Name"}, table.NewRowType().Columns().Names()); diff != "" {
		t.Errorf("NewRowType columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"old.ID", "old.Name"}, table.OldRowType().Columns().Names()); diff != "" {
		t.Errorf("OldRowType columns mismatch (-want +got):\n%s", diff)
	}

	if err := table.Columns().Add(NewColumn("Price", st.Money)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := table.NewRowType().Columns().Count(); got != 3 {
		t.Errorf("Expected derived row to follow column changes, got %d columns", got)
	}
	if i := table.NewRowType().Columns().IndexOfColumn("Price"); i != 2 {
		t.Errorf("Expected Price to resolve to new.Price at 2, got %d", i)
	}
}

func TestEmitSpecifier(t *testing.T) {
	st := NewSystemTypes()
	table := NewTableType(mustColumns(t, NewColumn("ID", st.Integer), NewColumn("Tags", NewListType(st.String))))

	tests := []struct {
		name     string
		dataType DataType
		expected string
	}{
		{"generic", st.Generic, "generic"},
		{"generic scalar", st.Scalar, "scalar"},
		{"scalar", st.Integer, ".System.Integer"},
		{"generic table", st.Table, "table"},
		{"table", table, "table { ID : .System.Integer, Tags : list(.System.String) }"},
		{"empty row", NewRowType(nil), "row { }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dataType.EmitSpecifier(primitives.ForCopy).String(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIncludeDependenciesIsIdempotent(t *testing.T) {
	st := NewSystemTypes()
	source := object.NewCatalog()
	if err := st.Register(source); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	table := NewTableType(mustColumns(t,
		NewColumn("ID", st.Integer),
		NewColumn("Price", st.Money),
		NewColumn("Lines", NewListType(NewRowType(mustColumns(t, NewColumn("Amount", st.Money))))),
	))

	target := object.NewCatalog()
	if err := table.IncludeDependencies(testSession{}, source, target, primitives.ForCopy); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := target.Len(); got != 3 {
		t.Fatalf("Expected Integer, Money and Decimal in target, got %d objects", got)
	}
	for _, name := range []string{"System.Integer", "System.Money", "System.Decimal"} {
		if !target.Contains(name) {
			t.Errorf("Expected target to contain %s", name)
		}
	}

	if err := table.IncludeDependencies(testSession{}, source, target, primitives.ForCopy); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := target.Len(); got != 3 {
		t.Errorf("Expected catalog size unchanged after second include, got %d", got)
	}
	if got := source.Len(); got != len(st.Scalars()) {
		t.Errorf("Expected source untouched, got %d objects", got)
	}
}

func TestScalarEmitStatementTags(t *testing.T) {
	st := NewSystemTypes()
	c := object.NewCatalog()
	if err := st.Register(c); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	st.Money.MetaData().AddOrUpdate("Frontend.Title", "Amount", false)

	stmt, err := st.Money.EmitStatement(primitives.ForStorage)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	create := stmt.(*statements.CreateScalarTypeStatement)
	if !create.MetaData.Has(statements.ObjectIDTag) {
		t.Error("Expected storage emission to persist the object id")
	}
	if st.Money.MetaData().Has(statements.ObjectIDTag) {
		t.Error("Expected the object's own tags to be restored")
	}

	stmt, err = st.Money.EmitStatement(primitives.ForCopy)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := `create type .System.Money like .System.Decimal tags { Frontend.Title = "Amount" }`
	if got := stmt.String(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestColumnsSetRelations(t *testing.T) {
	st := NewSystemTypes()
	ab := mustColumns(t, NewColumn("A", st.Integer), NewColumn("B", st.Integer))
	abc := mustColumns(t, NewColumn("A", st.Integer), NewColumn("B", st.Integer), NewColumn("C", st.Integer))

	if !ab.IsProperSubsetOf(abc) {
		t.Error("Expected {A, B} to be a proper subset of {A, B, C}")
	}
	if !ab.IsSubsetOf(abc) {
		t.Error("Expected proper subset to imply subset")
	}
	if ab.IsSupersetOf(abc) {
		t.Error("Expected {A, B} not to be a superset of {A, B, C}")
	}
	if !abc.IsProperSupersetOf(ab) {
		t.Error("Expected {A, B, C} to be a proper superset of {A, B}")
	}
	if abc.IsSubsetOf(ab) {
		t.Error("Expected mutual subsets only for equal membership")
	}

	ba := mustColumns(t, NewColumn("B", st.Long), NewColumn("A", st.Long))
	if !ab.IsSubsetOf(ba) || !ba.IsSubsetOf(ab) {
		t.Error("Expected subset checks to ignore types and order")
	}
	if ab.IsProperSubsetOf(ba) {
		t.Error("Expected equal counts to rule out a proper subset")
	}
}

func TestColumnsEquivalentImpliesEquals(t *testing.T) {
	st := NewSystemTypes()
	ab := mustColumns(t, NewColumn("A", st.Integer), NewColumn("B", st.String))
	ab2 := mustColumns(t, NewColumn("A", st.Integer), NewColumn("B", st.String))
	ba := mustColumns(t, NewColumn("B", st.String), NewColumn("A", st.Integer))

	if !ab.Equivalent(ab2) || !ab.Equals(ab2) {
		t.Error("Expected identical containers to be equivalent and equal")
	}
	if !ab.Equals(ba) {
		t.Error("Expected reordered containers to be equal")
	}
	if ab.Equivalent(ba) {
		t.Error("Expected reordered containers not to be equivalent")
	}
	if NewRowType(ab).Equivalent(NewRowType(ba)) {
		t.Error("Expected reordered row types not to be equivalent")
	}
}

func TestColumnsIs(t *testing.T) {
	st := NewSystemTypes()
	narrow := mustColumns(t, NewColumn("A", st.Money), NewColumn("B", st.Integer))
	wide := mustColumns(t, NewColumn("B", st.Integer), NewColumn("A", st.Decimal))
	extra := mustColumns(t, NewColumn("A", st.Decimal), NewColumn("B", st.Integer), NewColumn("C", st.Integer))

	if !narrow.Is(wide) {
		t.Error("Expected {A: Money, B} to be {B, A: Decimal}")
	}
	if wide.Is(narrow) {
		t.Error("Expected {A: Decimal} not to be {A: Money}")
	}
	if !narrow.Compatible(wide) || !wide.Compatible(narrow) {
		t.Error("Expected compatibility in both directions")
	}
	if narrow.Is(extra) {
		t.Error("Expected differing counts never to be related")
	}
}

func TestColumnsLookup(t *testing.T) {
	st := NewSystemTypes()
	cs := mustColumns(t,
		NewColumn("Orders.ID", st.Integer),
		NewColumn("Customers.ID", st.Integer),
		NewColumn("Orders.Total", st.Money),
		NewColumn("Status", st.String),
	)

	tests := []struct {
		name     string
		column   string
		expected int
		code     string
	}{
		{"exact", "Status", 3, ""},
		{"exact qualified", "Orders.ID", 0, ""},
		{"unique suffix", "Total", 2, ""},
		{"ambiguous suffix", "ID", -1, schemaerr.CodeAmbiguousColumn},
		{"missing", "Missing", -1, schemaerr.CodeColumnNotFound},
		{"partial segment", "rders.ID", -1, schemaerr.CodeColumnNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cs.IndexOfColumn(tt.column); got != tt.expected {
				t.Errorf("Expected IndexOfColumn %d, got %d", tt.expected, got)
			}
			got, err := cs.GetIndexOfColumn(tt.column)
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if got != tt.expected {
					t.Errorf("Expected GetIndexOfColumn %d, got %d", tt.expected, got)
				}
				return
			}
			if !schemaerr.HasCode(err, tt.code) {
				t.Errorf("Expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestColumnsMutation(t *testing.T) {
	st := NewSystemTypes()
	cs := mustColumns(t, NewColumn("A", st.Integer), NewColumn("C", st.Integer))

	if err := cs.Add(NewColumn("A", st.String)); !schemaerr.HasCode(err, schemaerr.CodeDuplicateColumn) {
		t.Errorf("Expected DUPLICATE_COLUMN, got %v", err)
	}
	if err := cs.Insert(1, NewColumn("B", st.String)); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, cs.Names()); diff != "" {
		t.Errorf("Names mismatch after insert (-want +got):\n%s", diff)
	}
	for _, i := range []int{-1, 4} {
		if err := cs.Insert(i, NewColumn("D", st.String)); !schemaerr.HasCode(err, schemaerr.CodeColumnIndexOutOfRange) {
			t.Errorf("Insert(%d): Expected COLUMN_INDEX_OUT_OF_RANGE, got %v", i, err)
		}
	}
	if cs.Count() != 3 {
		t.Errorf("Expected 3 columns after rejected inserts, got %d", cs.Count())
	}
	if err := cs.Remove("A"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if i := cs.IndexOfName("C"); i != 1 {
		t.Errorf("Expected C at 1 after remove, got %d", i)
	}
	if err := cs.Remove("A"); !schemaerr.HasCode(err, schemaerr.CodeColumnNotFound) {
		t.Errorf("Expected COLUMN_NOT_FOUND, got %v", err)
	}
	if err := cs.SetColumnType("B", st.Long); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c, _ := cs.ByName("B"); !c.DataType().Equals(st.Long) {
		t.Errorf("Expected B to be retyped to Long, got %s", c.DataType().Name())
	}
}

func TestColumnCopy(t *testing.T) {
	st := NewSystemTypes()
	c := NewColumn("ID", st.Integer)

	copied := c.Copy("new")
	if copied.Name() != "new.ID" {
		t.Errorf("Expected new.ID, got %s", copied.Name())
	}
	if copied.DataType() != c.DataType() {
		t.Error("Expected copies to share the data type")
	}
	if got := c.Copy("").Name(); got != "ID" {
		t.Errorf("Expected an empty prefix to keep the name, got %s", got)
	}
	renamed := c.CopyAndRename("Key")
	if renamed.Equals(c) {
		t.Error("Expected a renamed column not to equal the original")
	}
	if !c.Equals(NewColumn("ID", st.Integer)) {
		t.Error("Expected same name and type to be equal")
	}
	if c.Equals(NewColumn("ID", st.Long)) {
		t.Error("Expected different types not to be equal")
	}
}
