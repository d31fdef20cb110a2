package types

import "schemacore/pkg/catalog/object"

// SystemTypes is the set of built-in types every catalog starts with. Each
// instance is independent so catalogs never share mutable type objects.
type SystemTypes struct {
	Generic *GenericType
	Scalar  *ScalarType
	Row     *RowType
	Table   *TableType
	List    *ListType

	Boolean  *ScalarType
	Byte     *ScalarType
	Short    *ScalarType
	Integer  *ScalarType
	Long     *ScalarType
	Decimal  *ScalarType
	Money    *ScalarType
	String   *ScalarType
	DateTime *ScalarType
	Date     *ScalarType
	Time     *ScalarType
	TimeSpan *ScalarType
	Guid     *ScalarType
	Binary   *ScalarType
}

func systemScalar(name string, byteSize int) *ScalarType {
	t := NewScalarType(object.Qualify(name, object.SystemLibraryName), byteSize)
	t.SetLibrary(object.SystemLibraryName)
	t.SetSystem(true)
	return t
}

// NewSystemTypes builds the built-in types. Native sizes follow the fixed
// width of each value; variable length values are stored behind a handle.
func NewSystemTypes() *SystemTypes {
	st := &SystemTypes{
		Generic: NewGenericType(),
		Scalar:  NewGenericScalarType(object.Qualify("Scalar", object.SystemLibraryName)),
		Row:     NewGenericRowType(),
		Table:   NewGenericTableType(),
		List:    NewGenericListType(),

		Boolean:  systemScalar("Boolean", 1),
		Byte:     systemScalar("Byte", 1),
		Short:    systemScalar("Short", 2),
		Integer:  systemScalar("Integer", 4),
		Long:     systemScalar("Long", 8),
		Decimal:  systemScalar("Decimal", 16),
		Money:    systemScalar("Money", 16),
		String:   systemScalar("String", HandleByteSize),
		DateTime: systemScalar("DateTime", 8),
		Date:     systemScalar("Date", 8),
		Time:     systemScalar("Time", 8),
		TimeSpan: systemScalar("TimeSpan", 8),
		Guid:     systemScalar("Guid", 16),
		Binary:   systemScalar("Binary", HandleByteSize),
	}
	st.Scalar.SetLibrary(object.SystemLibraryName)
	st.Scalar.SetSystem(true)
	st.String.SetDisposable(true)
	st.Binary.SetDisposable(true)

	st.Money.AddParent(st.Decimal)
	st.Date.AddParent(st.DateTime)
	return st
}

// Scalars returns the concrete built-in scalar types in declaration order.
func (st *SystemTypes) Scalars() []*ScalarType {
	return []*ScalarType{
		st.Boolean, st.Byte, st.Short, st.Integer, st.Long, st.Decimal, st.Money,
		st.String, st.DateTime, st.Date, st.Time, st.TimeSpan, st.Guid, st.Binary,
	}
}

// Register adds the system library and the built-in scalar types to c.
func (st *SystemTypes) Register(c *object.Catalog) error {
	c.AddLibrary(object.Library{Name: object.SystemLibraryName, IsSystem: true})
	for _, t := range st.Scalars() {
		if err := c.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// ByName returns a built-in scalar type by its unqualified or qualified name.
func (st *SystemTypes) ByName(name string) (*ScalarType, bool) {
	if object.NamesEqual(st.Scalar.Name(), name) {
		return st.Scalar, true
	}
	for _, t := range st.Scalars() {
		if object.NamesEqual(t.Name(), name) {
			return t, true
		}
	}
	return nil, false
}
