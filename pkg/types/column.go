package types

import "schemacore/pkg/catalog/object"

// Column is a named slot of a row or table type. The data type is shared
// with the rest of the catalog graph, not owned.
type Column struct {
	name     string
	dataType DataType
}

func NewColumn(name string, dataType DataType) *Column {
	return &Column{name: name, dataType: dataType}
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) DataType() DataType {
	return c.dataType
}

// SetDataType reassigns the column's type during type resolution.
func (c *Column) SetDataType(dataType DataType) {
	c.dataType = dataType
}

// Equals requires the same name and equal, not merely compatible, types.
func (c *Column) Equals(other *Column) bool {
	if other == nil {
		return false
	}
	return c.name == other.name && c.dataType.Equals(other.dataType)
}

// Copy returns a column sharing this column's type, with its name qualified
// by prefix when prefix is non-empty.
func (c *Column) Copy(prefix string) *Column {
	return &Column{name: object.Qualify(c.name, prefix), dataType: c.dataType}
}

// CopyAndRename returns a column sharing this column's type under a new name.
func (c *Column) CopyAndRename(name string) *Column {
	return &Column{name: name, dataType: c.dataType}
}

func (c *Column) String() string {
	return c.name + " : " + c.dataType.Name()
}
