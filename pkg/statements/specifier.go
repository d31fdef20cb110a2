package statements

import "strings"

// TypeSpecifier is a serializable description of a data type as it appears
// in emitted statements.
type TypeSpecifier interface {
	String() string
	typeSpecifier()
}

// GenericTypeSpecifier denotes the universal "generic" type.
type GenericTypeSpecifier struct{}

func (GenericTypeSpecifier) String() string { return "generic" }

// ScalarTypeSpecifier names a scalar type, or the scalar family when Generic is set.
type ScalarTypeSpecifier struct {
	Name    string
	Generic bool
}

func (s ScalarTypeSpecifier) String() string {
	if s.Generic {
		return "scalar"
	}
	return s.Name
}

// NamedTypeSpecifier pairs a column or property name with its type.
type NamedTypeSpecifier struct {
	Name string
	Type TypeSpecifier
}

func (n NamedTypeSpecifier) String() string {
	return n.Name + " : " + n.Type.String()
}

// RowTypeSpecifier describes a row type.
type RowTypeSpecifier struct {
	Generic bool
	Columns []NamedTypeSpecifier
}

func (r RowTypeSpecifier) String() string {
	return columnsSpecifier("row", r.Generic, r.Columns)
}

// TableTypeSpecifier describes a table type.
type TableTypeSpecifier struct {
	Generic bool
	Columns []NamedTypeSpecifier
}

func (t TableTypeSpecifier) String() string {
	return columnsSpecifier("table", t.Generic, t.Columns)
}

// ListTypeSpecifier describes a list type.
type ListTypeSpecifier struct {
	Generic bool
	Element TypeSpecifier
}

func (l ListTypeSpecifier) String() string {
	if l.Generic || l.Element == nil {
		return "list"
	}
	return "list(" + l.Element.String() + ")"
}

func columnsSpecifier(keyword string, generic bool, columns []NamedTypeSpecifier) string {
	if generic {
		return keyword
	}
	if len(columns) == 0 {
		return keyword + " { }"
	}
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c.String()
	}
	return keyword + " { " + strings.Join(parts, ", ") + " }"
}

func (GenericTypeSpecifier) typeSpecifier() {}
func (ScalarTypeSpecifier) typeSpecifier()  {}
func (RowTypeSpecifier) typeSpecifier()     {}
func (TableTypeSpecifier) typeSpecifier()   {}
func (ListTypeSpecifier) typeSpecifier()    {}
