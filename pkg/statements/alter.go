package statements

import "strings"

// AlterTableStatement changes the columns and keys of an existing table.
type AlterTableStatement struct {
	ObjectStatement
	CreateColumns []ColumnDefinition
	AlterColumns  []ColumnDefinition
	DropColumns   []string
	CreateKeys    []KeyDefinition
	DropKeys      []KeyDefinition
}

func NewAlterTableStatement(name string) *AlterTableStatement {
	return &AlterTableStatement{
		ObjectStatement: NewObjectStatement(AlterTable, name),
	}
}

// IsEmpty reports whether the statement would change nothing.
func (s *AlterTableStatement) IsEmpty() bool {
	return len(s.CreateColumns) == 0 && len(s.AlterColumns) == 0 && len(s.DropColumns) == 0 &&
		len(s.CreateKeys) == 0 && len(s.DropKeys) == 0 && s.MetaData.Len() == 0
}

func (s *AlterTableStatement) String() string {
	var items []string
	for _, c := range s.CreateColumns {
		items = append(items, "create column "+c.String())
	}
	for _, c := range s.AlterColumns {
		items = append(items, "alter column "+c.Name+" : "+c.Type.String())
	}
	for _, name := range s.DropColumns {
		items = append(items, "drop column "+name)
	}
	for _, k := range s.DropKeys {
		items = append(items, "drop "+k.String())
	}
	for _, k := range s.CreateKeys {
		items = append(items, "create "+k.String())
	}

	var b statementBuilder
	b.WriteString("alter table ")
	b.WriteString(s.ObjectName)
	b.WriteString(" { ")
	b.WriteString(strings.Join(items, ", "))
	b.WriteString(" }")
	if s.MetaData.Len() > 0 {
		b.WriteString(" alter " + s.MetaData.String())
	}
	return b.String()
}

func (s *AlterTableStatement) Validate() error {
	if err := s.requireNonEmpty("ObjectName", s.ObjectName, "table name cannot be empty"); err != nil {
		return err
	}
	if s.IsEmpty() {
		return NewValidationError(s.stmtType, "Columns", "alter table must change at least one column, key or tag")
	}
	return nil
}

// AlterReferenceStatement changes the referential actions or tags of a reference.
// Key changes cannot be expressed as an alter; the reference is recreated instead.
type AlterReferenceStatement struct {
	ObjectStatement
	Update *ReferenceActionDefinition
	Delete *ReferenceActionDefinition
}

func NewAlterReferenceStatement(name string) *AlterReferenceStatement {
	return &AlterReferenceStatement{
		ObjectStatement: NewObjectStatement(AlterReference, name),
	}
}

func (s *AlterReferenceStatement) String() string {
	var b statementBuilder
	b.WriteString("alter reference ")
	b.WriteString(s.ObjectName)
	if s.Update != nil {
		b.WriteString(" " + s.Update.render("update"))
	}
	if s.Delete != nil {
		b.WriteString(" " + s.Delete.render("delete"))
	}
	if s.MetaData.Len() > 0 {
		b.WriteString(" alter " + s.MetaData.String())
	}
	return b.String()
}

func (s *AlterReferenceStatement) Validate() error {
	if err := s.requireNonEmpty("ObjectName", s.ObjectName, "reference name cannot be empty"); err != nil {
		return err
	}
	if s.Update == nil && s.Delete == nil && s.MetaData.Len() == 0 {
		return NewValidationError(s.stmtType, "Update", "alter reference must change an action or a tag")
	}
	return nil
}
