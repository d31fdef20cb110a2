package statements

import (
	"fmt"
	"strings"
)

// SetLibraryStatement switches the current library while a script runs.
// Emission writes one before the first object of each library.
type SetLibraryStatement struct {
	BaseStatement
	LibraryName string
}

func NewSetLibraryStatement(libraryName string) *SetLibraryStatement {
	return &SetLibraryStatement{
		BaseStatement: NewBaseStatement(SetLibrary),
		LibraryName:   libraryName,
	}
}

func (s *SetLibraryStatement) String() string {
	return fmt.Sprintf("SetLibrary(%q)", s.LibraryName)
}

func (s *SetLibraryStatement) Validate() error {
	return s.requireNonEmpty("LibraryName", s.LibraryName, "library name cannot be empty")
}

// CreateScalarTypeStatement declares a scalar type and its parent types.
type CreateScalarTypeStatement struct {
	ObjectStatement
	ParentTypes []string
}

func NewCreateScalarTypeStatement(name string, parents []string, md *MetaData) *CreateScalarTypeStatement {
	s := &CreateScalarTypeStatement{
		ObjectStatement: NewObjectStatement(CreateScalarType, name),
		ParentTypes:     parents,
	}
	s.MetaData = md
	return s
}

func (s *CreateScalarTypeStatement) String() string {
	var b statementBuilder
	b.WriteString("create type ")
	b.WriteString(s.ObjectName)
	b.writeClause("like", strings.Join(s.ParentTypes, ", "))
	b.writeMetaData(s.MetaData)
	return b.String()
}

func (s *CreateScalarTypeStatement) Validate() error {
	return s.requireNonEmpty("ObjectName", s.ObjectName, "type name cannot be empty")
}

// CreateRepresentationStatement adds a physical representation to a scalar type.
type CreateRepresentationStatement struct {
	ObjectStatement
	TypeName   string
	Properties []NamedTypeSpecifier
}

func NewCreateRepresentationStatement(typeName, name string, properties []NamedTypeSpecifier, md *MetaData) *CreateRepresentationStatement {
	s := &CreateRepresentationStatement{
		ObjectStatement: NewObjectStatement(CreateRepresentation, name),
		TypeName:        typeName,
		Properties:      properties,
	}
	s.MetaData = md
	return s
}

func (s *CreateRepresentationStatement) String() string {
	props := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		props[i] = p.String()
	}

	var b statementBuilder
	b.WriteString(fmt.Sprintf("alter type %s { create representation %s ", s.TypeName, s.ObjectName))
	b.writeList(props)
	b.writeMetaData(s.MetaData)
	b.WriteString(" }")
	return b.String()
}

func (s *CreateRepresentationStatement) Validate() error {
	if err := s.requireNonEmpty("TypeName", s.TypeName, "type name cannot be empty"); err != nil {
		return err
	}
	if err := s.requireNonEmpty("ObjectName", s.ObjectName, "representation name cannot be empty"); err != nil {
		return err
	}
	return s.requireNonEmptySlice("Properties", len(s.Properties), "representation must have at least one property")
}

// CreateDefaultStatement attaches a default to a scalar type, or to a table
// column when ColumnName is set.
type CreateDefaultStatement struct {
	BaseStatement
	OwnerName  string
	ColumnName string
	Expression Expression
	MetaData   *MetaData
}

func NewCreateDefaultStatement(ownerName, columnName string, expr Expression, md *MetaData) *CreateDefaultStatement {
	return &CreateDefaultStatement{
		BaseStatement: NewBaseStatement(CreateDefault),
		OwnerName:     ownerName,
		ColumnName:    columnName,
		Expression:    expr,
		MetaData:      md,
	}
}

func (s *CreateDefaultStatement) String() string {
	var b statementBuilder
	b.WriteString("create default ")
	b.WriteString(s.Expression.String())
	b.writeMetaData(s.MetaData)
	if s.ColumnName != "" {
		return fmt.Sprintf("alter table %s { alter column %s { %s } }", s.OwnerName, s.ColumnName, b.String())
	}
	return fmt.Sprintf("alter type %s { %s }", s.OwnerName, b.String())
}

func (s *CreateDefaultStatement) Validate() error {
	if err := s.requireNonEmpty("OwnerName", s.OwnerName, "default owner cannot be empty"); err != nil {
		return err
	}
	if s.Expression == nil {
		return NewValidationError(s.stmtType, "Expression", "default expression cannot be empty")
	}
	return nil
}

// CreateSpecialStatement adds a named special value to a scalar type.
type CreateSpecialStatement struct {
	ObjectStatement
	TypeName string
	Value    Expression
}

func NewCreateSpecialStatement(typeName, name string, value Expression, md *MetaData) *CreateSpecialStatement {
	s := &CreateSpecialStatement{
		ObjectStatement: NewObjectStatement(CreateSpecial, name),
		TypeName:        typeName,
		Value:           value,
	}
	s.MetaData = md
	return s
}

func (s *CreateSpecialStatement) String() string {
	var b statementBuilder
	b.WriteString(fmt.Sprintf("alter type %s { create special %s %s", s.TypeName, s.ObjectName, s.Value.String()))
	b.writeMetaData(s.MetaData)
	b.WriteString(" }")
	return b.String()
}

func (s *CreateSpecialStatement) Validate() error {
	if err := s.requireNonEmpty("ObjectName", s.ObjectName, "special name cannot be empty"); err != nil {
		return err
	}
	if s.Value == nil {
		return NewValidationError(s.stmtType, "Value", "special value cannot be empty")
	}
	return nil
}

// ColumnDefinition is a column inside a create or alter table statement.
type ColumnDefinition struct {
	Name      string
	Type      TypeSpecifier
	IsNilable bool
}

func (c ColumnDefinition) String() string {
	s := c.Name + " : " + c.Type.String()
	if c.IsNilable {
		s += " nil"
	}
	return s
}

// KeyDefinition is a key inside a create or alter table statement.
type KeyDefinition struct {
	Columns []string
}

func (k KeyDefinition) String() string {
	var b statementBuilder
	b.WriteString("key ")
	b.writeList(k.Columns)
	return b.String()
}

// CreateTableStatement declares a base table variable.
type CreateTableStatement struct {
	ObjectStatement
	Columns []ColumnDefinition
	Keys    []KeyDefinition
}

func NewCreateTableStatement(name string, md *MetaData) *CreateTableStatement {
	s := &CreateTableStatement{
		ObjectStatement: NewObjectStatement(CreateTable, name),
		Columns:         make([]ColumnDefinition, 0),
	}
	s.MetaData = md
	return s
}

func (s *CreateTableStatement) AddColumn(name string, typeSpec TypeSpecifier, nilable bool) {
	s.Columns = append(s.Columns, ColumnDefinition{Name: name, Type: typeSpec, IsNilable: nilable})
}

func (s *CreateTableStatement) AddKey(columns ...string) {
	s.Keys = append(s.Keys, KeyDefinition{Columns: columns})
}

func (s *CreateTableStatement) String() string {
	items := make([]string, 0, len(s.Columns)+len(s.Keys))
	for _, c := range s.Columns {
		items = append(items, c.String())
	}
	for _, k := range s.Keys {
		items = append(items, k.String())
	}

	var b statementBuilder
	b.WriteString("create table ")
	b.WriteString(s.ObjectName)
	b.WriteString(" ")
	b.writeList(items)
	b.writeMetaData(s.MetaData)
	return b.String()
}

func (s *CreateTableStatement) Validate() error {
	if err := s.requireNonEmpty("ObjectName", s.ObjectName, "table name cannot be empty"); err != nil {
		return err
	}
	if err := s.requireNonEmptySlice("Columns", len(s.Columns), "table must have at least one column"); err != nil {
		return err
	}
	seen := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if seen[c.Name] {
			return NewValidationError(s.stmtType, "Columns", fmt.Sprintf("duplicate column %s", c.Name))
		}
		seen[c.Name] = true
	}
	for _, k := range s.Keys {
		for _, name := range k.Columns {
			if !seen[name] {
				return NewValidationError(s.stmtType, "Keys", fmt.Sprintf("key column %s is not a table column", name))
			}
		}
	}
	return nil
}

// CreateViewStatement declares a derived table variable.
type CreateViewStatement struct {
	ObjectStatement
	Expression Expression
}

func NewCreateViewStatement(name string, expr Expression, md *MetaData) *CreateViewStatement {
	s := &CreateViewStatement{
		ObjectStatement: NewObjectStatement(CreateView, name),
		Expression:      expr,
	}
	s.MetaData = md
	return s
}

func (s *CreateViewStatement) String() string {
	var b statementBuilder
	b.WriteString(fmt.Sprintf("create view %s %s", s.ObjectName, s.Expression.String()))
	b.writeMetaData(s.MetaData)
	return b.String()
}

func (s *CreateViewStatement) Validate() error {
	if err := s.requireNonEmpty("ObjectName", s.ObjectName, "view name cannot be empty"); err != nil {
		return err
	}
	if s.Expression == nil {
		return NewValidationError(s.stmtType, "Expression", "view expression cannot be empty")
	}
	return nil
}

// CreateConstraintStatement adds a table-level constraint.
type CreateConstraintStatement struct {
	ObjectStatement
	TableName  string
	Expression Expression
}

func NewCreateConstraintStatement(tableName, name string, expr Expression, md *MetaData) *CreateConstraintStatement {
	s := &CreateConstraintStatement{
		ObjectStatement: NewObjectStatement(CreateConstraint, name),
		TableName:       tableName,
		Expression:      expr,
	}
	s.MetaData = md
	return s
}

func (s *CreateConstraintStatement) String() string {
	var b statementBuilder
	b.WriteString(fmt.Sprintf("alter table %s { create constraint %s %s", s.TableName, s.ObjectName, s.Expression.String()))
	b.writeMetaData(s.MetaData)
	b.WriteString(" }")
	return b.String()
}

func (s *CreateConstraintStatement) Validate() error {
	if err := s.requireNonEmpty("TableName", s.TableName, "constraint table cannot be empty"); err != nil {
		return err
	}
	if s.Expression == nil {
		return NewValidationError(s.stmtType, "Expression", "constraint expression cannot be empty")
	}
	return s.requireNonEmpty("ObjectName", s.ObjectName, "constraint name cannot be empty")
}

// ReferenceActionDefinition is the update or delete clause of a reference.
type ReferenceActionDefinition struct {
	Action      ReferenceAction
	Expressions []Expression
}

func (d ReferenceActionDefinition) render(keyword string) string {
	s := keyword + " " + d.Action.String()
	if d.Action == Set && len(d.Expressions) > 0 {
		exprs := make([]string, len(d.Expressions))
		for i, e := range d.Expressions {
			exprs[i] = e.String()
		}
		s += " { " + strings.Join(exprs, ", ") + " }"
	}
	return s
}

// CreateReferenceStatement declares a reference between two table variables.
type CreateReferenceStatement struct {
	ObjectStatement
	SourceTable   string
	SourceColumns []string
	TargetTable   string
	TargetColumns []string
	Update        ReferenceActionDefinition
	Delete        ReferenceActionDefinition
}

func NewCreateReferenceStatement(name string, md *MetaData) *CreateReferenceStatement {
	s := &CreateReferenceStatement{
		ObjectStatement: NewObjectStatement(CreateReference, name),
	}
	s.MetaData = md
	return s
}

func (s *CreateReferenceStatement) String() string {
	var b statementBuilder
	b.WriteString("create reference ")
	b.WriteString(s.ObjectName)
	b.WriteString(" " + s.SourceTable + " ")
	b.writeList(s.SourceColumns)
	b.WriteString(" references " + s.TargetTable + " ")
	b.writeList(s.TargetColumns)
	b.WriteString(" " + s.Update.render("update"))
	b.WriteString(" " + s.Delete.render("delete"))
	b.writeMetaData(s.MetaData)
	return b.String()
}

func (s *CreateReferenceStatement) Validate() error {
	if err := s.requireNonEmpty("ObjectName", s.ObjectName, "reference name cannot be empty"); err != nil {
		return err
	}
	if err := s.requireNonEmpty("SourceTable", s.SourceTable, "source table cannot be empty"); err != nil {
		return err
	}
	if err := s.requireNonEmpty("TargetTable", s.TargetTable, "target table cannot be empty"); err != nil {
		return err
	}
	if err := s.requireNonEmptySlice("SourceColumns", len(s.SourceColumns), "reference must have at least one column"); err != nil {
		return err
	}
	if len(s.SourceColumns) != len(s.TargetColumns) {
		return NewValidationError(s.stmtType, "TargetColumns",
			fmt.Sprintf("source has %d columns, target has %d", len(s.SourceColumns), len(s.TargetColumns)))
	}
	return nil
}

// FormalParameter is one operand of an operator declaration.
type FormalParameter struct {
	Name     string
	Modifier Modifier
	Type     TypeSpecifier
}

func (p FormalParameter) String() string {
	if p.Modifier == In {
		return p.Name + " : " + p.Type.String()
	}
	return p.Modifier.String() + " " + p.Name + " : " + p.Type.String()
}

// CreateOperatorStatement declares an operator overload.
type CreateOperatorStatement struct {
	ObjectStatement
	Parameters []FormalParameter
	ReturnType TypeSpecifier
	Body       Expression
}

func NewCreateOperatorStatement(name string, params []FormalParameter, returnType TypeSpecifier, body Expression, md *MetaData) *CreateOperatorStatement {
	s := &CreateOperatorStatement{
		ObjectStatement: NewObjectStatement(CreateOperator, name),
		Parameters:      params,
		ReturnType:      returnType,
		Body:            body,
	}
	s.MetaData = md
	return s
}

func (s *CreateOperatorStatement) String() string {
	params := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = p.String()
	}

	var b statementBuilder
	b.WriteString(fmt.Sprintf("create operator %s(%s)", s.ObjectName, strings.Join(params, ", ")))
	if s.ReturnType != nil {
		b.WriteString(" : " + s.ReturnType.String())
	}
	if s.Body != nil {
		b.WriteString(" begin " + s.Body.String() + " end")
	}
	b.writeMetaData(s.MetaData)
	return b.String()
}

func (s *CreateOperatorStatement) Validate() error {
	return s.requireNonEmpty("ObjectName", s.ObjectName, "operator name cannot be empty")
}

// CreateDeviceStatement declares a storage device of a registered class.
type CreateDeviceStatement struct {
	ObjectStatement
	ClassName  string
	Attributes []Tag
}

func NewCreateDeviceStatement(name, className string, attributes []Tag, md *MetaData) *CreateDeviceStatement {
	s := &CreateDeviceStatement{
		ObjectStatement: NewObjectStatement(CreateDevice, name),
		ClassName:       className,
		Attributes:      attributes,
	}
	s.MetaData = md
	return s
}

func (s *CreateDeviceStatement) String() string {
	var b statementBuilder
	b.WriteString(fmt.Sprintf("create device %s class %q", s.ObjectName, s.ClassName))
	if len(s.Attributes) > 0 {
		attrs := make([]string, len(s.Attributes))
		for i, a := range s.Attributes {
			attrs[i] = fmt.Sprintf("%q = %q", a.Name, a.Value)
		}
		b.WriteString(" attributes ")
		b.writeList(attrs)
	}
	b.writeMetaData(s.MetaData)
	return b.String()
}

func (s *CreateDeviceStatement) Validate() error {
	if err := s.requireNonEmpty("ObjectName", s.ObjectName, "device name cannot be empty"); err != nil {
		return err
	}
	return s.requireNonEmpty("ClassName", s.ClassName, "device class cannot be empty")
}
