package statements

import "strings"

// statementBuilder wraps strings.Builder with helpers that eliminate
// the repetitive if-then-WriteString pattern in Statement.String() methods.
type statementBuilder struct {
	strings.Builder
}

// writeIf appends s only when cond is true.
func (b *statementBuilder) writeIf(cond bool, s string) {
	if cond {
		b.WriteString(s)
	}
}

// writeClause appends " keyword value" only when value is non-empty.
func (b *statementBuilder) writeClause(keyword, value string) {
	if value != "" {
		b.WriteString(" " + keyword + " " + value)
	}
}

// writeList appends "{ a, b, c }".
func (b *statementBuilder) writeList(items []string) {
	b.WriteString("{ ")
	b.WriteString(strings.Join(items, ", "))
	b.WriteString(" }")
}

// writeMetaData appends the rendered tags, if there are any.
func (b *statementBuilder) writeMetaData(md *MetaData) {
	if md != nil && md.Len() > 0 {
		b.WriteString(" ")
		b.WriteString(md.String())
	}
}

// BaseStatement provides common functionality for all statement types
type BaseStatement struct {
	stmtType StatementType
}

func NewBaseStatement(stmtType StatementType) BaseStatement {
	return BaseStatement{stmtType: stmtType}
}

func (bs *BaseStatement) GetType() StatementType {
	return bs.stmtType
}

// ObjectStatement provides common functionality for statements naming one catalog object
type ObjectStatement struct {
	BaseStatement
	ObjectName string
	MetaData   *MetaData
}

// NewObjectStatement creates a new object statement
func NewObjectStatement(stmtType StatementType, objectName string) ObjectStatement {
	return ObjectStatement{
		BaseStatement: NewBaseStatement(stmtType),
		ObjectName:    objectName,
	}
}

// GetObjectName returns the name of the object the statement applies to
func (s *ObjectStatement) GetObjectName() string {
	return s.ObjectName
}

// requireNonEmpty returns a ValidationError when value is empty.
// It mirrors the statementBuilder pattern used in String() methods.
func (bs *BaseStatement) requireNonEmpty(fieldName, value, msg string) error {
	if value == "" {
		return NewValidationError(bs.stmtType, fieldName, msg)
	}
	return nil
}

// requireNonEmptySlice returns a ValidationError when length is zero.
func (bs *BaseStatement) requireNonEmptySlice(fieldName string, length int, msg string) error {
	if length == 0 {
		return NewValidationError(bs.stmtType, fieldName, msg)
	}
	return nil
}
