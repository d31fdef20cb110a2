package statements

import "fmt"

// DropTarget is the kind of object a drop statement removes.
type DropTarget int

const (
	DropTable DropTarget = iota
	DropView
	DropType
	DropReference
	DropOperator
	DropConstraint
	DropRepresentation
	DropDefault
	DropSpecial
	DropDevice
)

func (t DropTarget) String() string {
	switch t {
	case DropTable:
		return "table"
	case DropView:
		return "view"
	case DropType:
		return "type"
	case DropReference:
		return "reference"
	case DropOperator:
		return "operator"
	case DropConstraint:
		return "constraint"
	case DropRepresentation:
		return "representation"
	case DropDefault:
		return "default"
	case DropSpecial:
		return "special"
	case DropDevice:
		return "device"
	default:
		return "object"
	}
}

// ownedByTable reports whether the target is dropped through an alter of its table.
func (t DropTarget) ownedByTable() bool {
	return t == DropConstraint
}

// ownedByType reports whether the target is dropped through an alter of its type.
func (t DropTarget) ownedByType() bool {
	return t == DropRepresentation || t == DropSpecial
}

// DropStatement removes a catalog object. Objects owned by a table or type
// (constraints, representations, specials, defaults) name their owner.
type DropStatement struct {
	BaseStatement
	Target     DropTarget
	ObjectName string
	OwnerName  string
	ColumnName string
	Signature  string
}

// NewDropStatement creates a drop of a top-level catalog object.
func NewDropStatement(target DropTarget, objectName string) *DropStatement {
	return &DropStatement{
		BaseStatement: NewBaseStatement(Drop),
		Target:        target,
		ObjectName:    objectName,
	}
}

// NewDropOwnedStatement creates a drop of an object owned by a table or type.
func NewDropOwnedStatement(target DropTarget, ownerName, objectName string) *DropStatement {
	s := NewDropStatement(target, objectName)
	s.OwnerName = ownerName
	return s
}

func (s *DropStatement) Validate() error {
	if s.Target == DropDefault {
		return s.requireNonEmpty("OwnerName", s.OwnerName, "default owner cannot be empty")
	}
	if err := s.requireNonEmpty("ObjectName", s.ObjectName, "object name cannot be empty"); err != nil {
		return err
	}
	if s.Target.ownedByTable() || s.Target.ownedByType() {
		return s.requireNonEmpty("OwnerName", s.OwnerName, "owner name cannot be empty")
	}
	return nil
}

// String returns a string representation of the drop statement
func (s *DropStatement) String() string {
	switch {
	case s.Target == DropDefault && s.ColumnName != "":
		return fmt.Sprintf("alter table %s { alter column %s { drop default } }", s.OwnerName, s.ColumnName)
	case s.Target == DropDefault:
		return fmt.Sprintf("alter type %s { drop default }", s.OwnerName)
	case s.Target.ownedByTable():
		return fmt.Sprintf("alter table %s { drop %s %s }", s.OwnerName, s.Target, s.ObjectName)
	case s.Target.ownedByType():
		return fmt.Sprintf("alter type %s { drop %s %s }", s.OwnerName, s.Target, s.ObjectName)
	case s.Target == DropOperator:
		return fmt.Sprintf("drop operator %s%s", s.ObjectName, s.Signature)
	default:
		return fmt.Sprintf("drop %s %s", s.Target, s.ObjectName)
	}
}
