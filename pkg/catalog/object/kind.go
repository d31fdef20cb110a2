package object

// Kind identifies the concrete sort of a catalog object.
type Kind int

const (
	KindScalarType Kind = iota
	KindTableVar
	KindView
	KindReference
	KindOperator
	KindDevice

	// Objects below are owned by a catalog object and are not catalog
	// objects themselves.
	KindRepresentation
	KindScalarTypeDefault
	KindColumnDefault
	KindSpecial
	KindConstraint
)

func (k Kind) String() string {
	switch k {
	case KindScalarType:
		return "ScalarType"
	case KindTableVar:
		return "BaseTableVar"
	case KindView:
		return "DerivedTableVar"
	case KindReference:
		return "Reference"
	case KindOperator:
		return "Operator"
	case KindDevice:
		return "Device"
	case KindRepresentation:
		return "Representation"
	case KindScalarTypeDefault:
		return "ScalarTypeDefault"
	case KindColumnDefault:
		return "TableVarColumnDefault"
	case KindSpecial:
		return "Special"
	case KindConstraint:
		return "Constraint"
	default:
		return "Unknown"
	}
}

// IsCatalogObject reports whether objects of this kind live directly in the
// catalog namespace rather than inside an owning object.
func (k Kind) IsCatalogObject() bool {
	return k <= KindDevice
}

// IsStandaloneDroppable reports whether a non-catalog object of this kind is
// ever dropped on its own. Everything else disappears with its owner.
func (k Kind) IsStandaloneDroppable() bool {
	switch k {
	case KindRepresentation, KindScalarTypeDefault, KindColumnDefault, KindSpecial, KindConstraint:
		return true
	default:
		return false
	}
}
