package primitives

import "math"

// ObjectID is the stable identifier of a catalog object. Identifiers are
// assigned in creation order, so comparing two ids compares creation order.
type ObjectID int64

// SessionID identifies the session that owns session-scoped objects.
type SessionID uint32

// Sentinel values for invalid/unset identifiers
const (
	// InvalidObjectID marks an object that has not been placed in a catalog.
	InvalidObjectID ObjectID = 0

	// MaxObjectID is the largest id the catalog will hand out.
	MaxObjectID ObjectID = math.MaxInt64

	// NoSession marks objects that are not session-scoped.
	NoSession SessionID = 0
)

// IsValid reports whether the id was assigned by a catalog.
func (id ObjectID) IsValid() bool {
	return id > InvalidObjectID
}
