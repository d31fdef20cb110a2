package catalog

import (
	"slices"
	"strings"
)

// JoinKey is the ordered column list of one endpoint of a reference. Its
// columns pair positionally with the other endpoint's key.
type JoinKey struct {
	columns  []string
	isUnique bool
}

func NewJoinKey(columns ...string) *JoinKey {
	return &JoinKey{columns: slices.Clone(columns)}
}

func (k *JoinKey) Columns() []string {
	return slices.Clone(k.columns)
}

func (k *JoinKey) Count() int {
	return len(k.columns)
}

// IsUnique reports whether the key columns are a key of their table.
func (k *JoinKey) IsUnique() bool { return k.isUnique }

func (k *JoinKey) SetUnique(isUnique bool) { k.isUnique = isUnique }

// Equals compares column lists in order.
func (k *JoinKey) Equals(other *JoinKey) bool {
	if other == nil {
		return false
	}
	return slices.Equal(k.columns, other.columns)
}

func (k *JoinKey) Copy() *JoinKey {
	return &JoinKey{columns: slices.Clone(k.columns), isUnique: k.isUnique}
}

func (k *JoinKey) String() string {
	return "{ " + strings.Join(k.columns, ", ") + " }"
}

// Key is a declared key of a base table variable.
type Key struct {
	columns []string
}

func NewKey(columns ...string) *Key {
	return &Key{columns: slices.Clone(columns)}
}

func (k *Key) Columns() []string {
	return slices.Clone(k.columns)
}

// Equals treats keys as column sets.
func (k *Key) Equals(other *Key) bool {
	if len(k.columns) != len(other.columns) {
		return false
	}
	for _, c := range k.columns {
		if !slices.Contains(other.columns, c) {
			return false
		}
	}
	return true
}
