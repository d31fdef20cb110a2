package catalog

import (
	"slices"

	"schemacore/pkg/catalog/object"
	schemaerr "schemacore/pkg/error"
)

// References is an ordered collection of references, kept by a table
// variable or a plan node. It holds references, not object ids: derived
// references are never stored in a catalog.
type References struct {
	items []*Reference
}

func NewReferences() *References {
	return &References{items: make([]*Reference, 0)}
}

func (rs *References) Count() int {
	return len(rs.items)
}

func (rs *References) At(i int) *Reference {
	return rs.items[i]
}

func (rs *References) All() []*Reference {
	return slices.Clone(rs.items)
}

// Add appends r.
func (rs *References) Add(r *Reference) {
	rs.items = append(rs.items, r)
}

// AddInCreationOrder inserts r before the first reference with a strictly
// greater object id, keeping the collection sorted by creation.
func (rs *References) AddInCreationOrder(r *Reference) {
	i := len(rs.items)
	for j, existing := range rs.items {
		if existing.ID() > r.ID() {
			i = j
			break
		}
	}
	rs.items = slices.Insert(rs.items, i, r)
}

// AddObject adds obj, which must be a reference.
func (rs *References) AddObject(obj object.Object) error {
	r, ok := obj.(*Reference)
	if !ok || obj.Kind() != object.KindReference {
		return schemaerr.ReferenceContainerViolation(obj.Kind().String()).In("AddObject", "References")
	}
	rs.Add(r)
	return nil
}

// ContainsSourceReference reports whether a reference with the same
// originating reference and source key is present.
func (rs *References) ContainsSourceReference(r *Reference) bool {
	origin := r.OriginatingReferenceName()
	for _, existing := range rs.items {
		if existing.OriginatingReferenceName() == origin && existing.SourceKey().Equals(r.SourceKey()) {
			return true
		}
	}
	return false
}

// ContainsTargetReference is ContainsSourceReference for the target key.
func (rs *References) ContainsTargetReference(r *Reference) bool {
	origin := r.OriginatingReferenceName()
	for _, existing := range rs.items {
		if existing.OriginatingReferenceName() == origin && existing.TargetKey().Equals(r.TargetKey()) {
			return true
		}
	}
	return false
}

func (rs *References) indexOfName(name string) int {
	for i, r := range rs.items {
		if object.NamesEqual(r.Name(), name) {
			return i
		}
	}
	return -1
}

// ByName resolves a reference by name as catalog lookups do.
func (rs *References) ByName(name string) (*Reference, bool) {
	if i := rs.indexOfName(name); i >= 0 {
		return rs.items[i], true
	}
	return nil, false
}

func (rs *References) Contains(name string) bool {
	return rs.indexOfName(name) >= 0
}

// Remove deletes the named reference and reports whether it was present.
func (rs *References) Remove(name string) bool {
	i := rs.indexOfName(name)
	if i < 0 {
		return false
	}
	rs.items = slices.Delete(rs.items, i, i+1)
	return true
}
