package object

import (
	"fmt"

	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/primitives"
)

// Include is the dependency closure step shared by catalog objects: it adds
// obj to target unless an object of the same name is already there, then
// includes every dependency resolved from source. Adding before recursing
// makes self-referencing graphs terminate. source is never modified.
func Include(session Session, obj Object, source, target *Catalog, mode primitives.EmitMode) error {
	if obj.Kind().IsCatalogObject() {
		if target.Contains(obj.Name()) {
			return nil
		}
	} else if target.ContainsID(obj.ID()) {
		return nil
	}

	if err := target.Add(obj); err != nil {
		return err
	}
	if session != nil {
		session.Logger().Debug("included dependency",
			"object", obj.Name(), "kind", obj.Kind().String(), "mode", mode.String())
	}

	return IncludeAll(session, obj.Dependencies(), source, target, mode)
}

// IncludeAll resolves each id in source and includes it in target.
func IncludeAll(session Session, ids []primitives.ObjectID, source, target *Catalog, mode primitives.EmitMode) error {
	for _, id := range ids {
		dep, ok := source.ByID(id)
		if !ok {
			return schemaerr.ObjectNotFound(fmt.Sprintf("dependency id %d", id)).
				In("IncludeDependencies", "Catalog")
		}
		if err := dep.IncludeDependencies(session, source, target, mode); err != nil {
			return err
		}
	}
	return nil
}
