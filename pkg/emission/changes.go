package emission

import (
	"fmt"
	"strings"
	"time"

	"schemacore/pkg/catalog/object"
	"schemacore/pkg/metrics"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// alterable is implemented by objects that can describe their changes
// from an earlier version as an alter statement. handled is false when the
// change cannot be expressed as an alter. A nil statement with handled set
// means nothing changed.
type alterable interface {
	EmitAlterStatement(old object.Object, mode primitives.EmitMode) (stmt statements.Statement, handled bool, err error)
}

type ownedByName interface {
	OwnerName() string
}

// matchKey identifies an object of c across two versions of a catalog.
// Catalog objects match by name, session objects by their session name,
// since their global name is synthesized anew on every load. Owned objects
// match by kind, the key of their owner and name.
func matchKey(c *object.Catalog, obj object.Object) string {
	if obj.Kind().IsCatalogObject() {
		if obj.IsSessionObject() {
			return "session|" + obj.SessionObjectName()
		}
		return object.EnsureUnrooted(obj.Name())
	}
	owner := ""
	if o, ok := c.ByID(obj.Owner()); ok {
		owner = matchKey(c, o)
	} else if o, ok := obj.(ownedByName); ok {
		owner = object.EnsureUnrooted(o.OwnerName())
	}
	return fmt.Sprintf("%s|%s|%s", obj.Kind(), owner, object.EnsureUnrooted(obj.Name()))
}

func indexByMatchKey(c *object.Catalog) map[string]object.Object {
	index := make(map[string]object.Object, c.Len())
	for _, obj := range c.Objects() {
		index[matchKey(c, obj)] = obj
	}
	return index
}

// definitionText renders the create statement of obj of c in copy mode,
// so identity tags are left out. Synthesized global names of obj and its
// owner are removed.
func definitionText(c *object.Catalog, obj object.Object) (string, error) {
	stmt, err := obj.EmitStatement(primitives.ForCopy)
	if err != nil {
		return "", err
	}
	text := stmt.String()
	if obj.IsSessionObject() {
		text = strings.ReplaceAll(text, obj.Name(), "")
	}
	if owner, ok := c.ByID(obj.Owner()); ok && owner.IsSessionObject() {
		text = strings.ReplaceAll(text, owner.Name(), "")
	}
	return text, nil
}

// sameDefinition compares the old version of an object with the new one.
func (w *changeWalk) sameDefinition(old, obj object.Object) (bool, error) {
	before, err := definitionText(w.oldCatalog, old)
	if err != nil {
		return false, err
	}
	after, err := definitionText(w.catalog, obj)
	if err != nil {
		return false, err
	}
	return before == after, nil
}

// changeWalk is the create and alter pass of EmitChanges over the new
// catalog. dropped holds the match keys of every object the drop pass
// removed, cascaded dependents included.
type changeWalk struct {
	ec         *EmissionContext
	oldCatalog *object.Catalog
	catalog    *object.Catalog
	old        map[string]object.Object
	dropped    map[string]struct{}
}

// previous returns the old version of obj if it is still in place: it
// existed and was not dropped.
func (w *changeWalk) previous(obj object.Object) (object.Object, bool) {
	key := matchKey(w.catalog, obj)
	if _, gone := w.dropped[key]; gone {
		return nil, false
	}
	old, ok := w.old[key]
	return old, ok
}

// selected applies the create filters to objects that need a create and
// the plain filters to objects that may need an alter.
func (w *changeWalk) selected(obj object.Object) bool {
	if _, inPlace := w.previous(obj); inPlace {
		return w.ec.ShouldEmit(obj) && w.ec.ShouldEmitWithLibrary(obj)
	}
	return w.ec.shouldEmitCreate(obj)
}

// apply brings obj up to date after its dependencies.
func (w *changeWalk) apply(obj object.Object) error {
	if !w.ec.markEmitted(obj) {
		return nil
	}
	for _, id := range obj.Dependencies() {
		dep, ok := w.catalog.ByID(id)
		if !ok || w.ec.IsEmitted(id) || !w.ec.ShouldEmit(dep) || !w.ec.ShouldEmitWithLibrary(dep) {
			continue
		}
		if err := w.apply(dep); err != nil {
			return err
		}
	}

	if old, inPlace := w.previous(obj); inPlace {
		return w.alter(old, obj)
	}
	return w.ec.emitCreateStatement(obj)
}

// EmitChanges writes the script that turns oldCatalog into newCatalog.
// Old objects with no counterpart are dropped first, in reverse creation
// order, together with their dependents. The new catalog is then walked
// in creation order: objects with no counterpart, and kept objects the
// drops took with them, are created; objects still in place are altered
// when their definition changed. Every object is handled after its
// dependencies. Changes that cannot be expressed as an alter drop and
// recreate the object.
func (ec *EmissionContext) EmitChanges(oldCatalog, newCatalog *object.Catalog) (*statements.BlockStatement, error) {
	defer ec.metrics.ObserveDuration("changes", time.Now())

	oldIndex := indexByMatchKey(oldCatalog)
	newIndex := indexByMatchKey(newCatalog)

	oldObjects := oldCatalog.Objects()
	for i := len(oldObjects) - 1; i >= 0; i-- {
		obj := oldObjects[i]
		if _, kept := newIndex[matchKey(oldCatalog, obj)]; kept || !ec.ShouldEmitDrop(obj) {
			continue
		}
		if err := ec.emitDrop(oldCatalog, obj); err != nil {
			return nil, err
		}
	}

	// Drops were recorded against old ids, which may collide with new ones.
	dropped := make(map[string]struct{}, len(ec.emittedObjects))
	for _, obj := range ec.emittedObjects {
		dropped[matchKey(oldCatalog, obj)] = struct{}{}
	}
	clear(ec.emittedObjects)

	w := &changeWalk{
		ec:         ec,
		oldCatalog: oldCatalog,
		catalog:    newCatalog,
		old:        oldIndex,
		dropped:    dropped,
	}
	for _, obj := range newCatalog.Objects() {
		if ec.IsEmitted(obj.ID()) || !w.selected(obj) {
			continue
		}
		if err := w.apply(obj); err != nil {
			return nil, err
		}
	}

	ec.logger.Info("emitted changes", "statements", ec.block.Len(), "mode", ec.mode.String())
	return ec.block, nil
}

// alter writes the change from old to obj. The caller marks obj emitted.
func (w *changeWalk) alter(old, obj object.Object) error {
	ec := w.ec
	same, err := w.sameDefinition(old, obj)
	if err != nil {
		return fmt.Errorf("failed to compare %s: %w", obj.Name(), err)
	}
	if same {
		return nil
	}

	if a, ok := obj.(alterable); ok {
		stmt, handled, err := a.EmitAlterStatement(old, ec.mode)
		if err != nil {
			return fmt.Errorf("failed to emit alter of %s: %w", obj.Name(), err)
		}
		if handled {
			if stmt != nil {
				ec.add(obj, stmt, metrics.ActionAlter)
			}
			return nil
		}
	}

	drop, err := old.EmitDropStatement(ec.mode)
	if err != nil {
		return fmt.Errorf("failed to emit drop of %s: %w", old.Name(), err)
	}
	ec.add(old, drop, metrics.ActionDrop)
	create, err := obj.EmitStatement(ec.mode)
	if err != nil {
		return fmt.Errorf("failed to emit %s: %w", obj.Name(), err)
	}
	ec.add(obj, create, metrics.ActionCreate)
	return nil
}
