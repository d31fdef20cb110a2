package emission

import (
	"fmt"
	"time"

	"schemacore/pkg/catalog/object"
	"schemacore/pkg/metrics"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// EmitCatalog writes a create statement for every object of c that passes
// the filters, in creation order. An object's dependencies are written
// before it when they pass the filters themselves.
func (ec *EmissionContext) EmitCatalog(c *object.Catalog) (*statements.BlockStatement, error) {
	defer ec.metrics.ObserveDuration("catalog", time.Now())
	ec.expandDependents(c)

	for _, obj := range c.Objects() {
		if !ec.shouldEmitCreate(obj) {
			continue
		}
		if err := ec.emitCreate(c, obj); err != nil {
			return nil, err
		}
	}
	ec.logger.Info("emitted catalog", "statements", ec.block.Len(), "mode", ec.mode.String())
	return ec.block, nil
}

func (ec *EmissionContext) emitCreate(c *object.Catalog, obj object.Object) error {
	if !ec.markEmitted(obj) {
		return nil
	}
	for _, id := range obj.Dependencies() {
		dep, ok := c.ByID(id)
		if !ok || ec.IsEmitted(id) || !ec.ShouldEmit(dep) || !ec.ShouldEmitWithLibrary(dep) {
			continue
		}
		if err := ec.emitCreate(c, dep); err != nil {
			return err
		}
	}
	return ec.emitCreateStatement(obj)
}

func (ec *EmissionContext) emitCreateStatement(obj object.Object) error {
	stmt, err := obj.EmitStatement(ec.mode)
	if err != nil {
		return fmt.Errorf("failed to emit %s: %w", obj.Name(), err)
	}
	ec.add(obj, stmt, metrics.ActionCreate)
	return nil
}

// expandDependents adds every object that transitively depends on a
// requested object to the request set.
func (ec *EmissionContext) expandDependents(c *object.Catalog) {
	if !ec.includeDependents || len(ec.requested) == 0 {
		return
	}
	pending := make([]primitives.ObjectID, 0, len(ec.requested))
	for id := range ec.requested {
		pending = append(pending, id)
	}
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for _, dependent := range c.Dependents(id) {
			if _, seen := ec.requested[dependent.ID()]; !seen {
				ec.requested[dependent.ID()] = struct{}{}
				pending = append(pending, dependent.ID())
			}
		}
	}
}

// EmitDropCatalog writes a drop statement for every droppable object of c
// in reverse creation order. Objects that depend on a dropped object are
// dropped before it.
func (ec *EmissionContext) EmitDropCatalog(c *object.Catalog) (*statements.BlockStatement, error) {
	defer ec.metrics.ObserveDuration("drop", time.Now())
	ec.expandDependents(c)

	objects := c.Objects()
	for i := len(objects) - 1; i >= 0; i-- {
		obj := objects[i]
		if !ec.ShouldEmitDrop(obj) {
			continue
		}
		if err := ec.emitDrop(c, obj); err != nil {
			return nil, err
		}
	}
	ec.logger.Info("emitted drop catalog", "statements", ec.block.Len(), "mode", ec.mode.String())
	return ec.block, nil
}

func (ec *EmissionContext) emitDrop(c *object.Catalog, obj object.Object) error {
	if !ec.markEmitted(obj) {
		return nil
	}
	dependents := c.Dependents(obj.ID())
	for i := len(dependents) - 1; i >= 0; i-- {
		dep := dependents[i]
		if ec.IsEmitted(dep.ID()) || !ec.ShouldEmitDrop(dep) {
			continue
		}
		if err := ec.emitDrop(c, dep); err != nil {
			return err
		}
	}

	stmt, err := obj.EmitDropStatement(ec.mode)
	if err != nil {
		return fmt.Errorf("failed to emit drop of %s: %w", obj.Name(), err)
	}
	ec.add(obj, stmt, metrics.ActionDrop)
	return nil
}

// IncludeRequested copies the requested objects and everything they
// depend on from c into a new catalog. The result can be emitted as a
// self-contained script.
func (ec *EmissionContext) IncludeRequested(c *object.Catalog) (*object.Catalog, error) {
	target := object.NewCatalog()
	for _, lib := range c.Libraries() {
		target.AddLibrary(*lib)
	}
	for _, obj := range c.Objects() {
		if len(ec.requested) > 0 && !ec.isExplicitlyRequested(obj.ID()) {
			continue
		}
		if err := obj.IncludeDependencies(ec.session, c, target, ec.mode); err != nil {
			return nil, fmt.Errorf("failed to include dependencies of %s: %w", obj.Name(), err)
		}
	}
	return target, nil
}
