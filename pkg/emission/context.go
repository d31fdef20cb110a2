// Package emission turns the objects of a catalog into create, alter and
// drop scripts for a library, an inclusion policy and a request set.
package emission

import (
	"log/slog"
	"strings"

	"schemacore/pkg/catalog/object"
	"schemacore/pkg/logging"
	"schemacore/pkg/metrics"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// Skip reasons recorded in metrics.
const (
	skipNotRequested = "not_requested"
	skipSystem       = "system"
	skipDevice       = "device_specific"
	skipGenerated    = "generated"
	skipLibrary      = "library"
)

// Options selects what an emission pass writes.
type Options struct {
	Mode primitives.EmitMode

	// RequestedObjects limits emission to these ids. Empty means all.
	RequestedObjects []primitives.ObjectID

	// LibraryName limits emission to one library. Empty means all.
	LibraryName string

	IncludeSystem     bool
	IncludeGenerated  bool
	IncludeDependents bool
}

// EmissionContext is the state of one emission pass. It is not reusable
// across passes and not safe for concurrent use.
type EmissionContext struct {
	session           object.Session
	mode              primitives.EmitMode
	requested         map[primitives.ObjectID]struct{}
	libraryName       string
	includeSystem     bool
	includeGenerated  bool
	includeDependents bool

	emittedObjects   map[primitives.ObjectID]object.Object
	emittedLibraries map[string]struct{}
	currentLibrary   string
	block            *statements.BlockStatement

	metrics *metrics.EmissionMetrics
	logger  *slog.Logger
}

func NewEmissionContext(session object.Session, opts Options) *EmissionContext {
	requested := make(map[primitives.ObjectID]struct{}, len(opts.RequestedObjects))
	for _, id := range opts.RequestedObjects {
		requested[id] = struct{}{}
	}
	logger := logging.GetLogger()
	if session != nil {
		logger = session.Logger()
	}
	return &EmissionContext{
		session:           session,
		mode:              opts.Mode,
		requested:         requested,
		libraryName:       opts.LibraryName,
		includeSystem:     opts.IncludeSystem,
		includeGenerated:  opts.IncludeGenerated,
		includeDependents: opts.IncludeDependents,
		emittedObjects:    make(map[primitives.ObjectID]object.Object),
		emittedLibraries:  make(map[string]struct{}),
		block:             statements.NewBlockStatement(),
		logger:            logger.With("component", "emission"),
	}
}

// WithMetrics records the pass in m.
func (ec *EmissionContext) WithMetrics(m *metrics.EmissionMetrics) *EmissionContext {
	ec.metrics = m
	return ec
}

func (ec *EmissionContext) Mode() primitives.EmitMode { return ec.mode }

func (ec *EmissionContext) Block() *statements.BlockStatement { return ec.block }

func (ec *EmissionContext) IsEmitted(id primitives.ObjectID) bool {
	_, ok := ec.emittedObjects[id]
	return ok
}

// EmittedObjects returns the objects written so far, by id.
func (ec *EmissionContext) EmittedObjects() map[primitives.ObjectID]object.Object {
	result := make(map[primitives.ObjectID]object.Object, len(ec.emittedObjects))
	for id, obj := range ec.emittedObjects {
		result[id] = obj
	}
	return result
}

// EmittedLibraries returns the names of the libraries objects were written for.
func (ec *EmissionContext) EmittedLibraries() []string {
	result := make([]string, 0, len(ec.emittedLibraries))
	for name := range ec.emittedLibraries {
		result = append(result, name)
	}
	return result
}

func (ec *EmissionContext) isRequested(id primitives.ObjectID) bool {
	if len(ec.requested) == 0 {
		return true
	}
	_, ok := ec.requested[id]
	return ok
}

func (ec *EmissionContext) isExplicitlyRequested(id primitives.ObjectID) bool {
	_, ok := ec.requested[id]
	return ok
}

// skipReason returns why ShouldEmit rejects obj, or "" if it does not.
func (ec *EmissionContext) skipReason(obj object.Object) string {
	switch {
	case !ec.isRequested(obj.ID()):
		return skipNotRequested
	case !ec.includeSystem && obj.IsSystem():
		return skipSystem
	case obj.IsDeviceSpecific() && ec.mode == primitives.ForRemote:
		return skipDevice
	case obj.IsGenerated() && !ec.includeGenerated && !obj.IsSessionObject() &&
		!(obj.IsATObject() && ec.isExplicitlyRequested(obj.ID())):
		return skipGenerated
	default:
		return ""
	}
}

// ShouldEmit reports whether obj belongs in a create script: it is
// requested, not an excluded system object, not a device specific object
// under remote emission, and not a suppressed generated object. Session
// objects and explicitly requested AT objects are never suppressed as
// generated.
func (ec *EmissionContext) ShouldEmit(obj object.Object) bool {
	return ec.skipReason(obj) == ""
}

// ShouldEmitDrop reports whether obj belongs in a drop script. Catalog
// objects are filtered by request, system flag and library. Owned objects
// are only dropped on their own when their kind allows it and their owner
// is requested, and never when they belong to the system.
func (ec *EmissionContext) ShouldEmitDrop(obj object.Object) bool {
	if obj.Kind().IsCatalogObject() {
		return ec.isRequested(obj.ID()) &&
			(ec.includeSystem || !obj.IsSystem()) &&
			ec.ShouldEmitWithLibrary(obj)
	}
	return obj.Kind().IsStandaloneDroppable() &&
		(ec.isRequested(obj.Owner()) || ec.isExplicitlyRequested(obj.ID())) &&
		!obj.IsSystem() &&
		ec.ShouldEmitWithLibrary(obj)
}

// ShouldEmitWithLibrary matches obj's library against the library filter,
// ignoring case. An empty filter matches every object.
func (ec *EmissionContext) ShouldEmitWithLibrary(obj object.Object) bool {
	return ec.libraryName == "" || strings.EqualFold(ec.libraryName, obj.Library())
}

func (ec *EmissionContext) shouldEmitCreate(obj object.Object) bool {
	reason := ec.skipReason(obj)
	if reason == "" && !ec.ShouldEmitWithLibrary(obj) {
		reason = skipLibrary
	}
	if reason != "" {
		ec.metrics.ObserveSkip(reason)
		return false
	}
	return true
}

func (ec *EmissionContext) markEmitted(obj object.Object) bool {
	if ec.IsEmitted(obj.ID()) {
		return false
	}
	ec.emittedObjects[obj.ID()] = obj
	return true
}

// add appends stmt, switching library first when obj belongs to another one.
func (ec *EmissionContext) add(obj object.Object, stmt statements.Statement, action string) {
	if stmt == nil {
		return
	}
	if lib := obj.Library(); lib != "" && !strings.EqualFold(lib, ec.currentLibrary) {
		ec.block.Add(statements.NewSetLibraryStatement(lib))
		ec.currentLibrary = lib
		ec.emittedLibraries[lib] = struct{}{}
	}
	ec.block.Add(stmt)
	ec.metrics.ObserveStatement(obj.Kind().String(), action)
	ec.logger.Debug("emitted statement",
		"object", obj.Name(), "kind", obj.Kind().String(), "action", action)
}
