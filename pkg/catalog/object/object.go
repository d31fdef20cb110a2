package object

import (
	"log/slog"

	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// Session is the opaque session handle threaded through dependency
// inclusion and emission.
type Session interface {
	SessionID() primitives.SessionID
	Logger() *slog.Logger
}

// Object is the common interface of everything stored in, or owned by, a Catalog.
type Object interface {
	ID() primitives.ObjectID
	Name() string
	Kind() Kind
	Library() string

	IsSystem() bool
	IsGenerated() bool
	IsATObject() bool
	IsDeviceSpecific() bool
	IsSessionObject() bool
	SessionObjectName() string

	// Owner is the catalog object an owned object belongs to, or
	// InvalidObjectID for catalog objects.
	Owner() primitives.ObjectID

	// Dependencies are the ids of the objects this object requires.
	Dependencies() []primitives.ObjectID

	MetaData() *statements.MetaData

	EmitStatement(mode primitives.EmitMode) (statements.Statement, error)
	EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error)

	// IncludeDependencies adds the object and everything it depends on to
	// target, resolving dependency ids in source.
	IncludeDependencies(session Session, source, target *Catalog, mode primitives.EmitMode) error
}

// BaseObject carries the identity and flags shared by every object. Concrete
// objects embed it and implement the emission methods.
type BaseObject struct {
	id                primitives.ObjectID
	name              string
	kind              Kind
	library           string
	owner             primitives.ObjectID
	isSystem          bool
	isGenerated       bool
	isATObject        bool
	isDeviceSpecific  bool
	sessionID         primitives.SessionID
	sessionObjectName string
	dependencies      []primitives.ObjectID
	metaData          *statements.MetaData
}

// NewBaseObject creates the shared part of an object. The id is assigned
// when the object is added to a catalog, unless set explicitly.
func NewBaseObject(kind Kind, name string) BaseObject {
	return BaseObject{
		kind:     kind,
		name:     name,
		metaData: statements.NewMetaData(),
	}
}

func (o *BaseObject) ID() primitives.ObjectID    { return o.id }
func (o *BaseObject) Name() string               { return o.name }
func (o *BaseObject) Kind() Kind                 { return o.kind }
func (o *BaseObject) Library() string            { return o.library }
func (o *BaseObject) Owner() primitives.ObjectID { return o.owner }
func (o *BaseObject) IsSystem() bool             { return o.isSystem }
func (o *BaseObject) IsGenerated() bool          { return o.isGenerated }
func (o *BaseObject) IsATObject() bool           { return o.isATObject }
func (o *BaseObject) IsDeviceSpecific() bool     { return o.isDeviceSpecific }
func (o *BaseObject) IsSessionObject() bool      { return o.sessionObjectName != "" }
func (o *BaseObject) SessionObjectName() string  { return o.sessionObjectName }
func (o *BaseObject) SessionID() primitives.SessionID {
	return o.sessionID
}

func (o *BaseObject) Dependencies() []primitives.ObjectID {
	return append([]primitives.ObjectID(nil), o.dependencies...)
}

func (o *BaseObject) MetaData() *statements.MetaData {
	if o.metaData == nil {
		o.metaData = statements.NewMetaData()
	}
	return o.metaData
}

// SetID assigns the object's catalog identity.
func (o *BaseObject) SetID(id primitives.ObjectID) { o.id = id }

func (o *BaseObject) SetLibrary(library string) { o.library = library }

func (o *BaseObject) SetOwner(owner primitives.ObjectID) { o.owner = owner }

func (o *BaseObject) SetSystem(isSystem bool) { o.isSystem = isSystem }

func (o *BaseObject) SetGenerated(isGenerated bool) { o.isGenerated = isGenerated }

// SetATObject marks a generated object that supports an AT construct.
// AT objects are always generated.
func (o *BaseObject) SetATObject(isATObject bool) {
	o.isATObject = isATObject
	if isATObject {
		o.isGenerated = true
	}
}

func (o *BaseObject) SetDeviceSpecific(isDeviceSpecific bool) { o.isDeviceSpecific = isDeviceSpecific }

// SetSession scopes the object to a session. The object keeps its global
// name; sessionObjectName is the name it was declared with.
func (o *BaseObject) SetSession(sessionID primitives.SessionID, sessionObjectName string) {
	o.sessionID = sessionID
	o.sessionObjectName = sessionObjectName
}

// AddDependency records that the object requires the object with the given id.
func (o *BaseObject) AddDependency(id primitives.ObjectID) {
	for _, dep := range o.dependencies {
		if dep == id {
			return
		}
	}
	o.dependencies = append(o.dependencies, id)
}

// RemoveDependency forgets a previously recorded dependency.
func (o *BaseObject) RemoveDependency(id primitives.ObjectID) {
	for i, dep := range o.dependencies {
		if dep == id {
			o.dependencies = append(o.dependencies[:i], o.dependencies[i+1:]...)
			return
		}
	}
}

// DependsOn reports whether id is a direct dependency.
func (o *BaseObject) DependsOn(id primitives.ObjectID) bool {
	for _, dep := range o.dependencies {
		if dep == id {
			return true
		}
	}
	return false
}
