package catalog

import (
	"slices"
	"strings"

	schemaerr "schemacore/pkg/error"
)

// ClassDefinition describes a registered implementation class, such as a
// device class.
type ClassDefinition struct {
	Name    string
	Library string
}

// ClassRegistry resolves class names case-insensitively. It is configured
// by its owner, never shared through package state.
type ClassRegistry struct {
	classes map[string]ClassDefinition
}

func NewClassRegistry(classes ...ClassDefinition) *ClassRegistry {
	r := &ClassRegistry{classes: make(map[string]ClassDefinition)}
	for _, c := range classes {
		r.Register(c)
	}
	return r
}

func (r *ClassRegistry) Register(class ClassDefinition) {
	r.classes[strings.ToLower(class.Name)] = class
}

// Get returns the named class or REGISTERED_CLASS_NOT_FOUND.
func (r *ClassRegistry) Get(name string) (ClassDefinition, error) {
	if c, ok := r.classes[strings.ToLower(name)]; ok {
		return c, nil
	}
	return ClassDefinition{}, schemaerr.RegisteredClassNotFound(name).In("Get", "ClassRegistry")
}

func (r *ClassRegistry) Contains(name string) bool {
	_, ok := r.classes[strings.ToLower(name)]
	return ok
}

// Rights is the set of rights known to a catalog.
type Rights struct {
	rights map[string]string
}

func NewRights(names ...string) *Rights {
	r := &Rights{rights: make(map[string]string)}
	for _, name := range names {
		r.Add(name)
	}
	return r
}

func (r *Rights) Add(name string) {
	r.rights[strings.ToLower(name)] = name
}

func (r *Rights) Remove(name string) {
	delete(r.rights, strings.ToLower(name))
}

// Get returns the right as registered, or RIGHT_NOT_FOUND.
func (r *Rights) Get(name string) (string, error) {
	if right, ok := r.rights[strings.ToLower(name)]; ok {
		return right, nil
	}
	return "", schemaerr.RightNotFound(name).In("Get", "Rights")
}

// Names returns the registered rights sorted.
func (r *Rights) Names() []string {
	names := make([]string, 0, len(r.rights))
	for _, name := range r.rights {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Registries bundles the lookup tables a catalog is loaded against.
type Registries struct {
	Classes *ClassRegistry
	Rights  *Rights
}

// DefaultRegistries registers the built-in device classes and the rights
// the built-in operators require.
func DefaultRegistries() Registries {
	return Registries{
		Classes: NewClassRegistry(
			ClassDefinition{Name: "System.MemoryDevice", Library: "System"},
			ClassDefinition{Name: "System.SimpleDevice", Library: "System"},
		),
		Rights: NewRights("System.Connect", "System.CreateOperator", "System.CreateTable", "System.CreateDevice"),
	}
}
