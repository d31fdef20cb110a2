package object

import (
	"fmt"
	"slices"
	"strings"

	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/primitives"
)

// SystemLibraryName is the library that owns the built-in objects.
const SystemLibraryName = "System"

// Library is a named unit of catalog objects. Libraries are not objects
// themselves; they only scope object names and emission filters.
type Library struct {
	Name       string
	Requisites []string
	IsSystem   bool
}

// idAssigner is implemented by objects whose id the catalog may assign.
type idAssigner interface {
	SetID(id primitives.ObjectID)
}

// Catalog is the arena that owns catalog objects and the objects they own.
// Objects are addressed by id; names index only catalog-level objects.
//
// A Catalog is not safe for concurrent use. An emission pass owns its
// target catalog exclusively.
type Catalog struct {
	objects   map[primitives.ObjectID]Object
	byName    map[string]primitives.ObjectID
	order     []primitives.ObjectID
	libraries map[string]*Library
	nextID    primitives.ObjectID
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		objects:   make(map[primitives.ObjectID]Object),
		byName:    make(map[string]primitives.ObjectID),
		order:     make([]primitives.ObjectID, 0),
		libraries: make(map[string]*Library),
		nextID:    1,
	}
}

func nameKey(name string) string {
	return EnsureUnrooted(name)
}

// NextID reserves and returns a fresh object id.
func (c *Catalog) NextID() primitives.ObjectID {
	id := c.nextID
	c.nextID++
	return id
}

// Add places obj in the catalog. Objects without an id receive the next
// free id; objects copied from another catalog keep theirs.
func (c *Catalog) Add(obj Object) error {
	id := obj.ID()
	if !id.IsValid() {
		assigner, ok := obj.(idAssigner)
		if !ok {
			return fmt.Errorf("object %s has no id and cannot be assigned one", obj.Name())
		}
		id = c.NextID()
		assigner.SetID(id)
	}

	if _, exists := c.objects[id]; exists {
		return schemaerr.DuplicateObject(fmt.Sprintf("%s (id %d)", obj.Name(), id))
	}
	if obj.Kind().IsCatalogObject() {
		if _, exists := c.byName[nameKey(obj.Name())]; exists {
			return schemaerr.DuplicateObject(obj.Name())
		}
		c.byName[nameKey(obj.Name())] = id
	}

	c.objects[id] = obj
	c.insertInOrder(id)
	if id >= c.nextID {
		c.nextID = id + 1
	}
	return nil
}

// insertInOrder keeps order ascending by id, inserting before the first
// strictly greater id.
func (c *Catalog) insertInOrder(id primitives.ObjectID) {
	i, _ := slices.BinarySearch(c.order, id)
	c.order = slices.Insert(c.order, i, id)
}

// Remove deletes the object with the given id.
func (c *Catalog) Remove(id primitives.ObjectID) error {
	obj, ok := c.objects[id]
	if !ok {
		return schemaerr.ObjectNotFound(fmt.Sprintf("id %d", id))
	}
	delete(c.objects, id)
	if obj.Kind().IsCatalogObject() {
		delete(c.byName, nameKey(obj.Name()))
	}
	if i, found := slices.BinarySearch(c.order, id); found {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return nil
}

// Contains reports whether a catalog object with the given name exists.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.byName[nameKey(name)]
	return ok
}

// ContainsID reports whether an object with the given id exists.
func (c *Catalog) ContainsID(id primitives.ObjectID) bool {
	_, ok := c.objects[id]
	return ok
}

// ByID returns the object with the given id.
func (c *Catalog) ByID(id primitives.ObjectID) (Object, bool) {
	obj, ok := c.objects[id]
	return obj, ok
}

// Get returns the object with the given id or an OBJECT_NOT_FOUND error.
func (c *Catalog) Get(id primitives.ObjectID) (Object, error) {
	if obj, ok := c.objects[id]; ok {
		return obj, nil
	}
	return nil, schemaerr.ObjectNotFound(fmt.Sprintf("id %d", id))
}

// ByName returns the catalog object with the given name, rooted or not.
func (c *Catalog) ByName(name string) (Object, bool) {
	id, ok := c.byName[nameKey(name)]
	if !ok {
		return nil, false
	}
	return c.objects[id], true
}

// Resolve finds a catalog object by exact name, then by unique trailing
// segments ("Orders" resolves "Sales.Orders").
func (c *Catalog) Resolve(name string) (Object, error) {
	if obj, ok := c.ByName(name); ok {
		return obj, nil
	}
	if IsRooted(name) {
		return nil, schemaerr.ObjectNotFound(name)
	}

	var matches []Object
	for _, id := range c.order {
		obj := c.objects[id]
		if obj.Kind().IsCatalogObject() && NamesEqual(obj.Name(), name) {
			matches = append(matches, obj)
		}
	}
	switch len(matches) {
	case 0:
		return nil, schemaerr.ObjectNotFound(name)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name()
		}
		return nil, schemaerr.ObjectNotFound(name).
			WithHint("name is ambiguous between " + strings.Join(names, ", "))
	}
}

// Len returns the number of objects, owned objects included.
func (c *Catalog) Len() int {
	return len(c.objects)
}

// Objects returns every object in creation order.
func (c *Catalog) Objects() []Object {
	result := make([]Object, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.objects[id])
	}
	return result
}

// OwnedBy returns the objects owned by the given catalog object, in creation order.
func (c *Catalog) OwnedBy(owner primitives.ObjectID) []Object {
	var result []Object
	for _, id := range c.order {
		if obj := c.objects[id]; obj.Owner() == owner {
			result = append(result, obj)
		}
	}
	return result
}

// Dependents returns the objects that list id as a direct dependency.
func (c *Catalog) Dependents(id primitives.ObjectID) []Object {
	var result []Object
	for _, oid := range c.order {
		obj := c.objects[oid]
		if slices.Contains(obj.Dependencies(), id) {
			result = append(result, obj)
		}
	}
	return result
}

// AddLibrary registers a library. Registering the same name twice updates it.
func (c *Catalog) AddLibrary(lib Library) {
	copied := lib
	copied.Requisites = append([]string(nil), lib.Requisites...)
	c.libraries[strings.ToLower(lib.Name)] = &copied
}

// LibraryByName looks a library up case-insensitively.
func (c *Catalog) LibraryByName(name string) (*Library, bool) {
	lib, ok := c.libraries[strings.ToLower(name)]
	return lib, ok
}

// Libraries returns the registered libraries sorted by name.
func (c *Catalog) Libraries() []*Library {
	result := make([]*Library, 0, len(c.libraries))
	for _, lib := range c.libraries {
		result = append(result, lib)
	}
	slices.SortFunc(result, func(a, b *Library) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}
