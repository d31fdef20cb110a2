package types

import (
	"slices"
	"strings"

	"schemacore/pkg/catalog/object"
	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// Columns is an ordered collection of columns with unique names.
type Columns struct {
	columns []*Column
	index   map[string]int
}

func NewColumns() *Columns {
	return &Columns{
		columns: make([]*Column, 0),
		index:   make(map[string]int),
	}
}

// ColumnsOf builds a container from columns in order.
func ColumnsOf(columns ...*Column) (*Columns, error) {
	cs := NewColumns()
	for _, c := range columns {
		if err := cs.Add(c); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

func (cs *Columns) Count() int {
	return len(cs.columns)
}

// At returns the column at position i.
func (cs *Columns) At(i int) *Column {
	return cs.columns[i]
}

// All returns the columns in order. The slice is a copy; the columns are not.
func (cs *Columns) All() []*Column {
	return slices.Clone(cs.columns)
}

func (cs *Columns) Names() []string {
	names := make([]string, len(cs.columns))
	for i, c := range cs.columns {
		names[i] = c.Name()
	}
	return names
}

func (cs *Columns) reindex() {
	clear(cs.index)
	for i, c := range cs.columns {
		cs.index[c.Name()] = i
	}
}

// Add appends a column. Names must be unique within the container.
func (cs *Columns) Add(c *Column) error {
	if _, exists := cs.index[c.Name()]; exists {
		return schemaerr.DuplicateColumn(c.Name()).In("Add", "Columns")
	}
	cs.index[c.Name()] = len(cs.columns)
	cs.columns = append(cs.columns, c)
	return nil
}

// Insert places a column at position i, shifting later columns right.
// i may equal Count to append.
func (cs *Columns) Insert(i int, c *Column) error {
	if i < 0 || i > len(cs.columns) {
		return schemaerr.ColumnIndexOutOfRange(i, len(cs.columns)).In("Insert", "Columns")
	}
	if _, exists := cs.index[c.Name()]; exists {
		return schemaerr.DuplicateColumn(c.Name()).In("Insert", "Columns")
	}
	cs.columns = slices.Insert(cs.columns, i, c)
	cs.reindex()
	return nil
}

// Remove deletes the column resolved by name.
func (cs *Columns) Remove(name string) error {
	i, err := cs.GetIndexOfColumn(name)
	if err != nil {
		return err
	}
	cs.columns = slices.Delete(cs.columns, i, i+1)
	cs.reindex()
	return nil
}

// ByName returns the column resolved by name, as IndexOfColumn resolves it.
func (cs *Columns) ByName(name string) (*Column, bool) {
	i := cs.IndexOfColumn(name)
	if i < 0 {
		return nil, false
	}
	return cs.columns[i], true
}

// Get returns the column resolved by name or a COLUMN_NOT_FOUND error.
func (cs *Columns) Get(name string) (*Column, error) {
	i, err := cs.GetIndexOfColumn(name)
	if err != nil {
		return nil, err
	}
	return cs.columns[i], nil
}

// IndexOfName returns the position of the column with exactly this name, or -1.
func (cs *Columns) IndexOfName(name string) int {
	if i, ok := cs.index[name]; ok {
		return i
	}
	return -1
}

// Contains reports whether a column with exactly this name exists.
func (cs *Columns) Contains(name string) bool {
	return cs.IndexOfName(name) >= 0
}

// partialMatches returns the positions of the qualified columns whose
// trailing segments equal name.
func (cs *Columns) partialMatches(name string) []int {
	var matches []int
	for i, c := range cs.columns {
		if object.NamesEqual(c.Name(), name) {
			matches = append(matches, i)
		}
	}
	return matches
}

// IndexOfColumn resolves name by exact match first, then by a unique
// qualified-suffix match ("new.ID" for "ID"). It returns -1 when neither
// resolves or the suffix match is ambiguous.
func (cs *Columns) IndexOfColumn(name string) int {
	if i := cs.IndexOfName(name); i >= 0 {
		return i
	}
	if matches := cs.partialMatches(name); len(matches) == 1 {
		return matches[0]
	}
	return -1
}

// GetIndexOfColumn is IndexOfColumn reporting failures as typed errors.
func (cs *Columns) GetIndexOfColumn(name string) (int, error) {
	if i := cs.IndexOfName(name); i >= 0 {
		return i, nil
	}
	matches := cs.partialMatches(name)
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return -1, schemaerr.ColumnNotFound(name).In("GetIndexOfColumn", "Columns")
	default:
		candidates := make([]string, len(matches))
		for i, m := range matches {
			candidates[i] = cs.columns[m].Name()
		}
		return -1, schemaerr.AmbiguousColumn(name, candidates).In("GetIndexOfColumn", "Columns")
	}
}

// SetColumnType reassigns the type of the named column.
func (cs *Columns) SetColumnType(name string, dataType DataType) error {
	c, err := cs.Get(name)
	if err != nil {
		return err
	}
	c.SetDataType(dataType)
	return nil
}

// Copy returns a new container of copied columns, qualified by prefix.
func (cs *Columns) Copy(prefix string) *Columns {
	result := NewColumns()
	for _, c := range cs.columns {
		copied := c.Copy(prefix)
		result.index[copied.Name()] = len(result.columns)
		result.columns = append(result.columns, copied)
	}
	return result
}

// Is holds when both containers have the same count and every column here
// finds a same-named column in other whose type it Is. Order does not matter.
func (cs *Columns) Is(other *Columns) bool {
	if cs.Count() != other.Count() {
		return false
	}
	for _, c := range cs.columns {
		j := other.IndexOfName(c.Name())
		if j < 0 || !c.DataType().Is(other.columns[j].DataType()) {
			return false
		}
	}
	return true
}

func (cs *Columns) Compatible(other *Columns) bool {
	return cs.Is(other) || other.Is(cs)
}

// Equals holds when both containers have the same count and every column
// here finds a same-named column in other with an equal type.
func (cs *Columns) Equals(other *Columns) bool {
	if cs.Count() != other.Count() {
		return false
	}
	for _, c := range cs.columns {
		j := other.IndexOfName(c.Name())
		if j < 0 || !c.DataType().Equals(other.columns[j].DataType()) {
			return false
		}
	}
	return true
}

// Equivalent compares position by position: same count, and at each
// position the same name and equivalent types. Two equivalent containers
// describe identical physical rows.
func (cs *Columns) Equivalent(other *Columns) bool {
	if cs.Count() != other.Count() {
		return false
	}
	for i, c := range cs.columns {
		o := other.columns[i]
		if c.Name() != o.Name() || !c.DataType().Equivalent(o.DataType()) {
			return false
		}
	}
	return true
}

// IsSubsetOf reports whether every column name here appears in other.
// Types are ignored.
func (cs *Columns) IsSubsetOf(other *Columns) bool {
	for _, c := range cs.columns {
		if !other.Contains(c.Name()) {
			return false
		}
	}
	return true
}

func (cs *Columns) IsProperSubsetOf(other *Columns) bool {
	return cs.Count() < other.Count() && cs.IsSubsetOf(other)
}

func (cs *Columns) IsSupersetOf(other *Columns) bool {
	return other.IsSubsetOf(cs)
}

func (cs *Columns) IsProperSupersetOf(other *Columns) bool {
	return other.IsProperSubsetOf(cs)
}

// staticByteSize sums the footprints of the column types.
func (cs *Columns) staticByteSize() int {
	size := 0
	for _, c := range cs.columns {
		size += c.DataType().StaticByteSize()
	}
	return size
}

func (cs *Columns) emitSpecifiers(mode primitives.EmitMode) []statements.NamedTypeSpecifier {
	specs := make([]statements.NamedTypeSpecifier, len(cs.columns))
	for i, c := range cs.columns {
		specs[i] = statements.NamedTypeSpecifier{Name: c.Name(), Type: c.DataType().EmitSpecifier(mode)}
	}
	return specs
}

func (cs *Columns) includeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	for _, c := range cs.columns {
		if err := c.DataType().IncludeDependencies(session, source, target, mode); err != nil {
			return err
		}
	}
	return nil
}

// String renders "{ A : T, B : U }".
func (cs *Columns) String() string {
	if len(cs.columns) == 0 {
		return "{ }"
	}
	parts := make([]string, len(cs.columns))
	for i, c := range cs.columns {
		parts[i] = c.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
