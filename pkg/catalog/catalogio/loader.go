// Package catalogio loads catalog definition documents written in YAML
// into an object catalog seeded with the system library.
package catalogio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"schemacore/pkg/catalog"
	"schemacore/pkg/catalog/object"
	schemaerr "schemacore/pkg/error"
	"schemacore/pkg/logging"
	"schemacore/pkg/primitives"
	"schemacore/pkg/signature"
	"schemacore/pkg/statements"
	"schemacore/pkg/types"
)

// LoadSessionID is the session session-scoped objects of a document belong to.
const LoadSessionID primitives.SessionID = 1

// Loader builds catalogs from documents against a fixed set of registries.
type Loader struct {
	registries catalog.Registries
	logger     *slog.Logger
}

func NewLoader(registries catalog.Registries) *Loader {
	return &Loader{
		registries: registries,
		logger:     logging.WithComponent("catalogio"),
	}
}

// loadState is the per-document state of a load.
type loadState struct {
	source     string
	system     *types.SystemTypes
	catalog    *object.Catalog
	references map[string]*catalog.Reference
}

// Decode parses a YAML document. Unknown keys are rejected.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads and loads the document at path.
func (l *Loader) LoadFile(path string) (*object.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, schemaerr.Wrap(err, schemaerr.CodeInvalidCatalogFile, "LoadFile", "catalogio")
	}
	return l.Load(path, bytes.NewReader(data))
}

// Load decodes a document from r and builds its catalog. source names the
// document in errors.
func (l *Loader) Load(source string, r io.Reader) (*object.Catalog, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, schemaerr.InvalidCatalogFile(source, err.Error()).In("Load", "catalogio")
	}
	return l.Build(source, doc)
}

// Build creates a catalog holding the system types and every object of doc.
func (l *Loader) Build(source string, doc *Document) (*object.Catalog, error) {
	st := &loadState{
		source:     source,
		system:     types.NewSystemTypes(),
		catalog:    object.NewCatalog(),
		references: make(map[string]*catalog.Reference),
	}
	if err := st.system.Register(st.catalog); err != nil {
		return nil, err
	}

	steps := []struct {
		name string
		run  func(*loadState, *Document) error
	}{
		{"libraries", l.loadLibraries},
		{"types", l.loadTypes},
		{"tables", l.loadTables},
		{"views", l.loadViews},
		{"references", l.loadReferences},
		{"operators", l.loadOperators},
		{"devices", l.loadDevices},
	}
	for _, step := range steps {
		if err := step.run(st, doc); err != nil {
			return nil, st.fail(step.name, err)
		}
	}

	l.logger.Info("loaded catalog",
		"source", source,
		"objects", st.catalog.Len(),
		"libraries", len(st.catalog.Libraries()))
	return st.catalog, nil
}

// fail keeps typed core errors intact and reports everything else as an
// invalid document.
func (st *loadState) fail(section string, err error) error {
	var schemaErr *schemaerr.SchemaError
	if errors.As(err, &schemaErr) {
		return fmt.Errorf("%s: %s: %w", st.source, section, err)
	}
	return schemaerr.InvalidCatalogFile(st.source, fmt.Sprintf("%s: %v", section, err)).In("Build", "catalogio")
}

func (l *Loader) loadLibraries(st *loadState, doc *Document) error {
	for _, def := range doc.Libraries {
		if def.Name == "" {
			return fmt.Errorf("library name cannot be empty")
		}
		if strings.EqualFold(def.Name, object.SystemLibraryName) {
			return fmt.Errorf("library %s is reserved", def.Name)
		}
		for _, req := range def.Requisites {
			if _, ok := st.catalog.LibraryByName(req); !ok {
				return fmt.Errorf("library %s requires unknown library %s", def.Name, req)
			}
		}
		st.catalog.AddLibrary(object.Library{Name: def.Name, Requisites: def.Requisites})
	}
	return nil
}

// applyFlags sets the library and emission flags of a freshly built object.
func (st *loadState) applyFlags(obj interface {
	SetLibrary(string)
	SetGenerated(bool)
	SetATObject(bool)
	SetSession(primitives.SessionID, string)
}, name string, flags ObjectFlags) error {
	library := flags.Library
	if library == "" {
		library = object.QualifierOf(name)
	}
	if library != "" {
		if _, ok := st.catalog.LibraryByName(library); !ok {
			return fmt.Errorf("object %s belongs to unknown library %s", name, library)
		}
	}
	obj.SetLibrary(library)
	if flags.Generated {
		obj.SetGenerated(true)
	}
	if flags.AT {
		obj.SetATObject(true)
	}
	if flags.Session != "" {
		obj.SetSession(LoadSessionID, flags.Session)
	}
	return nil
}

// objectName is the catalog name of a definition. Session objects declared
// without a global name get a synthesized one.
func objectName(name string, flags ObjectFlags) (string, error) {
	if name != "" {
		return name, nil
	}
	if flags.Session != "" {
		return object.SynthesizeGlobalName(flags.Session), nil
	}
	return "", fmt.Errorf("object name cannot be empty")
}

// resolveType parses a type reference: a family name (generic, scalar,
// row, table, list), list(<type>), or the name of a scalar type.
func (st *loadState) resolveType(ref string) (types.DataType, error) {
	ref = strings.TrimSpace(ref)
	switch strings.ToLower(ref) {
	case "":
		return nil, fmt.Errorf("type reference cannot be empty")
	case "generic":
		return st.system.Generic, nil
	case "scalar":
		return st.system.Scalar, nil
	case "row":
		return st.system.Row, nil
	case "table":
		return st.system.Table, nil
	case "list":
		return st.system.List, nil
	}

	if inner, ok := strings.CutPrefix(ref, "list("); ok && strings.HasSuffix(inner, ")") {
		element, err := st.resolveType(strings.TrimSuffix(inner, ")"))
		if err != nil {
			return nil, err
		}
		return types.NewListType(element), nil
	}

	return st.resolveScalar(ref)
}

func (st *loadState) resolveScalar(name string) (*types.ScalarType, error) {
	obj, err := st.catalog.Resolve(name)
	if err != nil {
		return nil, err
	}
	scalar, ok := obj.(*types.ScalarType)
	if !ok {
		return nil, fmt.Errorf("%s is a %s, not a scalar type", name, obj.Kind())
	}
	return scalar, nil
}

func (st *loadState) resolveTable(name string) (*catalog.TableVar, error) {
	obj, err := st.catalog.Resolve(name)
	if err != nil {
		return nil, err
	}
	tv, ok := obj.(*catalog.TableVar)
	if !ok {
		return nil, fmt.Errorf("%s is a %s, not a table variable", name, obj.Kind())
	}
	return tv, nil
}

func (st *loadState) add(obj object.Object) error {
	if err := st.catalog.Add(obj); err != nil {
		return err
	}
	logging.WithObject(obj.ID(), obj.Name()).Debug("loaded object", "kind", obj.Kind().String())
	return nil
}

func (l *Loader) loadTypes(st *loadState, doc *Document) error {
	for _, def := range doc.Types {
		name, err := objectName(def.Name, def.ObjectFlags)
		if err != nil {
			return err
		}

		parents := make([]*types.ScalarType, 0, len(def.Like))
		size := def.Size
		for _, like := range def.Like {
			parent, err := st.resolveScalar(like)
			if err != nil {
				return fmt.Errorf("type %s: %w", name, err)
			}
			parents = append(parents, parent)
			if def.Size == 0 && parent.StaticByteSize() > size {
				size = parent.StaticByteSize()
			}
		}
		if size == 0 {
			size = types.HandleByteSize
		}

		t := types.NewScalarType(name, size)
		t.SetDisposable(def.Disposable)
		for _, p := range parents {
			t.AddParent(p)
		}
		if err := st.applyFlags(t, name, def.ObjectFlags); err != nil {
			return err
		}
		if err := st.add(t); err != nil {
			return err
		}

		for _, rep := range def.Representations {
			props := make([]catalog.RepresentationProperty, 0, len(rep.Properties))
			for _, p := range rep.Properties {
				pt, err := st.resolveType(p.Type)
				if err != nil {
					return fmt.Errorf("representation %s of %s: %w", rep.Name, name, err)
				}
				props = append(props, catalog.RepresentationProperty{Name: p.Name, Type: pt})
			}
			if err := st.add(catalog.NewRepresentation(t, rep.Name, props...)); err != nil {
				return err
			}
		}
		if def.Default != "" {
			if err := st.add(catalog.NewScalarTypeDefault(t, statements.RawExpression(def.Default))); err != nil {
				return err
			}
		}
		for _, sp := range def.Specials {
			if err := st.add(catalog.NewSpecial(t, sp.Name, statements.RawExpression(sp.Value))); err != nil {
				return err
			}
		}
	}
	return nil
}

func (st *loadState) buildColumns(owner string, defs []ColumnDef) (*types.Columns, error) {
	columns := types.NewColumns()
	for _, c := range defs {
		ct, err := st.resolveType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %s of %s: %w", c.Name, owner, err)
		}
		if err := columns.Add(types.NewColumn(c.Name, ct)); err != nil {
			return nil, err
		}
	}
	return columns, nil
}

func (st *loadState) addColumnDefaults(tv *catalog.TableVar, defs []ColumnDef) error {
	for _, c := range defs {
		if c.Default == "" {
			continue
		}
		if err := st.add(catalog.NewColumnDefault(tv, c.Name, statements.RawExpression(c.Default))); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadTables(st *loadState, doc *Document) error {
	for _, def := range doc.Tables {
		name, err := objectName(def.Name, def.ObjectFlags)
		if err != nil {
			return err
		}
		columns, err := st.buildColumns(name, def.Columns)
		if err != nil {
			return err
		}

		tv := catalog.NewBaseTableVar(name, types.NewTableType(columns))
		if err := st.applyFlags(tv, name, def.ObjectFlags); err != nil {
			return err
		}
		for _, c := range def.Columns {
			if c.Nilable {
				if err := tv.SetNilable(c.Name, true); err != nil {
					return err
				}
			}
		}
		for _, key := range def.Keys {
			if err := tv.AddKey(key...); err != nil {
				return err
			}
		}
		if err := st.add(tv); err != nil {
			return err
		}

		if err := st.addColumnDefaults(tv, def.Columns); err != nil {
			return err
		}
		for _, c := range def.Constraints {
			if err := st.add(catalog.NewConstraint(tv, c.Name, statements.RawExpression(c.Expression))); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Loader) loadViews(st *loadState, doc *Document) error {
	for _, def := range doc.Views {
		name, err := objectName(def.Name, def.ObjectFlags)
		if err != nil {
			return err
		}
		if def.Expression == "" {
			return fmt.Errorf("view %s has no expression", name)
		}
		columns, err := st.buildColumns(name, def.Columns)
		if err != nil {
			return err
		}

		tv := catalog.NewDerivedTableVar(name, types.NewTableType(columns), statements.RawExpression(def.Expression))
		if err := st.applyFlags(tv, name, def.ObjectFlags); err != nil {
			return err
		}
		if err := st.add(tv); err != nil {
			return err
		}
	}
	return nil
}

func parseAction(def ActionDef) (catalog.ReferenceAction, error) {
	action, ok := statements.ParseReferenceAction(strings.ToLower(def.Action))
	if !ok {
		return catalog.ReferenceAction{}, fmt.Errorf("unknown reference action %q", def.Action)
	}
	result := catalog.ReferenceAction{Action: action}
	for _, e := range def.Expressions {
		result.Expressions = append(result.Expressions, statements.RawExpression(e))
	}
	return result, nil
}

func (l *Loader) loadReferences(st *loadState, doc *Document) error {
	for _, def := range doc.References {
		name, err := objectName(def.Name, def.ObjectFlags)
		if err != nil {
			return err
		}
		source, err := st.resolveTable(def.Source.Table)
		if err != nil {
			return fmt.Errorf("reference %s: %w", name, err)
		}
		target, err := st.resolveTable(def.Target.Table)
		if err != nil {
			return fmt.Errorf("reference %s: %w", name, err)
		}
		sourceKey := catalog.NewJoinKey(def.Source.Columns...)
		targetKey := catalog.NewJoinKey(def.Target.Columns...)

		var r *catalog.Reference
		if def.DerivedFrom != "" {
			parent, ok := st.references[object.EnsureUnrooted(def.DerivedFrom)]
			if !ok {
				return fmt.Errorf("reference %s is derived from unknown reference %s", name, def.DerivedFrom)
			}
			r, err = parent.Derive(name, source, sourceKey, target, targetKey)
		} else {
			r, err = catalog.NewReference(name, source, sourceKey, target, targetKey)
		}
		if err != nil {
			return err
		}

		if def.Enforced != nil {
			r.SetEnforced(*def.Enforced)
		}
		r.SetExcluded(def.Excluded)
		update, err := parseAction(def.Update)
		if err != nil {
			return fmt.Errorf("reference %s: %w", name, err)
		}
		if err := r.SetUpdateAction(update); err != nil {
			return err
		}
		del, err := parseAction(def.Delete)
		if err != nil {
			return fmt.Errorf("reference %s: %w", name, err)
		}
		if err := r.SetDeleteAction(del); err != nil {
			return err
		}

		if err := st.applyFlags(r, name, def.ObjectFlags); err != nil {
			return err
		}
		if err := st.add(r); err != nil {
			return err
		}
		st.references[object.EnsureUnrooted(name)] = r
	}
	return nil
}

func (l *Loader) loadOperators(st *loadState, doc *Document) error {
	for _, def := range doc.Operators {
		if def.Name == "" {
			return fmt.Errorf("operator name cannot be empty")
		}
		operands := make([]signature.Operand, 0, len(def.Operands))
		for _, od := range def.Operands {
			ot, err := st.resolveType(od.Type)
			if err != nil {
				return fmt.Errorf("operand %s of %s: %w", od.Name, def.Name, err)
			}
			modifier, ok := statements.ParseModifier(strings.ToLower(od.Modifier))
			if !ok {
				return fmt.Errorf("operand %s of %s: unknown modifier %q", od.Name, def.Name, od.Modifier)
			}
			operands = append(operands, signature.Operand{Name: od.Name, Type: ot, Modifier: modifier})
		}

		var returnType types.DataType
		if def.Returns != "" {
			rt, err := st.resolveType(def.Returns)
			if err != nil {
				return fmt.Errorf("return type of %s: %w", def.Name, err)
			}
			returnType = rt
		}

		op := catalog.NewOperator(def.Name, operands, returnType, statements.RawExpression(def.Body))
		if def.Right != "" {
			if err := op.SetRequiredRight(l.registries.Rights, def.Right); err != nil {
				return err
			}
		}
		if err := st.applyFlags(op, def.Name, def.ObjectFlags); err != nil {
			return err
		}
		if err := st.add(op); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) loadDevices(st *loadState, doc *Document) error {
	for _, def := range doc.Devices {
		if def.Name == "" {
			return fmt.Errorf("device name cannot be empty")
		}
		d, err := catalog.NewDevice(def.Name, def.Class, l.registries.Classes)
		if err != nil {
			return err
		}
		for k, v := range def.Attributes {
			d.SetAttribute(k, v)
		}
		if err := st.applyFlags(d, def.Name, def.ObjectFlags); err != nil {
			return err
		}
		if err := st.add(d); err != nil {
			return err
		}
	}
	return nil
}

// FileReader reads one catalog definition file.
type FileReader struct {
	Path   string
	Loader *Loader
}

func (r *FileReader) ReadCatalog() (*object.Catalog, error) {
	return r.Loader.LoadFile(r.Path)
}
