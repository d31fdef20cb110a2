package catalog

import (
	"slices"

	"schemacore/pkg/catalog/object"
	"schemacore/pkg/primitives"
	"schemacore/pkg/statements"
)

// Device is a storage device of a registered class. Devices are specific
// to the server that hosts them and are left out of remote emission.
type Device struct {
	object.BaseObject
	class      ClassDefinition
	attributes map[string]string
}

// NewDevice resolves className in classes.
func NewDevice(name, className string, classes *ClassRegistry) (*Device, error) {
	class, err := classes.Get(className)
	if err != nil {
		return nil, err
	}
	d := &Device{
		BaseObject: object.NewBaseObject(object.KindDevice, name),
		class:      class,
		attributes: make(map[string]string),
	}
	d.SetDeviceSpecific(true)
	return d, nil
}

func (d *Device) Class() ClassDefinition { return d.class }

func (d *Device) SetAttribute(name, value string) {
	d.attributes[name] = value
}

func (d *Device) Attribute(name string) (string, bool) {
	v, ok := d.attributes[name]
	return v, ok
}

func (d *Device) IncludeDependencies(session object.Session, source, target *object.Catalog, mode primitives.EmitMode) error {
	if target.Contains(d.Name()) {
		return nil
	}
	return object.Include(session, d, source, target, mode)
}

func (d *Device) EmitStatement(mode primitives.EmitMode) (statements.Statement, error) {
	names := make([]string, 0, len(d.attributes))
	for name := range d.attributes {
		names = append(names, name)
	}
	slices.Sort(names)

	attrs := make([]statements.Tag, len(names))
	for i, name := range names {
		attrs[i] = statements.Tag{Name: name, Value: d.attributes[name]}
	}
	return statements.NewCreateDeviceStatement(d.EmitName(), d.class.Name, attrs, d.EmitMetaData(mode)), nil
}

func (d *Device) EmitDropStatement(mode primitives.EmitMode) (statements.Statement, error) {
	return statements.NewDropStatement(statements.DropDevice, d.EmitName()), nil
}
