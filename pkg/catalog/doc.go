// Package catalog implements the schema objects stored in an
// object.Catalog: table variables and their keys, references between
// them, the objects owned by scalar types and table variables, operators,
// devices, and the class and rights registries objects are checked
// against.
package catalog
