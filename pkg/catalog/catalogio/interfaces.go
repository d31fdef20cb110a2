package catalogio

import "schemacore/pkg/catalog/object"

// CatalogReader produces a populated catalog from some definition source.
type CatalogReader interface {
	// ReadCatalog decodes the source and builds the catalog. The returned
	// catalog is owned by the caller.
	ReadCatalog() (*object.Catalog, error)
}

// ObjectResolver looks catalog objects up while a document is loaded.
// Loading needs nothing else from the catalog.
type ObjectResolver interface {
	Resolve(name string) (object.Object, error)
}

var (
	_ CatalogReader  = (*FileReader)(nil)
	_ ObjectResolver = (*object.Catalog)(nil)
)
