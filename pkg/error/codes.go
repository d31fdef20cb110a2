package error

import (
	"errors"
	"fmt"
)

// Error codes raised by the type and catalog core.
const (
	CodeColumnNotFound              = "COLUMN_NOT_FOUND"
	CodeAmbiguousColumn             = "AMBIGUOUS_COLUMN"
	CodeDuplicateColumn             = "DUPLICATE_COLUMN"
	CodeColumnIndexOutOfRange       = "COLUMN_INDEX_OUT_OF_RANGE"
	CodeRegisteredClassNotFound     = "REGISTERED_CLASS_NOT_FOUND"
	CodeRightNotFound               = "RIGHT_NOT_FOUND"
	CodeReferenceContainerViolation = "REFERENCE_CONTAINER_VIOLATION"
	CodeEncryptedPayloadTooLong     = "ENCRYPTED_PAYLOAD_TOO_LONG"
	CodeObjectNotFound              = "OBJECT_NOT_FOUND"
	CodeDuplicateObject             = "DUPLICATE_OBJECT"
	CodeInvalidReference            = "INVALID_REFERENCE"
	CodeSignatureNotResolved        = "SIGNATURE_NOT_RESOLVED"
	CodeInvalidCatalogFile          = "INVALID_CATALOG_FILE"
	CodeInvalidConfig               = "INVALID_CONFIG"
)

// ColumnNotFound reports a failed name lookup in a column container.
func ColumnNotFound(name string) *SchemaError {
	return New(ErrCategoryUser, CodeColumnNotFound, "column not found").
		WithDetail(fmt.Sprintf("column '%s'", name))
}

// AmbiguousColumn reports an unqualified name matching several qualified columns.
func AmbiguousColumn(name string, candidates []string) *SchemaError {
	return New(ErrCategoryUser, CodeAmbiguousColumn, "ambiguous column reference").
		WithDetail(fmt.Sprintf("column '%s' matches %v", name, candidates)).
		WithHint("qualify the column name")
}

// DuplicateColumn reports an attempt to add a second column with the same name.
func DuplicateColumn(name string) *SchemaError {
	return New(ErrCategoryUser, CodeDuplicateColumn, "duplicate column name").
		WithDetail(fmt.Sprintf("column '%s'", name))
}

// ColumnIndexOutOfRange reports a position outside a column container.
func ColumnIndexOutOfRange(index, count int) *SchemaError {
	return New(ErrCategoryUser, CodeColumnIndexOutOfRange, "column index out of range").
		WithDetail(fmt.Sprintf("index %d, %d columns", index, count))
}

// RegisteredClassNotFound reports a lookup miss in the class registry.
func RegisteredClassNotFound(name string) *SchemaError {
	return New(ErrCategoryUser, CodeRegisteredClassNotFound, "registered class not found").
		WithDetail(fmt.Sprintf("class '%s'", name))
}

// RightNotFound reports a lookup miss in the rights registry.
func RightNotFound(name string) *SchemaError {
	return New(ErrCategoryUser, CodeRightNotFound, "right not found").
		WithDetail(fmt.Sprintf("right '%s'", name))
}

// ReferenceContainerViolation reports an object of the wrong kind inserted
// into a reference container.
func ReferenceContainerViolation(kind string) *SchemaError {
	return New(ErrCategoryIntegrity, CodeReferenceContainerViolation, "reference container can only contain references").
		WithDetail(fmt.Sprintf("got object of kind %s", kind))
}

// ObjectNotFound reports a catalog lookup miss by name or id.
func ObjectNotFound(what string) *SchemaError {
	return New(ErrCategoryUser, CodeObjectNotFound, "catalog object not found").
		WithDetail(what)
}

// DuplicateObject reports a second catalog object with an existing name or id.
func DuplicateObject(name string) *SchemaError {
	return New(ErrCategoryUser, CodeDuplicateObject, "catalog object already exists").
		WithDetail(fmt.Sprintf("object '%s'", name))
}

// InvalidReference reports malformed reference keys.
func InvalidReference(name, detail string) *SchemaError {
	return New(ErrCategoryUser, CodeInvalidReference, "invalid reference").
		WithDetail(fmt.Sprintf("reference '%s': %s", name, detail))
}

// SignatureNotResolved reports that no overload accepts the given arguments.
func SignatureNotResolved(operator, signature string) *SchemaError {
	return New(ErrCategoryUser, CodeSignatureNotResolved, "no matching signature").
		WithDetail(fmt.Sprintf("operator '%s' with arguments %s", operator, signature))
}

// InvalidCatalogFile reports a catalog definition document that cannot be loaded.
func InvalidCatalogFile(path, detail string) *SchemaError {
	return New(ErrCategoryUser, CodeInvalidCatalogFile, "invalid catalog file").
		WithDetail(fmt.Sprintf("%s: %s", path, detail))
}

// InvalidConfig reports a configuration value that fails validation.
func InvalidConfig(field, detail string) *SchemaError {
	return New(ErrCategoryUser, CodeInvalidConfig, "invalid configuration").
		WithDetail(fmt.Sprintf("%s: %s", field, detail))
}

// HasCode reports whether any SchemaError in err's chain carries the given code.
func HasCode(err error, code string) bool {
	var schemaErr *SchemaError
	for err != nil {
		if !errors.As(err, &schemaErr) {
			return false
		}
		if schemaErr.Code == code {
			return true
		}
		err = schemaErr.Cause
	}
	return false
}
