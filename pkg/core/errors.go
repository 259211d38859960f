package core

import (
	"fmt"
	"strings"
)

// ValidationError is implemented by every error raised while building a Table.
type ValidationError interface {
	error
	// TableName returns the table whose definition is invalid.
	TableName() string
}

// InvalidTableError reports a table definition that cannot be built at all.
type InvalidTableError struct {
	Table  string
	Reason string
}

func (e *InvalidTableError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("invalid table definition: %s", e.Reason)
	}
	return fmt.Sprintf("invalid table %s: %s", e.Table, e.Reason)
}

// TableName implements ValidationError.
func (e *InvalidTableError) TableName() string { return e.Table }

// DuplicateColumnError lists every column name declared more than once.
type DuplicateColumnError struct {
	Table string
	Names []string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("table %s: duplicate columns: %s", e.Table, strings.Join(e.Names, ","))
}

// TableName implements ValidationError.
func (e *DuplicateColumnError) TableName() string { return e.Table }

// ClusterColumnMismatchError lists cluster columns not among the declared columns.
type ClusterColumnMismatchError struct {
	Table   string
	Missing []string
}

func (e *ClusterColumnMismatchError) Error() string {
	return fmt.Sprintf("table %s: cluster contains columns not specified in the ddl: %s",
		e.Table, strings.Join(e.Missing, ","))
}

// TableName implements ValidationError.
func (e *ClusterColumnMismatchError) TableName() string { return e.Table }

// UnsupportedFeatureError reports a table using a layout feature the target
// dialect cannot express.
type UnsupportedFeatureError struct {
	Table   string
	Dialect string
	Feature Capability
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("table %s: dialect %s does not declare %s", e.Table, e.Dialect, e.Feature)
}

// TableName implements ValidationError.
func (e *UnsupportedFeatureError) TableName() string { return e.Table }

// UnsupportedQualificationError is returned when an introspection request
// names an object with a catalog-level qualifier.
type UnsupportedQualificationError struct {
	Ref ObjectRef
}

func (e *UnsupportedQualificationError) Error() string {
	return fmt.Sprintf("3 level db objects are not supported: %s", e.Ref)
}

// CatalogQueryError wraps a failure of the catalog query collaborator.
// Unwrap returns the original error unmodified.
type CatalogQueryError struct {
	Namespace string
	Err       error
}

func (e *CatalogQueryError) Error() string {
	ns := e.Namespace
	if ns == "" {
		ns = "<default>"
	}
	return fmt.Sprintf("catalog query for namespace %s failed: %v", ns, e.Err)
}

func (e *CatalogQueryError) Unwrap() error { return e.Err }

// UnknownCapabilityError is returned for a capability name outside the known set.
type UnknownCapabilityError struct {
	Name string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown capability %q", e.Name)
}
