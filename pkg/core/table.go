package core

// Column is a declared column of a desired table.
// Identity is the column name; Type and Kind are both optional.
type Column struct {
	Name string
	// Type is a raw dialect type (e.g. "NUMERIC(10,2)"). Takes precedence over Kind.
	Type string
	// Kind is a logical type rendered through the dialect's type map.
	Kind ColumnKind
}

// HasType reports whether the column carries any type information.
func (c Column) HasType() bool {
	return c.Type != "" || c.Kind != KindUnspecified
}

// Table is the desired state of a single warehouse table.
//
// Tables are built and validated by pkg/schema; a *Table obtained from
// schema.Build always satisfies the column invariants.
type Table struct {
	Name      string
	Namespace string

	// Columns in declaration order, unique by name.
	Columns []Column

	// Partition is the partition column name, empty when absent.
	Partition string

	// Cluster lists the cluster columns in priority order, empty when absent.
	Cluster []string

	// PostActions are SQL statements appended after the create statement.
	PostActions []string

	// Select is an optional source query (create-table-as-select).
	Select string
}

// FullName returns the namespace-qualified table name.
func (t *Table) FullName() string {
	return Qualify(t.Name, t.Namespace)
}

// Ref returns the object reference for this table.
func (t *Table) Ref() ObjectRef {
	return ObjectRef{Namespace: t.Namespace, Name: t.Name}
}

// ColumnNames returns the declared column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// AllColumnsTyped reports whether every declared column has a type.
// A table with no columns has no typed columns.
func (t *Table) AllColumnsTyped() bool {
	if len(t.Columns) == 0 {
		return false
	}
	for _, c := range t.Columns {
		if !c.HasType() {
			return false
		}
	}
	return true
}

// Qualify composes namespace and object name.
// Identifiers are assumed to be sanitized by the caller.
func Qualify(name, namespace string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
