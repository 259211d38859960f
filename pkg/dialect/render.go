package dialect

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/leapstack-labs/ddlsync/pkg/core"
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// CreateColumn is a column as seen by the create template.
type CreateColumn struct {
	Name string
	Type string // empty when the column is untyped
}

// CreateInput holds everything the create template may reference.
type CreateInput struct {
	TableName string
	FullName  string

	// ViewExists and TableExists describe the catalog at the moment the
	// create statement runs, i.e. after any drop the plan emits.
	ViewExists  bool
	TableExists bool

	Select  string
	Replace bool

	Capabilities core.CapabilitySet

	Columns         []CreateColumn
	AllColumnsTyped bool
	Partition       string
	Cluster         []string
}

// Has reports whether the named capability is declared.
// An unknown name aborts rendering.
func (in CreateInput) Has(name string) (bool, error) {
	return in.Capabilities.HasNamed(name)
}

// Cascade returns the drop suffix required by the dialect.
func (in CreateInput) Cascade() string {
	if in.Capabilities.Has(core.NeedsCascadeDrop) {
		return " CASCADE"
	}
	return ""
}

// InlineColumns reports whether the column list is rendered in the create
// statement: every column must be typed, and a select-sourced create may
// only carry column DDL when the dialect allows it.
func (in CreateInput) InlineColumns() bool {
	if !in.AllColumnsTyped {
		return false
	}
	if in.Select != "" && in.Capabilities.Has(core.CannotSpecifyDDLInSelect) {
		return false
	}
	return true
}

// RenderedCreate is the output of the create template.
type RenderedCreate struct {
	// Pre holds statements that must run before Create (explicit pre-drops
	// for dialects that cannot replace in place).
	Pre    []string
	Create string
}

// NewCreateInput prepares the template input for a table.
func (d *Dialect) NewCreateInput(t *core.Table, fullName string, current core.ObjectState, replace bool) (CreateInput, error) {
	in := CreateInput{
		TableName:    t.Name,
		FullName:     fullName,
		ViewExists:   current.Kind == core.ObjectView,
		TableExists:  current.Kind == core.ObjectTable,
		Select:       t.Select,
		Replace:      replace,
		Capabilities: d.Capabilities,
		Partition:    t.Partition,
		Cluster:      t.Cluster,
	}

	typed := t.AllColumnsTyped()
	in.Columns = make([]CreateColumn, len(t.Columns))
	for i, c := range t.Columns {
		typ, ok := d.ColumnType(c)
		if !ok && c.HasType() {
			return CreateInput{}, fmt.Errorf("table %s: column %s: dialect %s has no type for kind %s",
				t.Name, c.Name, d.Name, c.Kind)
		}
		in.Columns[i] = CreateColumn{Name: c.Name, Type: typ}
	}
	in.AllColumnsTyped = typed
	return in, nil
}

// RenderCreate executes the create template.
func (d *Dialect) RenderCreate(in CreateInput) (*RenderedCreate, error) {
	var pre, create bytes.Buffer
	if err := d.create.ExecuteTemplate(&pre, "pre", in); err != nil {
		return nil, fmt.Errorf("failed to render pre-create statements for %s: %w", in.FullName, err)
	}
	if err := d.create.ExecuteTemplate(&create, "create", in); err != nil {
		return nil, fmt.Errorf("failed to render create statement for %s: %w", in.FullName, err)
	}

	out := &RenderedCreate{Create: strings.TrimSpace(create.String())}
	for _, line := range strings.Split(pre.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out.Pre = append(out.Pre, line)
		}
	}
	return out, nil
}

// CheckTable verifies that the dialect can create a table: layout features
// must be declared, every logical kind mapped, and a table without a select
// must type all of its columns.
func CheckTable(d *Dialect, t *core.Table) error {
	if t.Partition != "" && !d.Capabilities.Has(core.SupportsPartition) {
		return &core.UnsupportedFeatureError{Table: t.Name, Dialect: d.Name, Feature: core.SupportsPartition}
	}
	if len(t.Cluster) > 0 && !d.Capabilities.Has(core.SupportsCluster) {
		return &core.UnsupportedFeatureError{Table: t.Name, Dialect: d.Name, Feature: core.SupportsCluster}
	}
	for _, c := range t.Columns {
		if _, ok := d.ColumnType(c); !ok && c.HasType() {
			return &core.InvalidTableError{
				Table:  t.Name,
				Reason: fmt.Sprintf("column %s: dialect %s has no type for kind %s", c.Name, d.Name, c.Kind),
			}
		}
	}
	if t.Select == "" && !t.AllColumnsTyped() {
		return &core.InvalidTableError{Table: t.Name, Reason: "every column needs a type when no select is given"}
	}
	return nil
}
