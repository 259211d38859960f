// Package dialect provides SQL dialect configuration and DDL rendering.
//
// This package contains the public contract for dialect definitions used by
// the reconciler and the introspector. Concrete dialects are registered from
// pkg/dialects/*/ packages. A dialect differs from another only by data:
// its capability set, its type map, its catalog query and, rarely, its
// create template. Rendering never branches on the dialect name.
package dialect

import (
	"embed"
	"fmt"
	"io"
	"maps"
	"strconv"
	"strings"
	"text/template"

	"github.com/leapstack-labs/ddlsync/pkg/core"
)

//go:embed templates/*.sql.tmpl
var templateFS embed.FS

// defaultCreateTemplate is shared by every dialect that does not override it.
var defaultCreateTemplate = mustReadTemplate("templates/create_table.sql.tmpl")

func mustReadTemplate(name string) string {
	b, err := templateFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("dialect: missing embedded template %s: %v", name, err))
	}
	return string(b)
}

// CatalogQueryFunc builds the catalog query for one namespace.
//
// The query must return one row per (object, column) with the columns
// object_name, object_type, column_name, is_partition, cluster_ordinal,
// ordered by object_name and cluster_ordinal.
type CatalogQueryFunc func(d *Dialect, namespace string, objects []string) (query string, args []any)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	core.DialectConfig

	create       *template.Template
	catalogQuery CatalogQueryFunc
}

// Config returns the static configuration of the dialect.
func (d *Dialect) Config() *core.DialectConfig {
	return &d.DialectConfig
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// WithCapabilities returns a copy of the dialect with a different capability set.
func (d *Dialect) WithCapabilities(caps core.CapabilitySet) *Dialect {
	cp := *d
	cp.Capabilities = caps
	return &cp
}

// ColumnType returns the SQL type rendered for a column. An explicit Type
// wins over the logical Kind. The second result is false for untyped columns
// and kinds the dialect does not map.
func (d *Dialect) ColumnType(c core.Column) (string, bool) {
	if c.Type != "" {
		return c.Type, true
	}
	if c.Kind == core.KindUnspecified {
		return "", false
	}
	t, ok := d.Types[c.Kind]
	return t, ok
}

// CatalogQuery returns the catalog query for a namespace.
func (d *Dialect) CatalogQuery(namespace string, objects []string) (string, []any) {
	if d.catalogQuery == nil {
		return defaultCatalogQuery(d, namespace, objects)
	}
	return d.catalogQuery(d, namespace, objects)
}

// QuoteIdentifier quotes a single identifier with the dialect's quoting
// rules, escaping embedded end quotes.
func (d *Dialect) QuoteIdentifier(name string) string {
	ids := d.Identifiers
	return ids.Quote + strings.ReplaceAll(name, ids.QuoteEnd, ids.Escape) + ids.QuoteEnd
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style
// and "@p1", "@p2" for PlaceholderNamed.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case core.PlaceholderNamed:
		return "@p" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// Placeholders returns n comma-separated placeholders starting at index start.
func (d *Dialect) Placeholders(start, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = d.FormatPlaceholder(start + i)
	}
	return strings.Join(ph, ", ")
}

// defaultCatalogQuery reads information_schema without partition or cluster
// metadata: engines without physical layout options report neither.
func defaultCatalogQuery(d *Dialect, namespace string, objects []string) (string, []any) {
	//nolint:gosec // placeholders come from the dialect
	query := fmt.Sprintf(`
		SELECT
			t.table_name AS object_name,
			t.table_type AS object_type,
			c.column_name AS column_name,
			FALSE AS is_partition,
			CAST(NULL AS INTEGER) AS cluster_ordinal
		FROM information_schema.tables t
		JOIN information_schema.columns c
		  ON c.table_schema = t.table_schema AND c.table_name = t.table_name
		WHERE t.table_schema = %s AND t.table_name IN (%s)
		ORDER BY t.table_name, c.ordinal_position
	`, d.FormatPlaceholder(1), d.Placeholders(2, len(objects)))

	args := make([]any, 0, len(objects)+1)
	args = append(args, namespace)
	for _, o := range objects {
		args = append(args, o)
	}
	return query, args
}

// =============================================================================
// Builder
// =============================================================================

// Builder assembles a Dialect.
type Builder struct {
	cfg          core.DialectConfig
	createTmpl   string
	catalogQuery CatalogQueryFunc
}

// NewDialect starts a builder for a dialect with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		cfg: core.DialectConfig{
			Name:        name,
			Identifiers: core.IdentifierConfig{Quote: `"`, QuoteEnd: `"`, Escape: `""`},
			Types:       map[core.ColumnKind]string{},
		},
		createTmpl: defaultCreateTemplate,
	}
}

// DefaultSchema sets the schema used when none is given.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.cfg.DefaultSchema = schema
	return b
}

// Identifiers sets identifier quoting rules.
func (b *Builder) Identifiers(quote, quoteEnd, escape string) *Builder {
	b.cfg.Identifiers = core.IdentifierConfig{Quote: quote, QuoteEnd: quoteEnd, Escape: escape}
	return b
}

// PlaceholderStyle sets the parameter placeholder style.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.cfg.Placeholder = style
	return b
}

// Capabilities declares the dialect's capabilities.
func (b *Builder) Capabilities(caps ...core.Capability) *Builder {
	b.cfg.Capabilities = core.NewCapabilitySet(caps...)
	return b
}

// Types maps logical kinds to SQL types.
func (b *Builder) Types(types map[core.ColumnKind]string) *Builder {
	maps.Copy(b.cfg.Types, types)
	return b
}

// CreateTemplate overrides the shared create template.
func (b *Builder) CreateTemplate(tmpl string) *Builder {
	b.createTmpl = tmpl
	return b
}

// CatalogQuery sets the catalog query builder.
func (b *Builder) CatalogQuery(fn CatalogQueryFunc) *Builder {
	b.catalogQuery = fn
	return b
}

// Build parses the create template and returns the dialect.
// A template that fails to parse, or that references an unknown capability
// on any branch, is a programming error and panics.
func (b *Builder) Build() *Dialect {
	tmpl := template.Must(template.New(b.cfg.Name).
		Option("missingkey=error").
		Funcs(templateFuncs).
		Parse(b.createTmpl))
	if tmpl.Lookup("pre") == nil || tmpl.Lookup("create") == nil {
		panic(fmt.Sprintf("dialect %s: create template must define \"pre\" and \"create\"", b.cfg.Name))
	}
	if err := dryRun(tmpl); err != nil {
		panic(fmt.Sprintf("dialect %s: %v", b.cfg.Name, err))
	}
	return &Dialect{
		DialectConfig: b.cfg,
		create:        tmpl,
		catalogQuery:  b.catalogQuery,
	}
}

// dryRun executes both template blocks against an empty input and against
// one with every flag set, so that capability names are checked on each
// branch before the dialect is registered.
func dryRun(tmpl *template.Template) error {
	inputs := []CreateInput{
		{},
		{
			TableName:       "t",
			FullName:        "ns.t",
			ViewExists:      true,
			TableExists:     true,
			Select:          "SELECT 1",
			Replace:         true,
			Columns:         []CreateColumn{{Name: "c", Type: "INT"}},
			AllColumnsTyped: true,
			Partition:       "c",
			Cluster:         []string{"c"},
		},
	}
	for _, in := range inputs {
		for _, name := range []string{"pre", "create"} {
			if err := tmpl.ExecuteTemplate(io.Discard, name, in); err != nil {
				return fmt.Errorf("create template %q: %w", name, err)
			}
		}
	}
	return nil
}
