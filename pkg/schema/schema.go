// Package schema builds validated desired-state tables.
//
// Build is the only way the rest of ddlsync obtains a *core.Table: it
// normalizes the declared columns and enforces the column invariants
// eagerly, so an invalid table never exists.
package schema

import (
	"errors"
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/ddlsync/pkg/core"
)

// Option configures optional parts of a table.
type Option func(*core.Table)

// WithNamespace sets the namespace (schema or dataset) of the table.
func WithNamespace(ns string) Option {
	return func(t *core.Table) {
		t.Namespace = ns
	}
}

// WithPostActions sets statements executed after the create statement.
func WithPostActions(stmts ...string) Option {
	return func(t *core.Table) {
		t.PostActions = append([]string(nil), stmts...)
	}
}

// WithSelect sets the source query of a create-table-as-select.
func WithSelect(query string) Option {
	return func(t *core.Table) {
		t.Select = strings.TrimSpace(query)
	}
}

// BuildNames is Build for bare column names.
func BuildNames(name string, columns []string, partition string, cluster []string, opts ...Option) (*core.Table, error) {
	cols := make([]core.Column, len(columns))
	for i, c := range columns {
		cols[i] = core.Column{Name: c}
	}
	return Build(name, cols, partition, cluster, opts...)
}

// Build validates a table definition and returns the desired-state table.
//
// Every violated invariant is reported, each with the full list of offending
// names. Multiple failures are combined with errors.Join.
func Build(name string, columns []core.Column, partition string, cluster []string, opts ...Option) (*core.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &core.InvalidTableError{Reason: "table name is required"}
	}

	var errs []error
	for _, c := range columns {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, &core.InvalidTableError{Table: name, Reason: "column with empty name"})
			break
		}
	}
	if dupes := duplicateNames(columns); len(dupes) > 0 {
		errs = append(errs, &core.DuplicateColumnError{Table: name, Names: dupes})
	}
	if missing := missingClusterColumns(columns, cluster); len(missing) > 0 {
		errs = append(errs, &core.ClusterColumnMismatchError{Table: name, Missing: missing})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	t := &core.Table{
		Name:      name,
		Columns:   slices.Clone(columns),
		Partition: partition,
		Cluster:   slices.Clone(cluster),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// duplicateNames returns every name occurring more than once, sorted.
func duplicateNames(columns []core.Column) []string {
	counts := make(map[string]int, len(columns))
	for _, c := range columns {
		counts[c.Name]++
	}
	var dupes []string
	for n, cnt := range counts {
		if cnt > 1 {
			dupes = append(dupes, n)
		}
	}
	sort.Strings(dupes)
	return dupes
}

// missingClusterColumns returns cluster columns absent from columns, in
// cluster order. Tables without declared columns are not checked.
func missingClusterColumns(columns []core.Column, cluster []string) []string {
	if len(cluster) == 0 || len(columns) == 0 {
		return nil
	}
	declared := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		declared[c.Name] = struct{}{}
	}
	var missing []string
	seen := make(map[string]struct{})
	for _, c := range cluster {
		if _, ok := declared[c]; ok {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		missing = append(missing, c)
	}
	return missing
}
