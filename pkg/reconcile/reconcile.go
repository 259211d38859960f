// Package reconcile computes the DDL that brings a warehouse table from its
// current catalog state to its desired definition.
//
// Planning is pure: a plan depends only on the desired table, the current
// ObjectState of that table and the dialect. Executing the plan is the
// caller's job.
package reconcile

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
)

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for plan decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCapabilities overrides the capability set declared by the dialect.
func WithCapabilities(caps core.CapabilitySet) Option {
	return func(r *Reconciler) {
		r.dialect = r.dialect.WithCapabilities(caps)
	}
}

// Reconciler plans table DDL for one dialect.
type Reconciler struct {
	dialect *dialect.Dialect
	logger  *slog.Logger
}

// New creates a Reconciler for the given dialect.
func New(d *dialect.Dialect, opts ...Option) *Reconciler {
	r := &Reconciler{
		dialect: d,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dialect returns the dialect the reconciler renders for.
func (r *Reconciler) Dialect() *dialect.Dialect {
	return r.dialect
}

// Capabilities returns the effective capability set.
func (r *Reconciler) Capabilities() core.CapabilitySet {
	return r.dialect.Capabilities
}

// Plan computes the reconciliation plan for a table.
//
// When the physical layout (partition and cluster columns) is unchanged the
// plan only recreates the table. Otherwise the existing object is dropped
// first: as a table when the catalog reports a table, as a view in every
// other case, including objects the catalog does not know.
//
// The only error source is template rendering.
func (r *Reconciler) Plan(desired *core.Table, current core.ObjectState) (*core.Plan, error) {
	fullName := desired.FullName()
	plan := &core.Plan{Table: fullName, Action: DecideDrop(desired, current)}

	switch plan.Action {
	case core.DropTable:
		plan.DropStatement = r.dropStatement("TABLE", fullName)
	case core.DropView:
		plan.DropStatement = r.dropStatement("VIEW", fullName)
	}

	// The create sees the catalog as it stands once the drop has run.
	afterDrop := current
	if plan.HasDrop() {
		afterDrop = core.ObjectState{Kind: core.ObjectUnknown}
	}

	in, err := r.dialect.NewCreateInput(desired, fullName, afterDrop, true)
	if err != nil {
		return nil, err
	}
	rendered, err := r.dialect.RenderCreate(in)
	if err != nil {
		return nil, err
	}

	plan.PreStatements = rendered.Pre
	plan.CreateStatement = rendered.Create
	plan.PostStatements = slices.Clone(desired.PostActions)

	r.logger.Debug("planned table",
		slog.String("table", fullName),
		slog.String("current", current.Kind.String()),
		slog.String("action", plan.Action.String()),
		slog.Int("pre_statements", len(plan.PreStatements)),
		slog.Int("post_statements", len(plan.PostStatements)))

	return plan, nil
}

// Move renders the script that moves src to dst: dst is created (replacing
// any existing object) from SELECT * FROM src, then src is dropped. The two
// steps are not wrapped in a transaction.
//
// desired carries the layout of the destination and may be nil; its name
// and namespace are taken from dst. current is the state of dst.
func (r *Reconciler) Move(src, dst core.ObjectRef, desired *core.Table, current core.ObjectState) (string, error) {
	stmts, err := r.MoveStatements(src, dst, desired, current)
	if err != nil {
		return "", err
	}
	return core.JoinStatements(stmts), nil
}

// MoveStatements is Move without the final join, for callers that execute
// the statements one by one.
func (r *Reconciler) MoveStatements(src, dst core.ObjectRef, desired *core.Table, current core.ObjectState) ([]string, error) {
	if src.Catalog != "" {
		return nil, &core.UnsupportedQualificationError{Ref: src}
	}
	if dst.Catalog != "" {
		return nil, &core.UnsupportedQualificationError{Ref: dst}
	}

	target := core.Table{}
	if desired != nil {
		target = *desired
	}
	target.Name = dst.Name
	target.Namespace = dst.Namespace
	srcName := core.Qualify(src.Name, src.Namespace)
	target.Select = "SELECT * FROM " + srcName

	plan, err := r.Plan(&target, current)
	if err != nil {
		return nil, fmt.Errorf("failed to plan move of %s to %s: %w", srcName, target.FullName(), err)
	}

	return append(plan.Statements(), "DROP TABLE "+srcName), nil
}

// DecideDrop returns the drop action for a table given its current state.
// Cluster columns compare as sets, partitions as strings; an absent
// partition equals an empty one.
func DecideDrop(desired *core.Table, current core.ObjectState) core.DropAction {
	if desired.Partition == current.PartitionColumn && sameSet(desired.Cluster, current.ClusterColumns) {
		return core.DropNone
	}
	if current.Kind == core.ObjectTable {
		return core.DropTable
	}
	return core.DropView
}

func (r *Reconciler) dropStatement(kind, fullName string) string {
	stmt := "DROP " + kind + " IF EXISTS " + fullName
	if r.dialect.Capabilities.Has(core.NeedsCascadeDrop) {
		stmt += " CASCADE"
	}
	return stmt
}

func sameSet(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, s := range a {
		as[s] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, s := range b {
		bs[s] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for s := range as {
		if _, ok := bs[s]; !ok {
			return false
		}
	}
	return true
}
