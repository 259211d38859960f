package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/ddlsync/internal/loader"
	"github.com/leapstack-labs/ddlsync/internal/state"
	"github.com/leapstack-labs/ddlsync/pkg/core"
)

// TablePlan is the outcome of reconciling one table.
type TablePlan struct {
	Table   *core.Table
	Current core.ObjectState
	Plan    *core.Plan
	Status  state.PlanStatus
	Err     error
}

// Script returns the plan script, or "" when planning failed.
func (p *TablePlan) Script() string {
	if p.Plan == nil {
		return ""
	}
	return p.Plan.Script()
}

// Result is the outcome of a plan or apply run.
type Result struct {
	Run    *state.Run
	Tables []*TablePlan
	// Failures lists definition files that did not load.
	Failures []loader.Failure
}

// Err joins load failures and per-table errors, or returns nil.
func (r *Result) Err() error {
	var errs []error
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	for _, t := range r.Tables {
		if t.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Table.FullName(), t.Err))
		}
	}
	return errors.Join(errs...)
}

// Script joins the scripts of every planned table.
func (r *Result) Script() string {
	var parts []string
	for _, t := range r.Tables {
		if s := t.Script(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

// ApplyOptions configures Apply.
type ApplyOptions struct {
	// Force re-applies tables whose script matches the last applied one.
	Force bool
}

// Plan reconciles the selected tables (all tables when selection is empty)
// without changing the warehouse. The run is recorded in the state store.
func (e *Engine) Plan(ctx context.Context, selection []string) (*Result, error) {
	return e.reconcile(ctx, "plan", selection, nil)
}

// Apply plans the selected tables and executes each plan's statements in
// order. A failing table does not stop the others.
func (e *Engine) Apply(ctx context.Context, selection []string, opts ApplyOptions) (*Result, error) {
	return e.reconcile(ctx, "apply", selection, &opts)
}

func (e *Engine) reconcile(ctx context.Context, command string, selection []string, apply *ApplyOptions) (*Result, error) {
	e.logger.Info("starting "+command, slog.String("environment", e.environment), slog.Any("tables", selection))

	loaded, err := e.Load()
	if err != nil {
		return nil, err
	}
	tables, err := selectTables(loaded.Tables, selection)
	if err != nil {
		return nil, err
	}

	result := &Result{Failures: loaded.Failures}
	if len(tables) == 0 {
		return result, nil
	}

	if err := e.ensureDBConnected(ctx); err != nil {
		return nil, err
	}
	store, err := e.ensureStore()
	if err != nil {
		return nil, err
	}

	refs := make([]core.ObjectRef, len(tables))
	for i, t := range tables {
		refs[i] = t.Ref()
	}
	snapshot, err := e.introspector().Introspect(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect catalog: %w", err)
	}

	run, err := store.CreateRun(e.environment, command)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	result.Run = run

	for _, t := range tables {
		tp := &TablePlan{Table: t, Current: snapshot.LookupRef(t.Ref()), Status: state.PlanStatusPlanned}
		result.Tables = append(result.Tables, tp)

		tp.Plan, tp.Err = e.reconciler.Plan(t, tp.Current)
		if tp.Err != nil {
			tp.Status = state.PlanStatusFailed
			e.logger.Error("failed to plan table", slog.String("table", t.FullName()), slog.String("error", tp.Err.Error()))
		} else if apply != nil {
			e.applyTable(ctx, store, tp, *apply)
		}

		e.record(store, run.ID, tp)
	}

	status, errMsg := state.RunStatusCompleted, ""
	if err := result.Err(); err != nil {
		status, errMsg = state.RunStatusFailed, err.Error()
	}
	if err := store.CompleteRun(run.ID, status, errMsg); err != nil {
		e.logger.Warn("failed to complete run", slog.String("run_id", run.ID), slog.String("error", err.Error()))
	}
	if r, err := store.GetRun(run.ID); err == nil {
		result.Run = r
	}

	e.logger.Info(command+" finished", slog.String("run_id", run.ID), slog.String("status", string(status)))
	return result, nil
}

// applyTable executes a planned table unless its script is unchanged since
// the last apply and nothing has to be dropped.
func (e *Engine) applyTable(ctx context.Context, store state.Store, tp *TablePlan, opts ApplyOptions) {
	name := tp.Table.FullName()

	if !opts.Force && !tp.Plan.HasDrop() && tp.Current.Exists() {
		last, err := store.LastApplied(e.environment, name)
		if err != nil {
			e.logger.Warn("failed to read apply history", slog.String("table", name), slog.String("error", err.Error()))
		} else if last != nil && last.ScriptHash == state.HashScript(tp.Plan.Script()) {
			e.logger.Debug("script unchanged, skipping", slog.String("table", name))
			tp.Status = state.PlanStatusSkipped
			return
		}
	}

	if err := e.execStatements(ctx, tp.Plan.Statements()); err != nil {
		tp.Status = state.PlanStatusFailed
		tp.Err = err
		e.logger.Error("failed to apply table", slog.String("table", name), slog.String("error", err.Error()))
		return
	}
	tp.Status = state.PlanStatusApplied
}

// execStatements runs statements one at a time, stopping at the first failure.
func (e *Engine) execStatements(ctx context.Context, stmts []string) error {
	for i, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d of %d failed: %w", i+1, len(stmts), err)
		}
	}
	return nil
}

func (e *Engine) record(store state.Store, runID string, tp *TablePlan) {
	rec := &state.PlanRecord{
		RunID:  runID,
		Table:  tp.Table.FullName(),
		Script: tp.Script(),
		Status: tp.Status,
	}
	if tp.Plan != nil {
		rec.DropAction = tp.Plan.Action.String()
	}
	if tp.Err != nil {
		rec.Error = tp.Err.Error()
	}
	if err := store.RecordPlan(rec); err != nil {
		e.logger.Warn("failed to record plan", slog.String("table", rec.Table), slog.String("error", err.Error()))
	}
}

// selectTables filters tables by full name or bare name, in selection order.
// An empty selection selects everything.
func selectTables(tables []*core.Table, selection []string) ([]*core.Table, error) {
	if len(selection) == 0 {
		return tables, nil
	}

	var out []*core.Table
	seen := make(map[*core.Table]bool)
	for _, name := range selection {
		matched := false
		for _, t := range tables {
			if t.FullName() == name || t.Name == name {
				matched = true
				if !seen[t] {
					seen[t] = true
					out = append(out, t)
				}
			}
		}
		if !matched {
			return nil, fmt.Errorf("table %s is not defined", name)
		}
	}
	return out, nil
}
