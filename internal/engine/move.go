package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ddlsync/internal/state"
	"github.com/leapstack-labs/ddlsync/pkg/core"
)

// MoveResult is the outcome of a move.
type MoveResult struct {
	Run        *state.Run
	Source     core.ObjectRef
	Dest       core.ObjectRef
	Current    core.ObjectState
	Statements []string
	Applied    bool
}

// Script returns the move script.
func (m *MoveResult) Script() string {
	return core.JoinStatements(m.Statements)
}

// Move plans moving src to dst and executes it when apply is set. When dst
// has a table definition its layout is used for the destination.
func (e *Engine) Move(ctx context.Context, src, dst string, apply bool) (*MoveResult, error) {
	res := &MoveResult{Source: core.ParseObjectRef(src), Dest: core.ParseObjectRef(dst)}

	var desired *core.Table
	if loaded, err := e.Load(); err == nil {
		if t, ok := loaded.Find(core.Qualify(res.Dest.Name, res.Dest.Namespace)); ok {
			desired = t
		}
	} else {
		e.logger.Debug("moving without definitions", slog.String("error", err.Error()))
	}

	if err := e.ensureDBConnected(ctx); err != nil {
		return nil, err
	}
	snapshot, err := e.introspector().Introspect(ctx, []core.ObjectRef{res.Dest})
	if err != nil {
		return nil, fmt.Errorf("failed to introspect catalog: %w", err)
	}
	res.Current = snapshot.LookupRef(res.Dest)

	res.Statements, err = e.reconciler.MoveStatements(res.Source, res.Dest, desired, res.Current)
	if err != nil {
		return nil, err
	}
	if !apply {
		return res, nil
	}

	store, err := e.ensureStore()
	if err != nil {
		return nil, err
	}
	run, err := store.CreateRun(e.environment, "move")
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	rec := &state.PlanRecord{
		RunID:      run.ID,
		Table:      core.Qualify(res.Dest.Name, res.Dest.Namespace),
		DropAction: "move",
		Script:     res.Script(),
		Status:     state.PlanStatusApplied,
	}
	execErr := e.execStatements(ctx, res.Statements)
	status := state.RunStatusCompleted
	if execErr != nil {
		rec.Status = state.PlanStatusFailed
		rec.Error = execErr.Error()
		status = state.RunStatusFailed
	}
	if err := store.RecordPlan(rec); err != nil {
		e.logger.Warn("failed to record plan", slog.String("table", rec.Table), slog.String("error", err.Error()))
	}
	if err := store.CompleteRun(run.ID, status, rec.Error); err != nil {
		e.logger.Warn("failed to complete run", slog.String("run_id", run.ID), slog.String("error", err.Error()))
	}
	if r, err := store.GetRun(run.ID); err == nil {
		run = r
	}
	res.Run = run

	if execErr != nil {
		return res, fmt.Errorf("failed to move %s to %s: %w", src, dst, execErr)
	}
	res.Applied = true
	return res, nil
}
