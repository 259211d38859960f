package engine

import (
	"github.com/leapstack-labs/ddlsync/internal/state"
)

// History returns the most recent runs, newest first.
func (e *Engine) History(limit int) ([]*state.Run, error) {
	store, err := e.ensureStore()
	if err != nil {
		return nil, err
	}
	return store.ListRuns(limit)
}

// RunPlans returns the plans recorded by a run.
func (e *Engine) RunPlans(runID string) ([]*state.PlanRecord, error) {
	store, err := e.ensureStore()
	if err != nil {
		return nil, err
	}
	if _, err := store.GetRun(runID); err != nil {
		return nil, err
	}
	return store.ListPlans(runID)
}
