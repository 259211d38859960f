// Package state records ddlsync runs and the plans they produced in SQLite.
// The history lets apply skip tables whose script is unchanged since the
// last successful apply and backs the history command.
package state

import (
	"fmt"
	"time"

	"github.com/zeebo/xxh3"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// PlanStatus is the outcome of a single table's plan within a run.
type PlanStatus string

// Plan statuses.
const (
	PlanStatusPlanned PlanStatus = "planned"
	PlanStatusApplied PlanStatus = "applied"
	PlanStatusSkipped PlanStatus = "skipped"
	PlanStatusFailed  PlanStatus = "failed"
)

// Run is one invocation of plan, apply or move.
type Run struct {
	ID          string
	Environment string
	Command     string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// PlanRecord is the persisted form of one table's plan.
type PlanRecord struct {
	ID         string
	RunID      string
	Table      string
	DropAction string
	Script     string
	ScriptHash string
	Status     PlanStatus
	Error      string
	RecordedAt time.Time
}

// Store is the history store used by the engine.
type Store interface {
	CreateRun(env, command string) (*Run, error)
	CompleteRun(id string, status RunStatus, errMsg string) error
	GetRun(id string) (*Run, error)
	ListRuns(limit int) ([]*Run, error)
	RecordPlan(rec *PlanRecord) error
	ListPlans(runID string) ([]*PlanRecord, error)
	LastApplied(env, table string) (*PlanRecord, error)
	Close() error
}

// HashScript returns the content hash stored alongside a plan script.
func HashScript(script string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(script))
}
