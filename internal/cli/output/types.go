package output

import "time"

// TableStateOutput is the JSON form of one introspected object.
type TableStateOutput struct {
	Namespace string   `json:"namespace"`
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Partition string   `json:"partition,omitempty"`
	Cluster   []string `json:"cluster,omitempty"`
}

// TablePlanOutput is the JSON form of one table's plan.
type TablePlanOutput struct {
	Table   string `json:"table"`
	Current string `json:"current"`
	Action  string `json:"action,omitempty"`
	Status  string `json:"status"`
	Script  string `json:"script,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FailureOutput is a definition file that failed to load.
type FailureOutput struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// PlanOutput is the JSON form of a plan or apply run.
type PlanOutput struct {
	RunID    string            `json:"run_id,omitempty"`
	Status   string            `json:"status,omitempty"`
	Tables   []TablePlanOutput `json:"tables"`
	Failures []FailureOutput   `json:"failures,omitempty"`
}

// ValidateOutput is the JSON form of validate.
type ValidateOutput struct {
	Tables   []ValidatedTable `json:"tables"`
	Failures []FailureOutput  `json:"failures,omitempty"`
}

// ValidatedTable is a table that loaded successfully.
type ValidatedTable struct {
	Table     string   `json:"table"`
	File      string   `json:"file"`
	Columns   int      `json:"columns"`
	Partition string   `json:"partition,omitempty"`
	Cluster   []string `json:"cluster,omitempty"`
}

// MoveOutput is the JSON form of move.
type MoveOutput struct {
	Source  string `json:"source"`
	Dest    string `json:"dest"`
	Current string `json:"current"`
	Script  string `json:"script"`
	Applied bool   `json:"applied"`
	RunID   string `json:"run_id,omitempty"`
}

// RunOutput is the JSON form of a recorded run.
type RunOutput struct {
	ID          string            `json:"id"`
	Environment string            `json:"environment"`
	Command     string            `json:"command"`
	Status      string            `json:"status"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Error       string            `json:"error,omitempty"`
	Plans       []TablePlanOutput `json:"plans,omitempty"`
}

// DialectOutput is the JSON form of a dialect description.
type DialectOutput struct {
	Name          string            `json:"name"`
	Adapter       string            `json:"adapter,omitempty"`
	DefaultSchema string            `json:"default_schema,omitempty"`
	Capabilities  []string          `json:"capabilities"`
	Types         map[string]string `json:"types"`
}
