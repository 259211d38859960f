package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const planColumns = `p.id, p.run_id, p.table_name, p.drop_action, p.script, p.script_hash, p.status, p.error, p.recorded_at`

// RecordPlan stores a table's plan. ID, ScriptHash and RecordedAt are filled
// in when empty.
func (s *SQLiteStore) RecordPlan(rec *PlanRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if rec.ID == "" {
		rec.ID = generateID()
	}
	if rec.ScriptHash == "" {
		rec.ScriptHash = HashScript(rec.Script)
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO plans (id, run_id, table_name, drop_action, script, script_hash, status, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RunID, rec.Table, rec.DropAction, rec.Script, rec.ScriptHash,
		string(rec.Status), nullString(rec.Error), rec.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record plan for %s: %w", rec.Table, err)
	}
	return nil
}

// ListPlans returns a run's plans in the order they were recorded.
func (s *SQLiteStore) ListPlans(runID string) ([]*PlanRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`SELECT `+planColumns+` FROM plans p WHERE p.run_id = ? ORDER BY p.rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var plans []*PlanRecord
	for rows.Next() {
		rec, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, rec)
	}
	return plans, rows.Err()
}

// LastApplied returns the most recent applied plan for a table in env,
// or nil when the table has never been applied there.
func (s *SQLiteStore) LastApplied(env, table string) (*PlanRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rec, err := scanPlan(s.db.QueryRow(
		`SELECT `+planColumns+` FROM plans p JOIN runs r ON r.id = p.run_id
		 WHERE r.environment = ? AND p.table_name = ? AND p.status = ?
		 ORDER BY p.recorded_at DESC, p.rowid DESC LIMIT 1`,
		env, table, string(PlanStatusApplied),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last applied plan: %w", err)
	}
	return rec, nil
}

func scanPlan(row scanner) (*PlanRecord, error) {
	var (
		rec    PlanRecord
		status string
		errMsg sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.RunID, &rec.Table, &rec.DropAction, &rec.Script,
		&rec.ScriptHash, &status, &errMsg, &rec.RecordedAt); err != nil {
		return nil, err
	}
	rec.Status = PlanStatus(status)
	rec.Error = errMsg.String
	return &rec, nil
}
