package core

import "strings"

// DropAction is the drop decision taken by the reconciler.
type DropAction int

// Drop actions.
const (
	DropNone DropAction = iota
	DropTable
	DropView
)

// String returns a short label for the action.
func (a DropAction) String() string {
	switch a {
	case DropTable:
		return "drop-table"
	case DropView:
		return "drop-view"
	default:
		return "no-drop"
	}
}

// Plan is the reconciliation result for a single table.
// It is a pure function of the desired table, its current state and the
// dialect capabilities, and is discarded once rendered.
type Plan struct {
	// Table is the fully qualified name of the reconciled table.
	Table string

	Action DropAction

	// DropStatement is empty when Action is DropNone.
	DropStatement string

	// PreStatements run between the drop and the create. They carry explicit
	// drops for dialects that cannot replace a table in place.
	PreStatements []string

	CreateStatement string

	// PostStatements run after the create, in declaration order.
	PostStatements []string
}

// HasDrop reports whether the plan drops the existing object first.
func (p *Plan) HasDrop() bool {
	return p.DropStatement != ""
}

// Statements returns the statements in execution order, each exactly as
// produced. Blank post statements are dropped.
func (p *Plan) Statements() []string {
	stmts := make([]string, 0, 2+len(p.PreStatements)+len(p.PostStatements))
	if p.DropStatement != "" {
		stmts = append(stmts, p.DropStatement)
	}
	stmts = append(stmts, p.PreStatements...)
	stmts = append(stmts, p.CreateStatement)
	for _, s := range p.PostStatements {
		if strings.TrimSpace(s) != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// Script renders the plan as a single SQL script with a blank line between
// statements. No terminator is added; a statement keeps whatever it ends with.
func (p *Plan) Script() string {
	return JoinStatements(p.Statements())
}

// JoinStatements joins statements into a script, separated by a blank line.
// Empty statements are skipped.
func JoinStatements(stmts []string) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}
