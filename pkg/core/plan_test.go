package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan_Script(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
		want string
	}{
		{
			name: "create only",
			plan: Plan{CreateStatement: "CREATE OR REPLACE TABLE t (id INT64)"},
			want: "CREATE OR REPLACE TABLE t (id INT64)",
		},
		{
			name: "drop precedes create",
			plan: Plan{
				Action:          DropTable,
				DropStatement:   "DROP TABLE IF EXISTS t",
				CreateStatement: "CREATE TABLE t (id INT64)",
			},
			want: "DROP TABLE IF EXISTS t\n\nCREATE TABLE t (id INT64)",
		},
		{
			name: "pre statements run before create",
			plan: Plan{
				PreStatements:   []string{"DROP TABLE IF EXISTS t CASCADE"},
				CreateStatement: "CREATE TABLE t (id BIGINT)",
			},
			want: "DROP TABLE IF EXISTS t CASCADE\n\nCREATE TABLE t (id BIGINT)",
		},
		{
			name: "post statements keep their order and text",
			plan: Plan{
				CreateStatement: "CREATE TABLE t (id INT64)",
				PostStatements:  []string{"GRANT SELECT ON t TO r;", "  ", "ANALYZE t"},
			},
			want: "CREATE TABLE t (id INT64)\n\nGRANT SELECT ON t TO r;\n\nANALYZE t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plan.Script())
		})
	}
}

func TestPlan_Statements(t *testing.T) {
	p := Plan{DropStatement: "DROP VIEW IF EXISTS v", CreateStatement: "CREATE VIEW v AS SELECT 1"}
	assert.True(t, p.HasDrop())
	assert.Equal(t, []string{"DROP VIEW IF EXISTS v", "CREATE VIEW v AS SELECT 1"}, p.Statements())
}

func TestPlan_PostStatementsVerbatim(t *testing.T) {
	hook := "ALTER TABLE t SET OPTIONS (description='x;y');  \n"
	p := Plan{CreateStatement: "CREATE TABLE t", PostStatements: []string{hook}}

	assert.Equal(t, []string{"CREATE TABLE t", hook}, p.Statements())
	assert.Equal(t, "CREATE TABLE t\n\n"+hook, p.Script())
}

func TestJoinStatements(t *testing.T) {
	assert.Equal(t, "", JoinStatements(nil))
	assert.Equal(t, "a\n\nb;", JoinStatements([]string{"a", "", "b;"}))
}

func TestDropAction_String(t *testing.T) {
	assert.Equal(t, "no-drop", DropNone.String())
	assert.Equal(t, "drop-table", DropTable.String())
	assert.Equal(t, "drop-view", DropView.String())
}
