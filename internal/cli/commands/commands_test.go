package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/leapstack-labs/ddlsync/internal/cli/output"
	"github.com/leapstack-labs/ddlsync/internal/cli/testutil"
	"github.com/leapstack-labs/ddlsync/internal/engine"
	"github.com/leapstack-labs/ddlsync/internal/loader"
	"github.com/leapstack-labs/ddlsync/internal/state"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewValidateCommand(), "validate", nil},
		{NewInspectCommand(), "inspect <table>...", nil},
		{NewPlanCommand(), "plan [table]...", nil},
		{NewApplyCommand(), "apply [table]...", []string{"force"}},
		{NewMoveCommand(), "move <src> <dst>", []string{"apply"}},
		{NewHistoryCommand(), "history", []string{"limit", "run"}},
		{NewDialectsCommand(), "dialects", nil},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.NotNil(t, tt.cmd.RunE)
			for _, f := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(f), f)
			}
		})
	}
}

func TestArgValidation(t *testing.T) {
	tests := []struct {
		name    string
		cmd     *cobra.Command
		args    []string
		wantErr bool
	}{
		{"move needs two args", NewMoveCommand(), []string{"a"}, true},
		{"move with two args", NewMoveCommand(), []string{"a", "b"}, false},
		{"inspect needs a table", NewInspectCommand(), nil, true},
		{"inspect with a table", NewInspectCommand(), []string{"main.t"}, false},
		{"validate takes no args", NewValidateCommand(), []string{"x"}, true},
		{"plan takes any args", NewPlanCommand(), []string{"a", "b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.ValidateArgs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)
	assert.Contains(t, out.String(), "ddlsync v1.2.3")
}

func TestCommandContextWithoutConfig(t *testing.T) {
	cmd := &cobra.Command{}
	_, err := NewCommandContextWithoutEngine(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration not loaded")
}

func sampleResult() *engine.Result {
	events := &core.Table{Name: "events", Namespace: "analytics", Partition: "day"}
	broken := &core.Table{Name: "broken", Namespace: "analytics"}
	return &engine.Result{
		Run: &state.Run{ID: "run-1", Status: state.RunStatusFailed},
		Tables: []*engine.TablePlan{
			{
				Table:   events,
				Current: core.ObjectState{Kind: core.ObjectTable},
				Plan: &core.Plan{
					Table:           "analytics.events",
					Action:          core.DropTable,
					DropStatement:   "DROP TABLE IF EXISTS analytics.events",
					CreateStatement: "CREATE TABLE analytics.events",
				},
				Status: state.PlanStatusApplied,
			},
			{
				Table:  broken,
				Status: state.PlanStatusFailed,
				Err:    errors.New("boom"),
			},
		},
		Failures: []loader.Failure{{File: "bad.yaml", Err: errors.New("unknown field")}},
	}
}

func TestRenderResult_JSON(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeJSON, false)
	require.NoError(t, renderResult(r.Renderer, "Apply", sampleResult()))

	var got output.PlanOutput
	require.NoError(t, json.Unmarshal(r.Out.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "failed", got.Status)
	require.Len(t, got.Tables, 2)
	assert.Equal(t, output.TablePlanOutput{
		Table:   "analytics.events",
		Current: "table",
		Action:  "drop-table",
		Status:  "applied",
		Script:  "DROP TABLE IF EXISTS analytics.events\n\nCREATE TABLE analytics.events",
	}, got.Tables[0])
	assert.Equal(t, "boom", got.Tables[1].Error)
	assert.Empty(t, got.Tables[1].Action)
	assert.Equal(t, []output.FailureOutput{{File: "bad.yaml", Error: "unknown field"}}, got.Failures)
}

func TestRenderResult_Markdown(t *testing.T) {
	r := testutil.NewTestRenderer(output.ModeMarkdown, false)
	require.NoError(t, renderResult(r.Renderer, "Plan", sampleResult()))

	out := r.Out.String()
	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "# Plan (2 tables)")
	assert.Contains(t, out, "## analytics.events")
	assert.Contains(t, out, "DROP TABLE IF EXISTS analytics.events\n\nCREATE TABLE analytics.events")
	assert.NotContains(t, out, "## analytics.broken")
	assert.Contains(t, r.ErrOut.String(), "analytics.broken: boom")
	assert.Contains(t, r.ErrOut.String(), "bad.yaml: unknown field")
}

func TestResultError(t *testing.T) {
	res := sampleResult()
	err := resultError(res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reconciliation finished with errors")
	assert.Contains(t, err.Error(), "analytics.broken: boom")

	assert.NoError(t, resultError(&engine.Result{}))
}

func TestApplyHelpMentionsSkippedRefresh(t *testing.T) {
	long := NewApplyCommand().Long
	assert.Contains(t, long, "skipped unless --force")
	assert.Contains(t, long, "not refreshed on a repeat apply")
}
