package commands

import (
	"fmt"

	"github.com/leapstack-labs/ddlsync/internal/cli/output"
	"github.com/leapstack-labs/ddlsync/internal/engine"
	"github.com/spf13/cobra"
)

// NewPlanCommand creates the plan command.
func NewPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [table]...",
		Short: "Show the DDL needed to reconcile tables",
		Long: `Introspect the warehouse and print, for each table, the drop decision and
the DDL script that brings it to its definition. Nothing is executed.

Without arguments every defined table is planned.`,
		Example: `  # Plan every table
  ddlsync plan

  # Plan one table against the prod environment
  ddlsync plan analytics.events -t prod`,
		RunE: runPlan,
	}
}

func runPlan(cmd *cobra.Command, args []string) error {
	cctx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := cctx.Engine.Plan(cmd.Context(), args)
	if err != nil {
		return err
	}
	if err := renderResult(cctx.Renderer, "Plan", res); err != nil {
		return err
	}
	return resultError(res)
}

// renderResult prints a plan or apply result.
func renderResult(r *output.Renderer, title string, res *engine.Result) error {
	if r.EffectiveMode() == output.ModeJSON {
		out := output.PlanOutput{Tables: []output.TablePlanOutput{}, Failures: failureOutputs(res.Failures)}
		if res.Run != nil {
			out.RunID = res.Run.ID
			out.Status = string(res.Run.Status)
		}
		for _, tp := range res.Tables {
			out.Tables = append(out.Tables, tablePlanOutput(tp))
		}
		return r.JSON(out)
	}

	styles := r.Styles()
	r.Header(1, fmt.Sprintf("%s (%d tables)", title, len(res.Tables)))

	if len(res.Tables) > 0 {
		rows := make([][]string, len(res.Tables))
		for i, tp := range res.Tables {
			action := "-"
			if tp.Plan != nil {
				action = styles.Action(tp.Plan.Action)
			}
			rows[i] = []string{tp.Table.FullName(), tp.Current.Kind.String(), action, styles.PlanStatus(tp.Status)}
		}
		r.Table([]string{"table", "current", "action", "status"}, rows)
	}

	for _, tp := range res.Tables {
		if tp.Err != nil {
			r.Error(fmt.Sprintf("%s: %v", tp.Table.FullName(), tp.Err))
			continue
		}
		r.Header(2, tp.Table.FullName())
		r.SQL(tp.Script())
	}
	for _, f := range res.Failures {
		r.Error(f.Error())
	}
	if res.Run != nil {
		r.Println(r.Muted("run " + res.Run.ID))
	}
	return nil
}

func tablePlanOutput(tp *engine.TablePlan) output.TablePlanOutput {
	out := output.TablePlanOutput{
		Table:   tp.Table.FullName(),
		Current: tp.Current.Kind.String(),
		Status:  string(tp.Status),
		Script:  tp.Script(),
	}
	if tp.Plan != nil {
		out.Action = tp.Plan.Action.String()
	}
	if tp.Err != nil {
		out.Error = tp.Err.Error()
	}
	return out
}

func resultError(res *engine.Result) error {
	if err := res.Err(); err != nil {
		return fmt.Errorf("reconciliation finished with errors:\n%w", err)
	}
	return nil
}
