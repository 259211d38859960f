package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/ddlsync/internal/cli/output"
	"github.com/leapstack-labs/ddlsync/internal/state"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded plan, apply and move runs",
		Example: `  ddlsync history --limit 5
  ddlsync history --run 3f0c2a54-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cctx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if runID != "" {
				return showRun(cctx, runID)
			}

			runs, err := cctx.Engine.History(limit)
			if err != nil {
				return err
			}

			r := cctx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				out := make([]output.RunOutput, len(runs))
				for i, run := range runs {
					out[i] = runOutput(run)
				}
				return r.JSON(out)
			}

			r.Header(1, fmt.Sprintf("Runs (%d)", len(runs)))
			rows := make([][]string, len(runs))
			for i, run := range runs {
				rows[i] = []string{
					run.ID,
					run.Command,
					run.Environment,
					r.Styles().RunStatus(run.Status),
					run.StartedAt.Local().Format(time.DateTime),
				}
			}
			r.Table([]string{"id", "command", "environment", "status", "started"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show the plans recorded by one run")
	return cmd
}

func showRun(cctx *CommandContext, runID string) error {
	plans, err := cctx.Engine.RunPlans(runID)
	if err != nil {
		return err
	}

	r := cctx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		out := make([]output.TablePlanOutput, len(plans))
		for i, p := range plans {
			out[i] = output.TablePlanOutput{
				Table:  p.Table,
				Action: p.DropAction,
				Status: string(p.Status),
				Script: p.Script,
				Error:  p.Error,
			}
		}
		return r.JSON(out)
	}

	r.Header(1, "Run "+runID)
	for _, p := range plans {
		r.Header(2, fmt.Sprintf("%s (%s, %s)", p.Table, p.DropAction, r.Styles().PlanStatus(p.Status)))
		if p.Error != "" {
			r.Error(p.Error)
		}
		r.SQL(p.Script)
	}
	return nil
}

func runOutput(run *state.Run) output.RunOutput {
	return output.RunOutput{
		ID:          run.ID,
		Environment: run.Environment,
		Command:     run.Command,
		Status:      string(run.Status),
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
		Error:       run.Error,
	}
}
