package commands

import (
	"github.com/leapstack-labs/ddlsync/internal/engine"
	"github.com/spf13/cobra"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "apply [table]...",
		Short: "Plan and execute DDL against the warehouse",
		Long: `Plan each table and execute its statements in order through the adapter.
Statements are not wrapped in a transaction. A failing table does not stop
the others.

Tables whose layout is unchanged and whose script matches the last applied
script are skipped unless --force is given. This includes tables created
from a select: their data is not refreshed on a repeat apply without --force.`,
		Example: `  # Apply every table
  ddlsync apply

  # Re-apply one table even if unchanged
  ddlsync apply analytics.events --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := cctx.Engine.Apply(cmd.Context(), args, engine.ApplyOptions{Force: force})
			if err != nil {
				return err
			}
			if err := renderResult(cctx.Renderer, "Apply", res); err != nil {
				return err
			}
			return resultError(res)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Apply even when the script is unchanged")
	return cmd
}
