package commands

import (
	"github.com/leapstack-labs/ddlsync/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewMoveCommand creates the move command.
func NewMoveCommand() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "move <src> <dst>",
		Short: "Move a table by copying it and dropping the source",
		Long: `Create dst from SELECT * FROM src, replacing any existing object, then drop
src. When dst has a table definition its partition and cluster columns are
used. The script is printed unless --apply is given.`,
		Example: `  ddlsync move staging.events analytics.events
  ddlsync move staging.events analytics.events --apply`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := cctx.Engine.Move(cmd.Context(), args[0], args[1], apply)
			if res == nil {
				return err
			}

			r := cctx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				out := output.MoveOutput{
					Source:  args[0],
					Dest:    args[1],
					Current: res.Current.Kind.String(),
					Script:  res.Script(),
					Applied: res.Applied,
				}
				if res.Run != nil {
					out.RunID = res.Run.ID
				}
				if jerr := r.JSON(out); jerr != nil {
					return jerr
				}
				return err
			}

			r.Header(1, "Move "+args[0]+" to "+args[1])
			r.SQL(res.Script())
			if res.Applied {
				r.Success("moved " + args[0] + " to " + args[1])
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Execute the move")
	return cmd
}
