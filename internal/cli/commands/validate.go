package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ddlsync/internal/cli/output"
	"github.com/leapstack-labs/ddlsync/internal/loader"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate table definitions without connecting",
		Long: `Load every table definition and check it against the target dialect.

Duplicate columns, cluster columns missing from the column list, unknown
keys and layout features the dialect does not support are reported per file.
The warehouse is never contacted.`,
		Example: `  # Validate all definitions
  ddlsync validate

  # Validate as JSON
  ddlsync validate -o json`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cctx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cctx.Cfg.ValidateDirectories(); err != nil {
		return err
	}

	res, err := cctx.Engine.Load()
	if err != nil {
		return err
	}

	r := cctx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		out := output.ValidateOutput{Tables: []output.ValidatedTable{}, Failures: failureOutputs(res.Failures)}
		for _, t := range res.Tables {
			out.Tables = append(out.Tables, output.ValidatedTable{
				Table:     t.FullName(),
				File:      res.Files[t.FullName()],
				Columns:   len(t.Columns),
				Partition: t.Partition,
				Cluster:   t.Cluster,
			})
		}
		if err := r.JSON(out); err != nil {
			return err
		}
	} else {
		r.Header(1, fmt.Sprintf("Tables (%d valid, %d invalid)", len(res.Tables), len(res.Failures)))
		rows := make([][]string, 0, len(res.Tables))
		for _, t := range res.Tables {
			rows = append(rows, []string{
				t.FullName(),
				res.Files[t.FullName()],
				fmt.Sprint(len(t.Columns)),
				t.Partition,
				strings.Join(t.Cluster, ", "),
			})
		}
		if len(rows) > 0 {
			r.Table([]string{"table", "file", "columns", "partition", "cluster"}, rows)
		}
		for _, f := range res.Failures {
			r.Error(f.Error())
		}
		if len(res.Failures) == 0 {
			r.Success(fmt.Sprintf("%d table(s) valid for %s", len(res.Tables), cctx.Engine.Dialect().Name))
		}
	}

	if len(res.Failures) > 0 {
		return fmt.Errorf("%d definition(s) failed validation", len(res.Failures))
	}
	return nil
}

func failureOutputs(failures []loader.Failure) []output.FailureOutput {
	out := make([]output.FailureOutput, len(failures))
	for i, f := range failures {
		out[i] = output.FailureOutput{File: f.File, Error: f.Err.Error()}
	}
	return out
}
