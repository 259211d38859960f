package commands

import (
	"strings"

	"github.com/leapstack-labs/ddlsync/internal/cli/output"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <table>...",
		Short: "Show the catalog state of tables",
		Long: `Query the warehouse catalog and print kind, partition column and
cluster columns for each named object. Names may be "table" (default
namespace) or "namespace.table".`,
		Example: `  ddlsync inspect analytics.events analytics.sessions`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	cctx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	snapshot, err := cctx.Engine.Inspect(cmd.Context(), args)
	if err != nil {
		return err
	}

	states := make([]output.TableStateOutput, 0, len(args))
	for _, name := range args {
		ref := core.ParseObjectRef(name)
		st := snapshot.LookupRef(ref)
		states = append(states, output.TableStateOutput{
			Namespace: ref.Namespace,
			Name:      ref.Name,
			Kind:      st.Kind.String(),
			Partition: st.PartitionColumn,
			Cluster:   st.ClusterColumns,
		})
	}

	r := cctx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(states)
	}

	r.Header(1, "Catalog")
	rows := make([][]string, len(states))
	for i, s := range states {
		rows[i] = []string{core.Qualify(s.Name, s.Namespace), s.Kind, s.Partition, strings.Join(s.Cluster, ", ")}
	}
	r.Table([]string{"object", "kind", "partition", "cluster"}, rows)
	return nil
}
