package commands

import (
	"strings"

	"github.com/leapstack-labs/ddlsync/internal/cli/output"
	intconfig "github.com/leapstack-labs/ddlsync/internal/config"
	"github.com/leapstack-labs/ddlsync/pkg/adapter"
	"github.com/leapstack-labs/ddlsync/pkg/core"
	"github.com/leapstack-labs/ddlsync/pkg/dialect"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List dialects with their capabilities and type maps",
		Long: `List every registered dialect with its declared capabilities and
logical type map. The configured target is shown with its capability
overrides applied.`,
		Args: cobra.NoArgs,
		RunE: runDialects,
	}
}

func runDialects(cmd *cobra.Command, _ []string) error {
	cctx, err := NewCommandContextWithoutEngine(cmd)
	if err != nil {
		return err
	}

	adapters := map[string]string{}
	for _, reg := range adapter.Registrations() {
		adapters[reg.Dialect] = reg.Name
	}

	var out []output.DialectOutput
	for _, name := range dialect.List() {
		d, _ := dialect.Get(name)
		out = append(out, dialectOutput(d, adapters[name]))
	}

	target, err := intconfig.ResolveDialect(cctx.Cfg.Target)
	if err != nil {
		return err
	}

	r := cctx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{
			"target":   dialectOutput(target, strings.ToLower(cctx.Cfg.Target.Type)),
			"dialects": out,
		})
	}

	r.Header(1, "Dialects")
	rows := make([][]string, len(out))
	for i, d := range out {
		rows[i] = []string{d.Name, d.Adapter, d.DefaultSchema, strings.Join(d.Capabilities, ", ")}
	}
	r.Table([]string{"dialect", "adapter", "default schema", "capabilities"}, rows)

	r.Header(2, "Target "+cctx.Cfg.Target.Type)
	r.Println(output.FormatKeyValue("Capabilities", target.Capabilities.String()))
	r.Println("")

	typeRows := make([][]string, 0, len(core.AllKinds()))
	for _, k := range core.AllKinds() {
		if t, ok := target.Types[k]; ok {
			typeRows = append(typeRows, []string{k.String(), t})
		}
	}
	r.Table([]string{"kind", "type"}, typeRows)
	return nil
}

func dialectOutput(d *dialect.Dialect, adapterName string) output.DialectOutput {
	types := make(map[string]string, len(d.Types))
	for k, t := range d.Types {
		types[k.String()] = t
	}
	return output.DialectOutput{
		Name:          d.Name,
		Adapter:       adapterName,
		DefaultSchema: d.DefaultSchema,
		Capabilities:  d.Capabilities.Names(),
		Types:         types,
	}
}
