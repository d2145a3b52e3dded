package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"life-torus/internal/patterns"
	"life-torus/internal/render"
	"life-torus/pkg/core"
	"life-torus/pkg/grid/bytegrid"
)

// PatternInfo describes a built-in pattern.
type PatternInfo struct {
	Name  string `json:"name"`
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Cells int    `json:"cells"`
}

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns [name]",
		Short: "List built-in patterns or draw one",
		Long: `Without arguments, list the patterns accepted by --pattern.
With a name, draw that pattern.

Example:
  life patterns
  life patterns glider`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showPattern(cmd, args[0])
			}
			return listPatterns(rootOpts, cmd)
		},
	}
	return cmd
}

func listPatterns(opts *RootOptions, cmd *cobra.Command) error {
	var infos []PatternInfo
	for _, name := range patterns.Names() {
		p, err := patterns.Lookup(name)
		if err != nil {
			return err
		}
		infos = append(infos, PatternInfo{Name: p.Name, Rows: p.Rows, Cols: p.Cols, Cells: len(p.Cells)})
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		return writeJSON(out, infos)
	}
	for _, info := range infos {
		fmt.Fprintf(out, "%-12s %3dx%-3d %d cells\n", info.Name, info.Cols, info.Rows, info.Cells)
	}
	return nil
}

func showPattern(cmd *cobra.Command, name string) error {
	p, err := patterns.Lookup(name)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown pattern", err)
	}
	g, err := bytegrid.New(p.Cols, p.Rows)
	if err != nil {
		return err
	}
	for _, c := range p.Cells {
		g.Set(c.Row, c.Col, core.Alive)
	}
	return render.Text(cmd.OutOrStdout(), g.View(), p.Cols)
}
