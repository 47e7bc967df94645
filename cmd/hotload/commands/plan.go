package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/hotload/internal/app"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <module>...",
		Short: "Print the modules a change to the given modules would reload",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dot, _ := cmd.Flags().GetBool("dot")
			noBuild, _ := cmd.Flags().GetBool("no-build")
			return c.app.Plan(cmd.Context(), app.PlanOptions{
				ConfigPath: configPath(cmd),
				Changed:    args,
				DOT:        dot,
				SkipBuild:  noBuild,
			}, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("dot", false, "Also print the dependency graph in Graphviz format")
	cmd.Flags().BoolP("no-build", "n", false, "Use the manifest of the previous build instead of compiling")
	return cmd
}
