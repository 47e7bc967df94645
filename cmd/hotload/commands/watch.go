package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/hotload/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompile on change and push reloads to connected clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				ConfigPath: configPath(cmd),
				Addr:       addr,
			})
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Address to serve the evaluation channel on (overrides server.addr)")
	return cmd
}
