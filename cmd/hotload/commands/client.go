package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/hotload/internal/app"
)

func (c *CLI) newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Run a headless client runtime against a watching coordinator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			preload, _ := cmd.Flags().GetStringSlice("preload")
			return c.app.Client(cmd.Context(), app.ClientOptions{
				ConfigPath: configPath(cmd),
				Addr:       addr,
				Preload:    preload,
			})
		},
	}
	cmd.Flags().StringP("addr", "a", "", "Coordinator address (overrides server.addr)")
	cmd.Flags().StringSliceP("preload", "p", nil, "Module ids to load before the first reload")
	return cmd
}
