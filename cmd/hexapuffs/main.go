// Command hexapuffs runs the LinkedIn MCP server on stdio.
//
// All logging goes to stderr so it never corrupts the JSON-RPC stdio
// channel. Configuration is read once from LINKEDIN_* environment variables;
// missing credentials abort startup.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hexapuffs "github.com/cwikio/Hexa-Puffs"
	"github.com/cwikio/Hexa-Puffs/config"
	"github.com/cwikio/Hexa-Puffs/logging"
)

func main() {
	root := &cobra.Command{
		Use:           "hexapuffs",
		Short:         "LinkedIn MCP server",
		Version:       hexapuffs.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hexapuffs:", err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP protocol on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := logging.NewSlogLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, false)

			srv, err := hexapuffs.New(func(o *hexapuffs.Options) {
				o.Config = cfg
				o.Logger = logger
			})
			if err != nil {
				return err
			}

			logger.Info("starting MCP server on stdio", "version", hexapuffs.Version)
			return srv.ServeStdio()
		},
	}
}
