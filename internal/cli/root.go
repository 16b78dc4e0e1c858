// Package cli wires the roundtrip commands: the server, its migrations, and
// the upload/fetch clients.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "roundtrip",
		Short:        "Store one number over HTTP and read it back",
		SilenceUsage: true,
	}

	cmd.AddCommand(serveCmd(), migrateCmd(), uploadCmd(), fetchCmd())
	return cmd
}
