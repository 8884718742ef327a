package main

import (
	"os"

	"github.com/spf13/cobra"

	importercmd "supportarchive/internal/interfaces/cli/importer"
	piicmd "supportarchive/internal/interfaces/cli/pii"
	"supportarchive/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "supportarchive",
		Short: "Read-only support ticket archive",
		Long:  `Supportarchive serves a decommissioned helpdesk's tickets, knowledge base, and help articles, with offline tools to rebuild the stores and mask PII in exports.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		importercmd.NewCommand(),
		piicmd.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
