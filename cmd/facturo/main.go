package main

import (
	"os"

	"github.com/spf13/cobra"

	"facturo/internal/interfaces/cli/migrate"
	"facturo/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "facturo",
		Short: "Facturo - entitlement and quota service",
		Long:  `Facturo enforces per-plan resource quotas for multi-tenant billing platforms, with a server and migration tooling.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
