package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "property-forecast",
		Short:        "Project rental property returns and compare housing markets",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(marketsCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(serveCmd())

	return rootCmd
}
