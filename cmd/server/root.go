package main

import (
	"os"

	"github.com/anonto42/book-hearts/backend/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "book-hearts API server",
	Example: `server serve
server migrate`,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads configuration and sets up logging; every command starts here.
func loadConfig() *config.Config {
	cfg := config.Load()
	config.SetupLogger(cfg)
	return cfg
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
