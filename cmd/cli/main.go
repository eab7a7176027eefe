package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultHost = "http://localhost:8080"

var (
	host   string
	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "evenings-cli",
	Short: "A CLI to interact with the club-evenings server",
	Long: `A command-line interface for running club evenings through the
HTTP API of the club-evenings server.

The server address defaults to $EVENINGS_HOST when set.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", hostFromEnv(), "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Ask the server not to persist or notify")
}

func hostFromEnv() string {
	if h := os.Getenv("EVENINGS_HOST"); h != "" {
		return h
	}
	return defaultHost
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "evenings-cli: %v\n", err)
		os.Exit(1)
	}
}
