// Package cmd implements the pitwall CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🏎️"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "pitwall",
	Short: logo + " pitwall — Formula 1 data assistant",
	Long: logo + " pitwall — an F1 dataset served as MCP tools, with an LLM " +
		"assistant that answers questions through them",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(gatewayCmd)
	rootCmd.AddCommand(statusCmd)
}
