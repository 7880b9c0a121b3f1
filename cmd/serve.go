package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pitwall/pitwall/internal/config"
	"github.com/pitwall/pitwall/internal/mcp"
	"github.com/pitwall/pitwall/internal/store"
	"github.com/pitwall/pitwall/internal/tools"
)

var (
	serveDataPath string
	serveText     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	Long: "Run the F1 dataset as an MCP server speaking line-delimited " +
		"JSON-RPC on stdin/stdout. Diagnostics go to stderr.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveDataPath, "data", "", "Path to the dataset JSON file (overrides config)")
	serveCmd.Flags().BoolVar(&serveText, "text", false, "Render tool results as text blocks instead of JSON")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dataPath := cfg.DataPath()
	if serveDataPath != "" {
		dataPath = serveDataPath
	}

	st := store.Open(dataPath)

	var presenter tools.Presenter = tools.JSONPresenter{}
	if serveText {
		presenter = tools.TextPresenter{}
	}
	registry := tools.NewRegistry(st, presenter, cfg.Data.RequireReloadConfirm)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mcp.NewServer(&mcp.Registry{Tools: registry, Store: st}, version, os.Stdin, os.Stdout)
	return srv.Serve(ctx)
}
