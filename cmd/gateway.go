package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pitwall/pitwall/internal/channels"
	"github.com/pitwall/pitwall/internal/config"
	"github.com/pitwall/pitwall/internal/dependency"
)

var gatewayInteractive bool

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Start the pitwall gateway",
	Long: "Run the assistant as a long-lived service: the agent loop on the " +
		"message bus, the enabled chat channels and the scheduled jobs.",
	RunE: runGateway,
}

func init() {
	gatewayCmd.Flags().BoolVarP(&gatewayInteractive, "interactive", "i", false, "Also attach a CLI channel on this terminal")
}

func runGateway(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	container, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	snap := container.Store().Current()
	fmt.Printf("%s Starting pitwall gateway (%d drivers, %d teams, %d circuits)...\n",
		logo, snap.Drivers.Len(), snap.Teams.Len(), snap.Circuits.Len())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	channelMgr := channels.NewManager(cfg, container.MessageBus(), gatewayInteractive)
	if enabled := channelMgr.EnabledChannels(); len(enabled) > 0 {
		fmt.Printf("✓ Channels enabled: %s\n", strings.Join(enabled, ", "))
	} else {
		fmt.Println("Warning: no channels enabled")
	}
	if len(cfg.Jobs) > 0 {
		fmt.Printf("✓ Scheduled jobs: %d\n", len(cfg.Jobs))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return container.AgentLoop().Run(gctx) })
	g.Go(func() error { return container.CronService().Start(gctx) })
	g.Go(func() error { return channelMgr.StartAll(gctx) })

	fmt.Printf("%s Gateway running. Press Ctrl+C to stop.\n", logo)

	if err := g.Wait(); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "gateway error: %v\n", err)
		return err
	}
	fmt.Println("\nShutdown complete.")
	return nil
}
