package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pitwall/pitwall/internal/config"
	"github.com/pitwall/pitwall/internal/providers"
	"github.com/pitwall/pitwall/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pitwall status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Printf("%s pitwall Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:  %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	dataPath := cfg.DataPath()
	if _, err := os.Stat(dataPath); err != nil {
		fmt.Printf("Dataset: %s ✗ (run 'pitwall init')\n", dataPath)
	} else {
		snap := store.Open(dataPath).Current()
		fmt.Printf("Dataset: %s ✓ (%d drivers, %d teams, %d circuits)\n",
			dataPath, snap.Drivers.Len(), snap.Teams.Len(), snap.Circuits.Len())
	}
	fmt.Printf("Model:   %s\n\n", cfg.Agents.Defaults.Model)

	fmt.Println("Providers:")
	for _, spec := range providers.PROVIDERS {
		p := cfg.ProviderByName(spec.Name)
		if p == nil {
			continue
		}
		label := spec.Label()
		if p.APIKey != "" {
			fmt.Printf("  %-20s ✓\n", label)
		} else {
			fmt.Printf("  %-20s (not set)\n", label)
		}
	}

	fmt.Println("\nChannels:")
	fmt.Printf("  %-20s %s\n", "Telegram", enabledMark(cfg.Channels.Telegram.Enabled))
	fmt.Printf("  %-20s %s\n", "Slack", enabledMark(cfg.Channels.Slack.Enabled))

	if len(cfg.Jobs) > 0 {
		fmt.Println("\nScheduled jobs:")
		for _, job := range cfg.Jobs {
			fmt.Printf("  %-20s %s (%s)\n", job.Name, job.Schedule, job.Kind)
		}
	}
	return nil
}

func enabledMark(on bool) string {
	if on {
		return "✓ enabled"
	}
	return "(disabled)"
}
