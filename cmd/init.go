package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pitwall/pitwall/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and a starter dataset",
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	var cfg *config.Config
	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		cfg = existing
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		def := config.DefaultConfig()
		if err := config.Save(&def, cfgPath); err != nil {
			return err
		}
		cfg = &def
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	dataPath := cfg.DataPath()
	if _, err := os.Stat(dataPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		if err := os.WriteFile(dataPath, []byte(starterDataset), 0o644); err != nil {
			return fmt.Errorf("write dataset: %w", err)
		}
		fmt.Printf("✓ Created starter dataset at %s\n", dataPath)
	} else {
		fmt.Printf("Dataset already exists at %s\n", dataPath)
	}

	fmt.Printf("\n%s pitwall is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Printf("  1. Add your API key to %s\n", cfgPath)
	fmt.Printf("  2. Ask a question: pitwall chat pitwall serve\n")
	return nil
}

// starterDataset seeds a small set of current drivers, teams and circuits
// so the tools have something to answer with before the user supplies data.
const starterDataset = `{
  "drivers": {
    "max_verstappen": {
      "name": "Max Verstappen",
      "team": "Red Bull Racing",
      "nationality": "Dutch",
      "world_championships": 4,
      "race_wins": 63,
      "pole_positions": 40,
      "fastest_laps": 33,
      "current_points": 255
    },
    "lewis_hamilton": {
      "name": "Lewis Hamilton",
      "team": "Ferrari",
      "nationality": "British",
      "world_championships": 7,
      "race_wins": 105,
      "pole_positions": 104,
      "fastest_laps": 67,
      "current_points": 190
    },
    "charles_leclerc": {
      "name": "Charles Leclerc",
      "team": "Ferrari",
      "nationality": "Monegasque",
      "world_championships": 0,
      "race_wins": 8,
      "pole_positions": 26,
      "fastest_laps": 9,
      "current_points": 175
    },
    "lando_norris": {
      "name": "Lando Norris",
      "team": "McLaren",
      "nationality": "British",
      "world_championships": 0,
      "race_wins": 9,
      "pole_positions": 12,
      "fastest_laps": 13,
      "current_points": 230
    }
  },
  "teams": {
    "red_bull": {
      "name": "Red Bull Racing",
      "base": "Milton Keynes, United Kingdom",
      "team_principal": "Laurent Mekies",
      "constructors_championships": 6,
      "engine_supplier": "Honda RBPT",
      "founded": 2005
    },
    "ferrari": {
      "name": "Scuderia Ferrari",
      "base": "Maranello, Italy",
      "team_principal": "Frédéric Vasseur",
      "constructors_championships": 16,
      "engine_supplier": "Ferrari",
      "founded": 1950
    },
    "mclaren": {
      "name": "McLaren",
      "base": "Woking, United Kingdom",
      "team_principal": "Andrea Stella",
      "constructors_championships": 9,
      "engine_supplier": "Mercedes",
      "founded": 1966
    }
  },
  "circuits": {
    "monaco": {
      "name": "Circuit de Monaco",
      "location": "Monte Carlo, Monaco",
      "length_km": 3.337,
      "laps": 78,
      "lap_record": "1:12.909",
      "lap_record_holder": "Lewis Hamilton",
      "first_gp": 1950
    },
    "silverstone": {
      "name": "Silverstone Circuit",
      "location": "Silverstone, United Kingdom",
      "length_km": 5.891,
      "laps": 52,
      "lap_record": "1:27.097",
      "lap_record_holder": "Max Verstappen",
      "first_gp": 1950
    },
    "spa": {
      "name": "Circuit de Spa-Francorchamps",
      "location": "Stavelot, Belgium",
      "length_km": 7.004,
      "laps": 44,
      "lap_record": "1:46.286",
      "lap_record_holder": "Valtteri Bottas",
      "first_gp": 1950
    }
  }
}
`
