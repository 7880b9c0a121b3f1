package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleData = `{
  "drivers": {
    "max_verstappen": {
      "name": "Max Verstappen", "team": "Red Bull Racing", "nationality": "Dutch",
      "world_championships": 4, "race_wins": 63, "pole_positions": 40,
      "fastest_laps": 33, "current_points": 437
    },
    "lewis_hamilton": {
      "name": "Lewis Hamilton", "team": "Ferrari", "nationality": "British",
      "world_championships": 7, "race_wins": 105, "pole_positions": 104,
      "fastest_laps": 67, "current_points": 223
    },
    "charles_leclerc": {
      "name": "Charles Leclerc", "team": "Ferrari", "nationality": "Monegasque",
      "world_championships": 0, "race_wins": 8, "pole_positions": 26,
      "fastest_laps": 9, "current_points": 356
    }
  },
  "teams": {
    "red_bull": {
      "name": "Red Bull Racing", "base": "Milton Keynes, UK",
      "team_principal": "Laurent Mekies", "constructors_championships": 6,
      "engine_supplier": "Honda RBPT", "founded": 2005
    },
    "ferrari": {
      "name": "Scuderia Ferrari", "base": "Maranello, Italy",
      "team_principal": "Frédéric Vasseur", "constructors_championships": 16,
      "engine_supplier": "Ferrari", "founded": 1950
    }
  },
  "circuits": {
    "monaco": {
      "name": "Circuit de Monaco", "location": "Monte Carlo, Monaco",
      "length_km": 3.337, "laps": 78, "lap_record": "1:12.909",
      "lap_record_holder": "Lewis Hamilton", "first_gp": 1950
    },
    "silverstone": {
      "name": "Silverstone Circuit", "location": "Silverstone, UK",
      "length_km": 5.891, "laps": 52, "lap_record": "1:27.097",
      "lap_record_holder": "Max Verstappen", "first_gp": 1950
    }
  }
}`

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "f1_data.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write data file: %v", err)
	}
	return path
}

func TestOpen_LoadsTables(t *testing.T) {
	s := Open(writeData(t, sampleData))
	snap := s.Current()

	if got := snap.Drivers.Len(); got != 3 {
		t.Fatalf("expected 3 drivers, got %d", got)
	}
	if got := snap.Teams.Len(); got != 2 {
		t.Fatalf("expected 2 teams, got %d", got)
	}
	if got := snap.Circuits.Len(); got != 2 {
		t.Fatalf("expected 2 circuits, got %d", got)
	}

	d, ok := snap.Driver("lewis_hamilton")
	if !ok {
		t.Fatal("lewis_hamilton missing")
	}
	if d.Name != "Lewis Hamilton" || d.WorldChampionships != 7 || d.RaceWins != 105 {
		t.Errorf("unexpected record: %+v", d)
	}

	c, ok := snap.Circuit("monaco")
	if !ok {
		t.Fatal("monaco missing")
	}
	if c.LengthKm != 3.337 || c.Laps != 78 {
		t.Errorf("unexpected record: %+v", c)
	}
}

func TestOpen_PreservesDocumentOrder(t *testing.T) {
	s := Open(writeData(t, sampleData))
	snap := s.Current()

	wantDrivers := []string{"max_verstappen", "lewis_hamilton", "charles_leclerc"}
	if got := snap.Drivers.IDs(); !reflect.DeepEqual(got, wantDrivers) {
		t.Errorf("driver ids = %v, want %v", got, wantDrivers)
	}
	wantTeams := []string{"red_bull", "ferrari"}
	if got := snap.Teams.IDs(); !reflect.DeepEqual(got, wantTeams) {
		t.Errorf("team ids = %v, want %v", got, wantTeams)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope.json"))
	snap := s.Current()
	if snap.Drivers.Len() != 0 || snap.Teams.Len() != 0 || snap.Circuits.Len() != 0 {
		t.Errorf("expected empty snapshot, got %d/%d/%d drivers/teams/circuits",
			snap.Drivers.Len(), snap.Teams.Len(), snap.Circuits.Len())
	}
	if ids := snap.Drivers.IDs(); len(ids) != 0 {
		t.Errorf("expected no ids, got %v", ids)
	}
}

func TestOpen_MalformedFile(t *testing.T) {
	s := Open(writeData(t, "{not json"))
	snap := s.Current()
	if snap.Drivers.Len() != 0 {
		t.Errorf("expected empty snapshot, got %d drivers", snap.Drivers.Len())
	}
}

func TestReload_SwapsSnapshot(t *testing.T) {
	path := writeData(t, sampleData)
	s := Open(path)
	before := s.Current()

	updated := `{"drivers": {"max_verstappen": {"name": "Max Verstappen", "world_championships": 5}}, "teams": {}, "circuits": {}}`
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatal(err)
	}

	after := s.Reload()
	if after == before {
		t.Fatal("reload returned the same snapshot pointer")
	}
	if after != s.Current() {
		t.Fatal("Current does not return reloaded snapshot")
	}
	d, ok := after.Driver("max_verstappen")
	if !ok || d.WorldChampionships != 5 {
		t.Errorf("reloaded record not visible: %+v (ok=%v)", d, ok)
	}
	// Old snapshot remains intact for readers still holding it.
	if before.Drivers.Len() != 3 {
		t.Errorf("old snapshot mutated: %d drivers", before.Drivers.Len())
	}
}

func TestReload_Idempotent(t *testing.T) {
	path := writeData(t, sampleData)
	s := Open(path)

	first := s.Reload()
	second := s.Reload()
	if !reflect.DeepEqual(first.Drivers.IDs(), second.Drivers.IDs()) {
		t.Errorf("reload not idempotent: %v vs %v", first.Drivers.IDs(), second.Drivers.IDs())
	}
	d1, _ := first.Driver("max_verstappen")
	d2, _ := second.Driver("max_verstappen")
	if d1 != d2 {
		t.Errorf("reload not idempotent: %+v vs %+v", d1, d2)
	}
}
