package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pitwall/pitwall/internal/store"
)

const (
	winnerDriver1 = "driver1"
	winnerDriver2 = "driver2"
	winnerEqual   = "equal"
)

// StatResult holds one head-to-head statistic with both raw values.
type StatResult struct {
	Winner  string `json:"winner"`
	Driver1 int    `json:"driver1"`
	Driver2 int    `json:"driver2"`
}

// ComparisonStats covers the career statistics compared between two drivers.
type ComparisonStats struct {
	WorldChampionships StatResult `json:"world_championships"`
	RaceWins           StatResult `json:"race_wins"`
	PolePositions      StatResult `json:"pole_positions"`
	FastestLaps        StatResult `json:"fastest_laps"`
}

// Comparison is the payload produced by CompareDriversTool.
type Comparison struct {
	Driver1 string          `json:"driver1"`
	Driver2 string          `json:"driver2"`
	Stats   ComparisonStats `json:"stats"`
}

func compareStat(a, b int) StatResult {
	r := StatResult{Driver1: a, Driver2: b}
	switch {
	case a > b:
		r.Winner = winnerDriver1
	case b > a:
		r.Winner = winnerDriver2
	default:
		r.Winner = winnerEqual
	}
	return r
}

// CompareDriversTool compares two drivers across their career statistics.
type CompareDriversTool struct {
	store   *store.Store
	present Presenter
}

func NewCompareDriversTool(st *store.Store, p Presenter) *CompareDriversTool {
	return &CompareDriversTool{store: st, present: p}
}

func (t *CompareDriversTool) Name() string { return "compare_drivers" }
func (t *CompareDriversTool) Description() string {
	return "Compare two F1 drivers head to head on championships, race wins, pole positions and fastest laps."
}

func (t *CompareDriversTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"driver1_id": {
				"type": "string",
				"description": "First driver identifier"
			},
			"driver2_id": {
				"type": "string",
				"description": "Second driver identifier"
			}
		},
		"required": ["driver1_id", "driver2_id"]
	}`)
}

func (t *CompareDriversTool) Execute(_ context.Context, params map[string]any) (string, error) {
	id1, _ := params["driver1_id"].(string)
	id2, _ := params["driver2_id"].(string)
	snap := t.store.Current()

	var missing []string
	d1, ok1 := snap.Driver(id1)
	if !ok1 {
		missing = append(missing, id1)
	}
	d2, ok2 := snap.Driver(id2)
	if !ok2 {
		missing = append(missing, id2)
	}
	if len(missing) > 0 {
		msg := fmt.Sprintf("Driver(s) not found: %s.", strings.Join(missing, ", "))
		return t.present.Present(NotFound(msg, snap.Drivers.IDs()))
	}

	cmp := Comparison{
		Driver1: d1.Name,
		Driver2: d2.Name,
		Stats: ComparisonStats{
			WorldChampionships: compareStat(d1.WorldChampionships, d2.WorldChampionships),
			RaceWins:           compareStat(d1.RaceWins, d2.RaceWins),
			PolePositions:      compareStat(d1.PolePositions, d2.PolePositions),
			FastestLaps:        compareStat(d1.FastestLaps, d2.FastestLaps),
		},
	}
	return t.present.Present(Ok(cmp))
}
