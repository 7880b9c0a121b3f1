// Package store owns the in-memory Formula 1 dataset: three tables loaded
// from a JSON document, swapped wholesale on reload, never mutated in place.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Driver is one entry in the drivers table.
type Driver struct {
	Name               string `json:"name"`
	Team               string `json:"team"`
	Nationality        string `json:"nationality"`
	WorldChampionships int    `json:"world_championships"`
	RaceWins           int    `json:"race_wins"`
	PolePositions      int    `json:"pole_positions"`
	FastestLaps        int    `json:"fastest_laps"`
	CurrentPoints      int    `json:"current_points"`
}

// Team is one entry in the teams table.
type Team struct {
	Name                      string `json:"name"`
	Base                      string `json:"base"`
	TeamPrincipal             string `json:"team_principal"`
	ConstructorsChampionships int    `json:"constructors_championships"`
	EngineSupplier            string `json:"engine_supplier"`
	Founded                   int    `json:"founded"`
}

// Circuit is one entry in the circuits table.
type Circuit struct {
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	LengthKm        float64 `json:"length_km"`
	Laps            int     `json:"laps"`
	LapRecord       string  `json:"lap_record"`
	LapRecordHolder string  `json:"lap_record_holder"`
	FirstGP         int     `json:"first_gp"`
}

// Table is an id → record mapping that remembers the order in which ids
// appeared in the source document. Go maps shuffle iteration order, but
// "valid identifiers" in error results must match the document's order.
type Table[T any] struct {
	ids     []string
	records map[string]T
}

// UnmarshalJSON decodes a JSON object into the table, preserving key order.
func (t *Table[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	t.ids = nil
	t.records = make(map[string]T)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var rec T
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("record %q: %w", key, err)
		}
		if _, dup := t.records[key]; !dup {
			t.ids = append(t.ids, key)
		}
		t.records[key] = rec
	}
	_, err = dec.Token() // closing '}'
	return err
}

// Get returns the record for id and whether it exists.
func (t *Table[T]) Get(id string) (T, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// IDs returns the table's identifiers in document order.
func (t *Table[T]) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Len returns the number of records in the table.
func (t *Table[T]) Len() int { return len(t.records) }

// Snapshot is the complete in-memory copy of the three tables at a point in
// time. A Snapshot is immutable once constructed; the Store replaces the
// whole value on reload.
type Snapshot struct {
	Drivers  Table[Driver]  `json:"drivers"`
	Teams    Table[Team]    `json:"teams"`
	Circuits Table[Circuit] `json:"circuits"`
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Drivers:  Table[Driver]{records: make(map[string]Driver)},
		Teams:    Table[Team]{records: make(map[string]Team)},
		Circuits: Table[Circuit]{records: make(map[string]Circuit)},
	}
}

// Driver returns the driver record for id.
func (s *Snapshot) Driver(id string) (Driver, bool) { return s.Drivers.Get(id) }

// Team returns the team record for id.
func (s *Snapshot) Team(id string) (Team, bool) { return s.Teams.Get(id) }

// Circuit returns the circuit record for id.
func (s *Snapshot) Circuit(id string) (Circuit, bool) { return s.Circuits.Get(id) }
