package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pitwall/pitwall/internal/store"
)

// Presenter turns a Result into the string payload handed back to the
// caller. Structured JSON is the canonical form; the text presenter layers
// pre-rendered blocks on top of the same payloads.
type Presenter interface {
	Present(r Result) (string, error)
}

// JSONPresenter renders results as indented JSON.
type JSONPresenter struct{}

func (JSONPresenter) Present(r Result) (string, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(b), nil
}

// TextPresenter renders results as human-readable text blocks.
type TextPresenter struct{}

func (TextPresenter) Present(r Result) (string, error) {
	if r.Failed() {
		msg := r.ErrMsg
		if len(r.Available) > 0 {
			msg += " Available: " + strings.Join(r.Available, ", ")
		}
		return msg, nil
	}

	switch v := r.Data.(type) {
	case store.Driver:
		return fmt.Sprintf(`Driver: %s
Team: %s
Nationality: %s
World Championships: %d
Race Wins: %d
Pole Positions: %d
Fastest Laps: %d
Current Points: %d`,
			v.Name, v.Team, v.Nationality, v.WorldChampionships,
			v.RaceWins, v.PolePositions, v.FastestLaps, v.CurrentPoints), nil

	case store.Team:
		return fmt.Sprintf(`Team: %s
Base: %s
Team Principal: %s
Constructors Championships: %d
Engine Supplier: %s
Founded: %d`,
			v.Name, v.Base, v.TeamPrincipal, v.ConstructorsChampionships,
			v.EngineSupplier, v.Founded), nil

	case store.Circuit:
		return fmt.Sprintf(`Circuit: %s
Location: %s
Length: %g km
Race Laps: %d
Lap Record: %s by %s
First GP: %d`,
			v.Name, v.Location, v.LengthKm, v.Laps,
			v.LapRecord, v.LapRecordHolder, v.FirstGP), nil

	case Comparison:
		return renderComparison(v), nil

	case Listing:
		return fmt.Sprintf("Drivers: %s\n\nTeams: %s\n\nCircuits: %s",
			strings.Join(v.Drivers, ", "),
			strings.Join(v.Teams, ", "),
			strings.Join(v.Circuits, ", ")), nil

	case ReloadStatus:
		return v.Message, nil
	}

	// Payloads without a dedicated rendering fall back to JSON.
	return JSONPresenter{}.Present(r)
}

func renderComparison(c Comparison) string {
	line := func(label string, s StatResult) string {
		switch s.Winner {
		case winnerDriver1:
			return fmt.Sprintf("%s: %s (%d vs %d)", label, c.Driver1, s.Driver1, s.Driver2)
		case winnerDriver2:
			return fmt.Sprintf("%s: %s (%d vs %d)", label, c.Driver2, s.Driver2, s.Driver1)
		default:
			return fmt.Sprintf("%s: Equal (%d)", label, s.Driver1)
		}
	}
	return fmt.Sprintf(`%s vs %s

%s
%s
%s
%s`,
		c.Driver1, c.Driver2,
		line("World Championships", c.Stats.WorldChampionships),
		line("Race Wins", c.Stats.RaceWins),
		line("Pole Positions", c.Stats.PolePositions),
		line("Fastest Laps", c.Stats.FastestLaps))
}
