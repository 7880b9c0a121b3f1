package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pitwall/pitwall/internal/store"
)

// GetDriverTool looks up one driver record by identifier.
type GetDriverTool struct {
	store   *store.Store
	present Presenter
}

func NewGetDriverTool(st *store.Store, p Presenter) *GetDriverTool {
	return &GetDriverTool{store: st, present: p}
}

func (t *GetDriverTool) Name() string { return "get_driver" }
func (t *GetDriverTool) Description() string {
	return "Get detailed information about an F1 driver: team, nationality, championships, wins, poles, fastest laps, points."
}

func (t *GetDriverTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"driver_id": {
				"type": "string",
				"description": "Driver identifier (e.g. 'max_verstappen', 'lewis_hamilton')"
			}
		},
		"required": ["driver_id"]
	}`)
}

func (t *GetDriverTool) Execute(_ context.Context, params map[string]any) (string, error) {
	id, _ := params["driver_id"].(string)
	snap := t.store.Current()
	d, ok := snap.Driver(id)
	if !ok {
		return t.present.Present(NotFound(fmt.Sprintf("Driver %q not found.", id), snap.Drivers.IDs()))
	}
	return t.present.Present(Ok(d))
}

// GetTeamTool looks up one team record by identifier.
type GetTeamTool struct {
	store   *store.Store
	present Presenter
}

func NewGetTeamTool(st *store.Store, p Presenter) *GetTeamTool {
	return &GetTeamTool{store: st, present: p}
}

func (t *GetTeamTool) Name() string { return "get_team" }
func (t *GetTeamTool) Description() string {
	return "Get detailed information about an F1 team: base, principal, constructors' championships, engine supplier, founding year."
}

func (t *GetTeamTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"team_id": {
				"type": "string",
				"description": "Team identifier (e.g. 'red_bull', 'ferrari', 'mercedes')"
			}
		},
		"required": ["team_id"]
	}`)
}

func (t *GetTeamTool) Execute(_ context.Context, params map[string]any) (string, error) {
	id, _ := params["team_id"].(string)
	snap := t.store.Current()
	rec, ok := snap.Team(id)
	if !ok {
		return t.present.Present(NotFound(fmt.Sprintf("Team %q not found.", id), snap.Teams.IDs()))
	}
	return t.present.Present(Ok(rec))
}

// GetCircuitTool looks up one circuit record by identifier.
type GetCircuitTool struct {
	store   *store.Store
	present Presenter
}

func NewGetCircuitTool(st *store.Store, p Presenter) *GetCircuitTool {
	return &GetCircuitTool{store: st, present: p}
}

func (t *GetCircuitTool) Name() string { return "get_circuit" }
func (t *GetCircuitTool) Description() string {
	return "Get detailed information about an F1 circuit: location, length, lap count, lap record, first grand prix."
}

func (t *GetCircuitTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"circuit_id": {
				"type": "string",
				"description": "Circuit identifier (e.g. 'monaco', 'silverstone')"
			}
		},
		"required": ["circuit_id"]
	}`)
}

func (t *GetCircuitTool) Execute(_ context.Context, params map[string]any) (string, error) {
	id, _ := params["circuit_id"].(string)
	snap := t.store.Current()
	rec, ok := snap.Circuit(id)
	if !ok {
		return t.present.Present(NotFound(fmt.Sprintf("Circuit %q not found.", id), snap.Circuits.IDs()))
	}
	return t.present.Present(Ok(rec))
}
