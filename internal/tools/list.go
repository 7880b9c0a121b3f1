package tools

import (
	"context"
	"encoding/json"

	"github.com/pitwall/pitwall/internal/store"
)

// Listing enumerates every known identifier, grouped by entity, in the
// dataset's stored order.
type Listing struct {
	Drivers  []string `json:"drivers"`
	Teams    []string `json:"teams"`
	Circuits []string `json:"circuits"`
}

// ListAllTool reports every identifier across all three tables.
type ListAllTool struct {
	store   *store.Store
	present Presenter
}

func NewListAllTool(st *store.Store, p Presenter) *ListAllTool {
	return &ListAllTool{store: st, present: p}
}

func (t *ListAllTool) Name() string { return "list_all" }
func (t *ListAllTool) Description() string {
	return "List every available driver, team and circuit identifier."
}

func (t *ListAllTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {}
	}`)
}

func (t *ListAllTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	snap := t.store.Current()
	return t.present.Present(Ok(Listing{
		Drivers:  snap.Drivers.IDs(),
		Teams:    snap.Teams.IDs(),
		Circuits: snap.Circuits.IDs(),
	}))
}
