package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pitwall/pitwall/internal/store"
)

// ReloadStatus reports the outcome of a reload request.
type ReloadStatus struct {
	Reloaded bool   `json:"reloaded"`
	Drivers  int    `json:"drivers"`
	Teams    int    `json:"teams"`
	Circuits int    `json:"circuits"`
	Message  string `json:"message"`
}

// ReloadDataTool re-reads the dataset file and swaps in the fresh snapshot.
// With confirmation required, a call without confirm=true is a no-op that
// tells the caller how to proceed.
type ReloadDataTool struct {
	store          *store.Store
	present        Presenter
	requireConfirm bool
}

func NewReloadDataTool(st *store.Store, p Presenter, requireConfirm bool) *ReloadDataTool {
	return &ReloadDataTool{store: st, present: p, requireConfirm: requireConfirm}
}

func (t *ReloadDataTool) Name() string { return "reload_data" }
func (t *ReloadDataTool) Description() string {
	return "Reload the F1 dataset from disk, replacing the in-memory data with the file's current contents."
}

func (t *ReloadDataTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"confirm": {
				"type": "boolean",
				"description": "Set to true to confirm the reload"
			}
		}
	}`)
}

func (t *ReloadDataTool) Execute(_ context.Context, params map[string]any) (string, error) {
	confirm, _ := params["confirm"].(bool)
	if t.requireConfirm && !confirm {
		cur := t.store.Current()
		return t.present.Present(Ok(ReloadStatus{
			Drivers:  cur.Drivers.Len(),
			Teams:    cur.Teams.Len(),
			Circuits: cur.Circuits.Len(),
			Message:  "Reload not performed. Pass confirm=true to reload the dataset.",
		}))
	}

	snap := t.store.Reload()
	return t.present.Present(Ok(ReloadStatus{
		Reloaded: true,
		Drivers:  snap.Drivers.Len(),
		Teams:    snap.Teams.Len(),
		Circuits: snap.Circuits.Len(),
		Message: fmt.Sprintf("Data reloaded: %d drivers, %d teams, %d circuits.",
			snap.Drivers.Len(), snap.Teams.Len(), snap.Circuits.Len()),
	}))
}
