package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
)

const jsonMIME = "application/json"

func (s *Server) listResources() map[string]any {
	return map[string]any{
		"resources": []resourceDescriptor{
			{URI: "f1://drivers", Name: "drivers", Description: "Summary of every F1 driver in the dataset", MIMEType: jsonMIME},
			{URI: "f1://teams", Name: "teams", Description: "Summary of every F1 team in the dataset", MIMEType: jsonMIME},
			{URI: "f1://circuits", Name: "circuits", Description: "Summary of every F1 circuit in the dataset", MIMEType: jsonMIME},
			{URI: "f1://stats/summary", Name: "stats-summary", Description: "Aggregate statistics across the whole dataset", MIMEType: jsonMIME},
		},
	}
}

func (s *Server) readResource(rawParams json.RawMessage) (any, *rpcError) {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(rawParams, &params); err != nil || params.URI == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "missing resource uri"}
	}

	payload, err := s.resourcePayload(params.URI)
	if err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: err.Error()}
	}

	text, merr := json.MarshalIndent(payload, "", "  ")
	if merr != nil {
		return nil, &rpcError{Code: codeInternalError, Message: "encode resource"}
	}
	return map[string]any{
		"contents": []resourceContents{{URI: params.URI, MIMEType: jsonMIME, Text: string(text)}},
	}, nil
}

func (s *Server) resourcePayload(uri string) (any, error) {
	snap := s.registry.Store.Current()

	switch uri {
	case "f1://drivers":
		list := make([]map[string]any, 0, snap.Drivers.Len())
		for _, id := range snap.Drivers.IDs() {
			d, _ := snap.Driver(id)
			list = append(list, map[string]any{
				"id":            id,
				"name":          d.Name,
				"nationality":   d.Nationality,
				"team":          d.Team,
				"championships": d.WorldChampionships,
			})
		}
		return map[string]any{"resource_type": "drivers_list", "count": len(list), "drivers": list}, nil

	case "f1://teams":
		list := make([]map[string]any, 0, snap.Teams.Len())
		for _, id := range snap.Teams.IDs() {
			rec, _ := snap.Team(id)
			list = append(list, map[string]any{
				"id":             id,
				"name":           rec.Name,
				"base":           rec.Base,
				"team_principal": rec.TeamPrincipal,
				"championships":  rec.ConstructorsChampionships,
			})
		}
		return map[string]any{"resource_type": "teams_list", "count": len(list), "teams": list}, nil

	case "f1://circuits":
		list := make([]map[string]any, 0, snap.Circuits.Len())
		for _, id := range snap.Circuits.IDs() {
			rec, _ := snap.Circuit(id)
			list = append(list, map[string]any{
				"id":        id,
				"name":      rec.Name,
				"location":  rec.Location,
				"length_km": rec.LengthKm,
			})
		}
		return map[string]any{"resource_type": "circuits_list", "count": len(list), "circuits": list}, nil

	case "f1://stats/summary":
		summary := map[string]any{
			"resource_type": "stats_summary",
			"drivers":       snap.Drivers.Len(),
			"teams":         snap.Teams.Len(),
			"circuits":      snap.Circuits.Len(),
		}
		var topDriver string
		var topTitles int
		for _, id := range snap.Drivers.IDs() {
			d, _ := snap.Driver(id)
			if topDriver == "" || d.WorldChampionships > topTitles {
				topDriver, topTitles = d.Name, d.WorldChampionships
			}
		}
		if topDriver != "" {
			summary["most_world_championships"] = map[string]any{"driver": topDriver, "count": topTitles}
		}
		return summary, nil
	}

	if rest, ok := strings.CutPrefix(uri, "f1://driver/"); ok {
		d, found := snap.Driver(rest)
		if !found {
			return map[string]any{
				"error":             fmt.Sprintf("Driver '%s' not found", rest),
				"available_drivers": snap.Drivers.IDs(),
			}, nil
		}
		return map[string]any{"resource_type": "driver_details", "driver_id": rest, "data": d}, nil
	}
	if rest, ok := strings.CutPrefix(uri, "f1://team/"); ok {
		rec, found := snap.Team(rest)
		if !found {
			return map[string]any{
				"error":           fmt.Sprintf("Team '%s' not found", rest),
				"available_teams": snap.Teams.IDs(),
			}, nil
		}
		return map[string]any{"resource_type": "team_details", "team_id": rest, "data": rec}, nil
	}
	if rest, ok := strings.CutPrefix(uri, "f1://circuit/"); ok {
		rec, found := snap.Circuit(rest)
		if !found {
			return map[string]any{
				"error":              fmt.Sprintf("Circuit '%s' not found", rest),
				"available_circuits": snap.Circuits.IDs(),
			}, nil
		}
		return map[string]any{"resource_type": "circuit_details", "circuit_id": rest, "data": rec}, nil
	}

	return nil, fmt.Errorf("unknown resource: %s", uri)
}
