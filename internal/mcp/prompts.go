package mcp

import (
	"encoding/json"
	"fmt"
	"strings"
)

func (s *Server) listPrompts() map[string]any {
	return map[string]any{
		"prompts": []promptDescriptor{
			{
				Name:        "compare_drivers",
				Description: "Build a head-to-head comparison prompt for two drivers",
				Arguments: []promptArgument{
					{Name: "driver1_id", Description: "First driver identifier", Required: true},
					{Name: "driver2_id", Description: "Second driver identifier", Required: true},
				},
			},
		},
	}
}

func (s *Server) getPrompt(rawParams json.RawMessage) (any, *rpcError) {
	var params struct {
		Name      string            `json:"name"`
		Arguments map[string]string `json:"arguments"`
	}
	if err := json.Unmarshal(rawParams, &params); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "invalid prompts/get params"}
	}
	if params.Name != "compare_drivers" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "unknown prompt: " + params.Name}
	}

	text := s.comparePromptText(params.Arguments["driver1_id"], params.Arguments["driver2_id"])
	return map[string]any{
		"description": "Head-to-head driver comparison",
		"messages": []promptMessage{
			{Role: "user", Content: contentBlock{Type: "text", Text: text}},
		},
	}, nil
}

func (s *Server) comparePromptText(id1, id2 string) string {
	snap := s.registry.Store.Current()
	d1, ok1 := snap.Driver(id1)
	d2, ok2 := snap.Driver(id2)
	if !ok1 || !ok2 {
		return fmt.Sprintf("Error: Use these IDs: %s", strings.Join(snap.Drivers.IDs(), ", "))
	}

	return fmt.Sprintf(`Compare these two F1 drivers:

**%s** vs **%s**

Driver 1: %s (%s)
- Championships: %d
- Wins: %d
- Poles: %d

Driver 2: %s (%s)
- Championships: %d
- Wins: %d
- Poles: %d

Who is better and why?`,
		d1.Name, d2.Name,
		d1.Name, d1.Team, d1.WorldChampionships, d1.RaceWins, d1.PolePositions,
		d2.Name, d2.Team, d2.WorldChampionships, d2.RaceWins, d2.PolePositions)
}
