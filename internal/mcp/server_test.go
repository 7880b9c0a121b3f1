package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pitwall/pitwall/internal/store"
	"github.com/pitwall/pitwall/internal/tools"
)

const testData = `{
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
    }
  },
  "teams": {
    "red_bull": {
      "name": "Red Bull Racing",
      "base": "Milton Keynes, UK",
      "team_principal": "Laurent Mekies",
      "constructors_championships": 6,
      "engine_supplier": "Honda RBPT",
      "founded": 2005
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
    }
  }
}`

// roundTrip feeds newline-delimited requests to a fresh server and returns
// the decoded response lines.
func roundTrip(t *testing.T, requests ...string) []map[string]any {
	t.Helper()

	path := filepath.Join(t.TempDir(), "f1_data.json")
	if err := os.WriteFile(path, []byte(testData), 0o644); err != nil {
		t.Fatalf("write test data: %v", err)
	}
	st := store.Open(path)
	reg := &Registry{
		Tools: tools.NewRegistry(st, tools.JSONPresenter{}, false),
		Store: st,
	}

	in := strings.NewReader(strings.Join(requests, "\n") + "\n")
	var out bytes.Buffer
	srv := NewServer(reg, "test", in, &out)
	if err := srv.Serve(context.Background()); err != nil {
		t.Fatalf("serve: %v", err)
	}

	var responses []map[string]any
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("bad response line %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}
	return responses
}

func result(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	if errObj, ok := resp["error"]; ok {
		t.Fatalf("unexpected rpc error: %v", errObj)
	}
	res, ok := resp["result"].(map[string]any)
	if !ok {
		t.Fatalf("missing result in %v", resp)
	}
	return res
}

func TestServe_Initialize(t *testing.T) {
	resps := roundTrip(t,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	)
	if len(resps) != 2 {
		t.Fatalf("got %d responses, want 2 (notification must be silent)", len(resps))
	}

	init := result(t, resps[0])
	if init["protocolVersion"] != protocolVersion {
		t.Fatalf("protocolVersion = %v", init["protocolVersion"])
	}
	info, _ := init["serverInfo"].(map[string]any)
	if info["name"] != "pitwall" {
		t.Fatalf("serverInfo = %v", info)
	}
}

func TestServe_ToolsList(t *testing.T) {
	resps := roundTrip(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	res := result(t, resps[0])
	list, _ := res["tools"].([]any)
	if len(list) != 6 {
		t.Fatalf("got %d tools, want 6", len(list))
	}
	names := map[string]bool{}
	for _, raw := range list {
		tool := raw.(map[string]any)
		names[tool["name"].(string)] = true
		if _, ok := tool["inputSchema"].(map[string]any); !ok {
			t.Fatalf("tool %v missing inputSchema", tool["name"])
		}
	}
	for _, want := range []string{"get_driver", "get_team", "get_circuit", "compare_drivers", "list_all", "reload_data"} {
		if !names[want] {
			t.Fatalf("tool %q missing from list", want)
		}
	}
}

func TestServe_ToolsCall(t *testing.T) {
	resps := roundTrip(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_driver","arguments":{"driver_id":"max_verstappen"}}}`,
	)

	res := result(t, resps[0])
	if res["isError"] == true {
		t.Fatalf("unexpected tool error: %v", res)
	}
	content, _ := res["content"].([]any)
	if len(content) != 1 {
		t.Fatalf("content = %v", content)
	}
	block := content[0].(map[string]any)
	if block["type"] != "text" || !strings.Contains(block["text"].(string), "Max Verstappen") {
		t.Fatalf("block = %v", block)
	}
}

func TestServe_ToolsCall_UnknownTool(t *testing.T) {
	resps := roundTrip(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_engine","arguments":{}}}`,
	)

	res := result(t, resps[0])
	if res["isError"] != true {
		t.Fatalf("expected isError, got %v", res)
	}
}

func TestServe_ToolsCall_UnknownID(t *testing.T) {
	resps := roundTrip(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"get_driver","arguments":{"driver_id":"nope"}}}`,
	)

	// A failed lookup is a successful tool call carrying an error payload.
	res := result(t, resps[0])
	if res["isError"] == true {
		t.Fatalf("lookup miss must not set isError: %v", res)
	}
	content, _ := res["content"].([]any)
	text := content[0].(map[string]any)["text"].(string)
	if !strings.Contains(text, "max_verstappen") {
		t.Fatalf("expected valid ids in %q", text)
	}
}

func TestServe_ResourcesRead(t *testing.T) {
	resps := roundTrip(t,
		`{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"f1://drivers"}}`,
		`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"f1://driver/lewis_hamilton"}}`,
		`{"jsonrpc":"2.0","id":3,"method":"resources/read","params":{"uri":"f1://nonsense"}}`,
	)

	res := result(t, resps[0])
	contents, _ := res["contents"].([]any)
	text := contents[0].(map[string]any)["text"].(string)
	var listing struct {
		Count   int `json:"count"`
		Drivers []struct {
			ID string `json:"id"`
		} `json:"drivers"`
	}
	if err := json.Unmarshal([]byte(text), &listing); err != nil {
		t.Fatalf("unmarshal listing: %v", err)
	}
	if listing.Count != 2 || listing.Drivers[0].ID != "max_verstappen" {
		t.Fatalf("listing = %+v", listing)
	}

	res = result(t, resps[1])
	contents, _ = res["contents"].([]any)
	text = contents[0].(map[string]any)["text"].(string)
	if !strings.Contains(text, "driver_details") || !strings.Contains(text, "Lewis Hamilton") {
		t.Fatalf("detail text = %q", text)
	}

	if _, ok := resps[2]["error"]; !ok {
		t.Fatalf("expected error for unknown uri, got %v", resps[2])
	}
}

func TestServe_Prompts(t *testing.T) {
	resps := roundTrip(t,
		`{"jsonrpc":"2.0","id":1,"method":"prompts/list"}`,
		`{"jsonrpc":"2.0","id":2,"method":"prompts/get","params":{"name":"compare_drivers","arguments":{"driver1_id":"max_verstappen","driver2_id":"lewis_hamilton"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"prompts/get","params":{"name":"compare_drivers","arguments":{"driver1_id":"max_verstappen","driver2_id":"nope"}}}`,
	)

	res := result(t, resps[0])
	prompts, _ := res["prompts"].([]any)
	if len(prompts) != 1 || prompts[0].(map[string]any)["name"] != "compare_drivers" {
		t.Fatalf("prompts = %v", prompts)
	}

	res = result(t, resps[1])
	msgs, _ := res["messages"].([]any)
	text := msgs[0].(map[string]any)["content"].(map[string]any)["text"].(string)
	if !strings.Contains(text, "Max Verstappen") || !strings.Contains(text, "Who is better and why?") {
		t.Fatalf("prompt text = %q", text)
	}

	res = result(t, resps[2])
	msgs, _ = res["messages"].([]any)
	text = msgs[0].(map[string]any)["content"].(map[string]any)["text"].(string)
	if !strings.Contains(text, "Error: Use these IDs") {
		t.Fatalf("prompt text = %q", text)
	}
}

func TestServe_MalformedLineAndUnknownMethod(t *testing.T) {
	resps := roundTrip(t,
		`this is not json`,
		`{"jsonrpc":"2.0","id":7,"method":"no/such/method"}`,
	)
	if len(resps) != 2 {
		t.Fatalf("got %d responses, want 2", len(resps))
	}

	errObj, _ := resps[0]["error"].(map[string]any)
	if errObj == nil || errObj["code"].(float64) != codeParseError {
		t.Fatalf("resp = %v", resps[0])
	}

	errObj, _ = resps[1]["error"].(map[string]any)
	if errObj == nil || errObj["code"].(float64) != codeMethodNotFound {
		t.Fatalf("resp = %v", resps[1])
	}
}
