package providers

import (
	"testing"

	"github.com/pitwall/pitwall/internal/schema"
)

func TestFindByModel(t *testing.T) {
	cases := []struct {
		model string
		want  string
	}{
		{"claude-sonnet-4-20250514", "anthropic"},
		{"anthropic/claude-3-5-haiku", "anthropic"},
		{"gpt-4o-mini", "openai"},
		{"deepseek-chat", "deepseek"},
		{"groq/llama-3.3-70b", "groq"},
	}
	for _, tc := range cases {
		spec := FindByModel(tc.model)
		if spec == nil {
			t.Fatalf("FindByModel(%q) = nil", tc.model)
		}
		if spec.Name != tc.want {
			t.Fatalf("FindByModel(%q) = %q, want %q", tc.model, spec.Name, tc.want)
		}
	}
	if spec := FindByModel("totally-unknown-model"); spec != nil {
		t.Fatalf("FindByModel(unknown) = %q, want nil", spec.Name)
	}
}

func TestFindGateway(t *testing.T) {
	if g := FindGateway("", "sk-or-v1-abc", ""); g == nil || g.Name != "openrouter" {
		t.Fatalf("key-prefix detection failed: %v", g)
	}
	if g := FindGateway("", "", "https://openrouter.ai/api/v1"); g == nil || g.Name != "openrouter" {
		t.Fatalf("base-keyword detection failed: %v", g)
	}
	if g := FindGateway("anthropic", "sk-ant-abc", ""); g != nil {
		t.Fatalf("standard provider detected as gateway: %v", g)
	}
}

func TestResolveModel(t *testing.T) {
	direct := NewOpenAIProvider("sk-abc", "", "deepseek/deepseek-chat", "", nil)
	if got := direct.resolveModel("deepseek/deepseek-chat"); got != "deepseek-chat" {
		t.Fatalf("resolveModel = %q, want deepseek-chat", got)
	}

	gateway := NewOpenAIProvider("sk-or-v1-abc", "", "openrouter/anthropic/claude-sonnet-4", "", nil)
	if got := gateway.resolveModel("openrouter/anthropic/claude-sonnet-4"); got != "anthropic/claude-sonnet-4" {
		t.Fatalf("gateway resolveModel = %q", got)
	}
}

func TestAnthropicDetection(t *testing.T) {
	p := NewOpenAIProvider("sk-ant-abc", "", "claude-sonnet-4", "anthropic", nil)
	if !p.isAnthropic {
		t.Fatal("anthropic provider name must select the Messages API path")
	}
	if p.apiBase != "https://api.anthropic.com/v1" {
		t.Fatalf("apiBase = %q", p.apiBase)
	}

	p = NewOpenAIProvider("sk-abc", "", "gpt-4o", "openai", nil)
	if p.isAnthropic {
		t.Fatal("openai provider must not select the Messages API path")
	}
}

func TestParseOpenAIResponse_ToolCalls(t *testing.T) {
	raw := []byte(`{
		"choices": [{
			"message": {
				"content": null,
				"tool_calls": [{
					"id": "call_1",
					"function": {"name": "get_driver", "arguments": "{\"driver_id\":\"max_verstappen\"}"}
				}]
			},
			"finish_reason": "tool_calls"
		}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`)

	resp, err := parseOpenAIResponse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !resp.HasToolCalls() {
		t.Fatal("expected tool calls")
	}
	tc := resp.ToolCalls[0]
	if tc.ID != "call_1" || tc.Name != "get_driver" {
		t.Fatalf("tool call = %+v", tc)
	}
	if tc.Arguments["driver_id"] != "max_verstappen" {
		t.Fatalf("arguments = %v", tc.Arguments)
	}
	if resp.FinishReason != "tool_calls" || resp.Usage["total_tokens"] != 15 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestParseOpenAIResponse_Text(t *testing.T) {
	raw := []byte(`{
		"choices": [{"message": {"content": "hello"}, "finish_reason": ""}],
		"usage": {}
	}`)
	resp, err := parseOpenAIResponse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if resp.Content == nil || *resp.Content != "hello" {
		t.Fatalf("content = %v", resp.Content)
	}
	if resp.FinishReason != "stop" {
		t.Fatalf("finish = %q", resp.FinishReason)
	}
}

func TestParseAnthropicResponse(t *testing.T) {
	raw := []byte(`{
		"content": [
			{"type": "text", "text": "Checking the data."},
			{"type": "tool_use", "id": "toolu_1", "name": "compare_drivers",
			 "input": {"driver1_id": "max_verstappen", "driver2_id": "lewis_hamilton"}}
		],
		"stop_reason": "tool_use",
		"usage": {"input_tokens": 20, "output_tokens": 8}
	}`)

	resp, err := parseAnthropicResponse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if resp.Content == nil || *resp.Content != "Checking the data." {
		t.Fatalf("content = %v", resp.Content)
	}
	if resp.FinishReason != "tool_calls" {
		t.Fatalf("finish = %q", resp.FinishReason)
	}
	tc := resp.ToolCalls[0]
	if tc.ID != "toolu_1" || tc.Arguments["driver2_id"] != "lewis_hamilton" {
		t.Fatalf("tool call = %+v", tc)
	}
	if resp.Usage["total_tokens"] != 28 {
		t.Fatalf("usage = %v", resp.Usage)
	}
}

func TestRepairJSON(t *testing.T) {
	got, err := repairJSON(`{"a": 1}`)
	if err != nil || got["a"].(float64) != 1 {
		t.Fatalf("clean JSON: %v, %v", got, err)
	}

	got, err = repairJSON(`{"a": 1}garbage`)
	if err != nil || got["a"].(float64) != 1 {
		t.Fatalf("trailing garbage: %v, %v", got, err)
	}

	got, err = repairJSON("")
	if err != nil || len(got) != 0 {
		t.Fatalf("empty input: %v, %v", got, err)
	}
}

func TestConvertToolsToAnthropic(t *testing.T) {
	tools := []map[string]any{{
		"type": "function",
		"function": map[string]any{
			"name":        "get_driver",
			"description": "lookup",
			"parameters":  map[string]any{"type": "object"},
		},
	}}
	out := convertToolsToAnthropic(tools)
	if len(out) != 1 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0]["name"] != "get_driver" {
		t.Fatalf("out = %v", out[0])
	}
	if _, ok := out[0]["input_schema"]; !ok {
		t.Fatal("missing input_schema")
	}
}

func TestConvertMessagesToAnthropic_MergesToolResults(t *testing.T) {
	msgs := schema.NewMessages()
	msgs.AddSystem("You are an F1 expert.")
	msgs.AddUser("Compare the drivers.")
	msgs.AddAssistant(nil, []schema.ToolCall{
		{ID: "t1", Name: "get_driver", Arguments: map[string]any{"driver_id": "a"}},
		{ID: "t2", Name: "get_driver", Arguments: map[string]any{"driver_id": "b"}},
	})
	msgs.AddToolResult("t1", "get_driver", "result one")
	msgs.AddToolResult("t2", "get_driver", "result two")

	system, out := convertMessagesToAnthropic(msgs)
	if system != "You are an F1 expert." {
		t.Fatalf("system = %q", system)
	}
	// user, assistant, merged tool results
	if len(out) != 3 {
		t.Fatalf("len(out) = %d, want 3", len(out))
	}
	last := out[2]
	if last["role"] != "user" {
		t.Fatalf("last role = %v", last["role"])
	}
	blocks, _ := last["content"].([]any)
	if len(blocks) != 2 {
		t.Fatalf("tool result blocks = %d, want 2", len(blocks))
	}
}
