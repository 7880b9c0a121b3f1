// Package agent runs the LLM and tool iteration loop over the F1 tool set.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pitwall/pitwall/internal/schema"
	"github.com/pitwall/pitwall/internal/shared/llmutils"
)

// DefaultSystemPrompt frames the assistant before any user turn.
const DefaultSystemPrompt = "You are a Formula 1 expert assistant. " +
	"Use the available tools to answer questions about drivers, teams and circuits. " +
	"Always fetch data through the tools instead of relying on memory, and say so when the dataset has no answer."

// Settings bounds a single conversation run.
type Settings struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	MaxIter      int
	SystemPrompt string
}

// Runner executes the LLM and tool iteration loop against one ToolSource.
type Runner struct {
	provider schema.LLMProvider
	settings Settings
}

// NewRunner returns a Runner bound to a provider and settings.
func NewRunner(provider schema.LLMProvider, settings Settings) *Runner {
	if settings.MaxIter <= 0 {
		settings.MaxIter = 10
	}
	if settings.SystemPrompt == "" {
		settings.SystemPrompt = DefaultSystemPrompt
	}
	return &Runner{provider: provider, settings: settings}
}

// Run drives the loop until the model answers without tool calls or MaxIter
// is hit. onProgress, when non-nil, receives partial text and tool hints.
func (r *Runner) Run(ctx context.Context, conversation schema.Messages, src ToolSource, onProgress func(string)) (finalContent string, toolsUsed []string) {
	for i := 0; i < r.settings.MaxIter; i++ {
		resp, err := r.provider.Chat(ctx,
			conversation,
			src.Definitions(),
			schema.NewChatOptions(r.settings.Model, r.settings.MaxTokens, r.settings.Temperature),
		)

		if err != nil {
			slog.Error("LLM error", "err", err)
			return "Sorry, I encountered an error calling the LLM.", nil
		}

		if len(resp.ToolCalls) == 0 {
			// Terminal response.
			content := ""
			if resp.Content != nil {
				content = *resp.Content
			}
			return llmutils.StripThink(content), toolsUsed
		}

		if onProgress != nil {
			if resp.Content != nil {
				if clean := llmutils.StripThink(*resp.Content); clean != "" {
					onProgress(clean)
				}
			}
			onProgress(llmutils.ToolHint(resp.ToolCalls))
		}

		// Append assistant turn with tool calls.
		var toolCalls []schema.ToolCall
		for _, tc := range resp.ToolCalls {
			toolCalls = append(toolCalls, schema.ToolCall{ID: tc.ID, Name: tc.Name, Arguments: tc.Arguments})
		}
		conversation.AddAssistant(resp.Content, toolCalls)

		// Execute each tool.
		for _, tc := range resp.ToolCalls {
			toolsUsed = append(toolsUsed, tc.Name)
			argsJSON, _ := json.Marshal(tc.Arguments)

			slog.Info("Tool call", "name", tc.Name, "args", llmutils.Truncate(string(argsJSON), 200))

			result, err := src.Call(ctx, tc.Name, tc.Arguments)
			if err != nil {
				result = fmt.Sprintf("Error: %v", err)
			}
			conversation.AddToolResult(tc.ID, tc.Name, result)
		}
	}

	return "I've reached the maximum number of tool iterations without a final answer.", toolsUsed
}

// NewConversation seeds a conversation with the configured system prompt
// and the user's question.
func (r *Runner) NewConversation(userContent string) schema.Messages {
	msgs := schema.NewMessages()
	msgs.AddSystem(r.settings.SystemPrompt)
	msgs.AddUser(userContent)
	return msgs
}
