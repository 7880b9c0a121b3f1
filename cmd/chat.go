package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pitwall/pitwall/internal/agent"
	"github.com/pitwall/pitwall/internal/config"
	"github.com/pitwall/pitwall/internal/mcp"
	"github.com/pitwall/pitwall/internal/providers"
	"github.com/pitwall/pitwall/internal/schema"
)

var chatMessage string

var chatCmd = &cobra.Command{
	Use:   "chat [server-command...]",
	Short: "Chat with the assistant through an MCP server",
	Long: "Launch the given MCP server command as a subprocess, discover its " +
		"tools and answer questions through the LLM loop.\n\n" +
		"Example:\n  pitwall chat pitwall serve",
	DisableFlagsInUseLine: true,
	RunE:                  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "Send a single question and exit")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

func runChat(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Printf("Usage: pitwall chat <server-command> [args...]\n\n")
		fmt.Println("Example: pitwall chat pitwall serve")
		return nil
	}

	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := mcp.NewClient("chat", mcp.ServerConfig{
		Command: args[0],
		Args:    args[1:],
	})
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("start MCP server %q: %w", args[0], err)
	}
	defer client.Close()

	source, err := agent.NewMCPSource(ctx, client)
	if err != nil {
		return fmt.Errorf("list tools: %w", err)
	}

	runner := agent.NewRunner(provider, agent.Settings{
		Model:       cfg.Agents.Defaults.Model,
		MaxTokens:   cfg.Agents.Defaults.MaxTokens,
		Temperature: cfg.Agents.Defaults.Temperature,
		MaxIter:     cfg.Agents.Defaults.MaxToolIter,
	})

	if chatMessage != "" {
		return runChatOnce(ctx, runner, source)
	}
	return runChatInteractive(ctx, runner, source)
}

func runChatOnce(ctx context.Context, runner *agent.Runner, source agent.ToolSource) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	answer, _ := runner.Run(ctx, runner.NewConversation(chatMessage), source, printProgress)
	printAnswer(answer)
	return nil
}

func runChatInteractive(ctx context.Context, runner *agent.Runner, source agent.ToolSource) error {
	fmt.Printf("%s Interactive mode (type 'quit' or Ctrl+C to exit)\n\n", logo)

	conversation := schema.NewMessages()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		if len(conversation.Messages) == 0 {
			conversation = runner.NewConversation(line)
		} else {
			conversation.AddUser(line)
		}

		answer, _ := runner.Run(ctx, conversation, source, printProgress)
		conversation.AddAssistant(&answer, nil)
		printAnswer(answer)

		if ctx.Err() != nil {
			return nil
		}
	}
}

func printProgress(note string) {
	fmt.Printf("  ↳ %s\n", note)
}

func printAnswer(text string) {
	fmt.Printf("\n%s pitwall\n%s\n\n", logo, text)
}

// buildProvider resolves the configured LLM provider for the default model.
func buildProvider(cfg *config.Config) (schema.LLMProvider, error) {
	model := cfg.Agents.Defaults.Model
	result := cfg.MatchProvider(model)
	if result.Provider == nil {
		return nil, fmt.Errorf("no API key configured for model %q, edit %s", model, config.ConfigPath())
	}

	apiBase := result.Provider.APIBase
	if apiBase == "" {
		apiBase = cfg.GetAPIBase(model)
	}
	return providers.New(providers.Params{
		APIKey:       result.Provider.APIKey,
		APIBase:      apiBase,
		ExtraHeaders: result.Provider.ExtraHeaders,
		DefaultModel: model,
		ProviderName: result.Name,
	}), nil
}
