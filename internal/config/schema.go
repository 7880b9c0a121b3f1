// Package config defines the pitwall configuration schema and loader.
// The file lives at ~/.pitwall/config.json; JSON keys use camelCase.
package config

import (
	"os"
	"path/filepath"
)

// ProviderConfig holds credentials for one LLM provider.
type ProviderConfig struct {
	APIKey       string            `json:"apiKey"`
	APIBase      string            `json:"apiBase,omitempty"`
	ExtraHeaders map[string]string `json:"extraHeaders,omitempty"`
}

// ProvidersConfig holds credentials for all supported LLM providers.
type ProvidersConfig struct {
	Custom     ProviderConfig `json:"custom"`
	Anthropic  ProviderConfig `json:"anthropic"`
	OpenAI     ProviderConfig `json:"openai"`
	OpenRouter ProviderConfig `json:"openrouter"`
	DeepSeek   ProviderConfig `json:"deepseek"`
	Groq       ProviderConfig `json:"groq"`
}

// DataConfig locates the F1 dataset and controls reload behaviour.
type DataConfig struct {
	Path                 string `json:"path"`
	RequireReloadConfirm bool   `json:"requireReloadConfirm"`
}

func defaultDataConfig() DataConfig {
	return DataConfig{
		Path:                 filepath.Join(DataDir(), "f1_data.json"),
		RequireReloadConfirm: true,
	}
}

// AgentDefaults holds default values for the LLM loop.
type AgentDefaults struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
	MaxToolIter int     `json:"maxToolIterations"`
}

func defaultAgentDefaults() AgentDefaults {
	return AgentDefaults{
		Model:       "anthropic/claude-sonnet-4-20250514",
		MaxTokens:   4096,
		Temperature: 0.7,
		MaxToolIter: 10,
	}
}

// AgentsConfig wraps agent defaults.
type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults"`
}

// TelegramConfig configures the Telegram channel.
type TelegramConfig struct {
	Enabled   bool     `json:"enabled"`
	Token     string   `json:"token"`
	AllowFrom []string `json:"allowFrom"`
}

// SlackConfig configures the Slack channel (Socket Mode).
type SlackConfig struct {
	Enabled       bool     `json:"enabled"`
	BotToken      string   `json:"botToken"`
	AppToken      string   `json:"appToken"`
	AllowFrom     []string `json:"allowFrom"`
	ReplyInThread bool     `json:"replyInThread"`
}

// ChannelsConfig groups all chat channel configs.
type ChannelsConfig struct {
	Telegram TelegramConfig `json:"telegram"`
	Slack    SlackConfig    `json:"slack"`
}

// JobConfig declares one scheduled job.
// Kind "reload" refreshes the dataset; kind "ask" sends Prompt through the
// agent and delivers the answer to Channel/ChatID.
type JobConfig struct {
	Name     string `json:"name"`
	Schedule string `json:"schedule"` // cron expression
	Kind     string `json:"kind"`     // "reload" or "ask"
	Prompt   string `json:"prompt,omitempty"`
	Channel  string `json:"channel,omitempty"`
	ChatID   string `json:"chatId,omitempty"`
}

// Config is the root configuration object.
type Config struct {
	Data      DataConfig      `json:"data"`
	Agents    AgentsConfig    `json:"agents"`
	Providers ProvidersConfig `json:"providers"`
	Channels  ChannelsConfig  `json:"channels"`
	Jobs      []JobConfig     `json:"jobs,omitempty"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		Data:   defaultDataConfig(),
		Agents: AgentsConfig{Defaults: defaultAgentDefaults()},
		Channels: ChannelsConfig{
			Telegram: TelegramConfig{AllowFrom: []string{}},
			Slack:    SlackConfig{AllowFrom: []string{}, ReplyInThread: true},
		},
	}
}

// ProviderByName maps a registry name to its configured credentials.
func (c *Config) ProviderByName(name string) *ProviderConfig {
	switch name {
	case "custom":
		return &c.Providers.Custom
	case "anthropic":
		return &c.Providers.Anthropic
	case "openai":
		return &c.Providers.OpenAI
	case "openrouter":
		return &c.Providers.OpenRouter
	case "deepseek":
		return &c.Providers.DeepSeek
	case "groq":
		return &c.Providers.Groq
	}
	return nil
}

// DataPath returns the configured dataset path with ~ expanded.
func (c *Config) DataPath() string {
	return expandHome(c.Data.Path)
}

func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
