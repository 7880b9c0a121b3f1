// Package dependency wires core pitwall services using go.uber.org/dig.
package dependency

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/pitwall/pitwall/internal/agent"
	"github.com/pitwall/pitwall/internal/bus"
	"github.com/pitwall/pitwall/internal/config"
	"github.com/pitwall/pitwall/internal/cron"
	"github.com/pitwall/pitwall/internal/providers"
	"github.com/pitwall/pitwall/internal/schema"
	"github.com/pitwall/pitwall/internal/store"
	"github.com/pitwall/pitwall/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider schema.LLMProvider
	st       *store.Store
	registry *tools.Registry
	msgBus   *bus.MessageBus
	loop     *agent.Loop
	cronSvc  *cron.Service
}

func (c *Container) Provider() schema.LLMProvider { return c.provider }
func (c *Container) Store() *store.Store          { return c.st }
func (c *Container) Registry() *tools.Registry    { return c.registry }
func (c *Container) MessageBus() *bus.MessageBus  { return c.msgBus }
func (c *Container) AgentLoop() *agent.Loop       { return c.loop }
func (c *Container) CronService() *cron.Service   { return c.cronSvc }

// LLMModel is a named string type so dig can distinguish it from plain
// strings when injecting the effective model name.
type LLMModel string

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newProvider); err != nil {
		return nil, err
	}
	if err := d.Provide(resolveLLMModel); err != nil {
		return nil, err
	}
	if err := d.Provide(newStore); err != nil {
		return nil, err
	}
	if err := d.Provide(newToolRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newMessageBus); err != nil {
		return nil, err
	}
	if err := d.Provide(newRunner); err != nil {
		return nil, err
	}
	if err := d.Provide(newToolSource); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgentLoop); err != nil {
		return nil, err
	}
	if err := d.Provide(newCronService); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		provider schema.LLMProvider,
		st *store.Store,
		registry *tools.Registry,
		msgBus *bus.MessageBus,
		loop *agent.Loop,
		cronSvc *cron.Service,
	) {
		result = &Container{
			provider: provider,
			st:       st,
			registry: registry,
			msgBus:   msgBus,
			loop:     loop,
			cronSvc:  cronSvc,
		}
	})
	return result, err
}

func newProvider(cfg *config.Config) (schema.LLMProvider, error) {
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

func resolveLLMModel(cfg *config.Config, p schema.LLMProvider) LLMModel {
	m := cfg.Agents.Defaults.Model
	if m == "" {
		m = p.DefaultModel()
	}
	return LLMModel(m)
}

func newStore(cfg *config.Config) *store.Store {
	return store.Open(cfg.DataPath())
}

func newToolRegistry(cfg *config.Config, st *store.Store) *tools.Registry {
	return tools.NewRegistry(st, tools.JSONPresenter{}, cfg.Data.RequireReloadConfirm)
}

func newMessageBus() *bus.MessageBus {
	return bus.NewMessageBus(100)
}

func newRunner(cfg *config.Config, p schema.LLMProvider, m LLMModel) *agent.Runner {
	return agent.NewRunner(p, agent.Settings{
		Model:       string(m),
		MaxTokens:   cfg.Agents.Defaults.MaxTokens,
		Temperature: cfg.Agents.Defaults.Temperature,
		MaxIter:     cfg.Agents.Defaults.MaxToolIter,
	})
}

func newToolSource(registry *tools.Registry) agent.ToolSource {
	return agent.NewRegistrySource(registry)
}

func newAgentLoop(b *bus.MessageBus, runner *agent.Runner, src agent.ToolSource) *agent.Loop {
	return agent.NewLoop(b, runner, src)
}

func newCronService(cfg *config.Config, st *store.Store, loop *agent.Loop, b *bus.MessageBus) *cron.Service {
	return cron.NewService(cfg.Jobs, st, loop, b)
}
