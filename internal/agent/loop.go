package agent

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pitwall/pitwall/internal/bus"
	"github.com/pitwall/pitwall/internal/schema"
)

// Loop is the core processing engine.
//
// It reads InboundMessages from the bus, runs the LLM and tool loop for
// each, and publishes OutboundMessages. Conversations are kept per session
// key so follow-up questions retain context.
type Loop struct {
	bus    bus.Bus
	runner *Runner
	source ToolSource

	mu       sync.Mutex
	sessions map[string]schema.Messages
}

// NewLoop creates a Loop reading from b and serving tools from src.
func NewLoop(b bus.Bus, runner *Runner, src ToolSource) *Loop {
	return &Loop{
		bus:      b,
		runner:   runner,
		source:   src,
		sessions: make(map[string]schema.Messages),
	}
}

// Run reads from the inbound bus and processes each message in a goroutine.
// Blocks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	slog.Info("Agent loop started", "tools", sourceToolNames(l.source))

	for {
		select {
		case msg := <-l.bus.InboundChan():
			go l.handleMessage(ctx, msg)
		case <-ctx.Done():
			slog.Info("Agent loop stopping")
			return ctx.Err()
		}
	}
}

// Ask handles a single question outside the bus (CLI one-shot, cron).
// The conversation is not retained.
func (l *Loop) Ask(ctx context.Context, content string) string {
	conversation := l.runner.NewConversation(content)
	answer, _ := l.runner.Run(ctx, conversation, l.source, nil)
	return answer
}

func (l *Loop) handleMessage(ctx context.Context, msg bus.InboundMessage) {
	conversation := l.continueSession(msg.SessionKey(), msg.Content)

	answer, toolsUsed := l.runner.Run(ctx, conversation, l.source, nil)
	if len(toolsUsed) > 0 {
		slog.Debug("Tools used", "session", msg.SessionKey(), "tools", toolsUsed)
	}

	l.saveSession(msg.SessionKey(), conversation, answer)

	l.bus.PublishOutbound(bus.OutboundMessage{
		Channel:  msg.Channel,
		ChatID:   msg.ChatID,
		Content:  answer,
		Metadata: msg.Metadata,
	})
}

// continueSession appends the user turn to the stored conversation,
// seeding a fresh one on first contact.
func (l *Loop) continueSession(key, content string) schema.Messages {
	l.mu.Lock()
	defer l.mu.Unlock()

	conversation, ok := l.sessions[key]
	if !ok {
		return l.runner.NewConversation(content)
	}
	conversation.AddUser(content)
	return conversation
}

func (l *Loop) saveSession(key string, conversation schema.Messages, answer string) {
	conversation.AddAssistant(&answer, nil)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessions[key] = conversation
}

// ResetSession drops the stored conversation for a session key.
func (l *Loop) ResetSession(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, key)
}
