package schema

import (
	"context"

	"github.com/pitwall/pitwall/internal/bus"
)

// Channel is a chat front-end (CLI, Telegram, Slack) that feeds questions to
// the agent via the bus and delivers answers back to the user.
type Channel interface {
	Name() string
	// Start runs the channel's receive loop until ctx is cancelled.
	Start(ctx context.Context) error
	// Send delivers one outbound message to the user.
	Send(ctx context.Context, msg bus.OutboundMessage) error
}
