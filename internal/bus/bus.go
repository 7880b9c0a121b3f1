// Package bus defines the in-process message bus that decouples chat
// channels from the agent core.
package bus

import "time"

// Channel names a message source or destination.
type Channel string

const (
	ChannelCLI      Channel = "cli"
	ChannelTelegram Channel = "telegram"
	ChannelSlack    Channel = "slack"
	ChannelCron     Channel = "cron"
)

// InboundMessage is a question received from a chat channel.
type InboundMessage struct {
	Channel    Channel
	SenderID   string // user identifier within the channel
	ChatID     string // chat / channel / DM identifier
	Content    string
	ReceivedAt time.Time
	Metadata   map[string]any // channel-specific extra data (thread_ts, message_id, ...)
}

// NewInbound creates an InboundMessage stamped with the current time.
func NewInbound(channel Channel, senderID, chatID, content string) InboundMessage {
	return InboundMessage{
		Channel:    channel,
		SenderID:   senderID,
		ChatID:     chatID,
		Content:    content,
		ReceivedAt: time.Now(),
	}
}

// SessionKey returns the unique key identifying the conversation.
func (m InboundMessage) SessionKey() string {
	return string(m.Channel) + ":" + m.ChatID
}

// OutboundMessage is an answer to be sent back through a channel.
type OutboundMessage struct {
	Channel  Channel
	ChatID   string
	Content  string
	Metadata map[string]any // channel-specific hints (thread_ts, parse_mode, ...)
}

// Bus is the contract between chat channels and the agent core.
type Bus interface {
	// PublishInbound delivers a question from a channel to the agent.
	PublishInbound(msg InboundMessage)
	// PublishOutbound delivers an answer from the agent to a channel.
	PublishOutbound(msg OutboundMessage)
	// InboundChan returns a receive-only channel for the agent to consume.
	InboundChan() <-chan InboundMessage
	// OutboundChan returns a receive-only channel for the channel manager to consume.
	OutboundChan() <-chan OutboundMessage
}

// MessageBus is the default in-process Bus implementation backed by buffered
// Go channels. Channels push InboundMessages; the agent consumes them,
// processes, and pushes OutboundMessages back for the channel manager to route.
type MessageBus struct {
	inbound  chan InboundMessage
	outbound chan OutboundMessage
}

// NewMessageBus creates a MessageBus with the given buffer size per direction.
func NewMessageBus(bufSize int) *MessageBus {
	return &MessageBus{
		inbound:  make(chan InboundMessage, bufSize),
		outbound: make(chan OutboundMessage, bufSize),
	}
}

func (b *MessageBus) PublishInbound(msg InboundMessage)   { b.inbound <- msg }
func (b *MessageBus) PublishOutbound(msg OutboundMessage) { b.outbound <- msg }

func (b *MessageBus) InboundChan() <-chan InboundMessage   { return b.inbound }
func (b *MessageBus) OutboundChan() <-chan OutboundMessage { return b.outbound }

var _ Bus = (*MessageBus)(nil)
