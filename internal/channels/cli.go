package channels

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pitwall/pitwall/internal/bus"
)

var cliExitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

// CLIChannel wires the terminal (stdin/stdout) into the channel manager.
// Replies dispatched to Send are handed to the Start loop for printing.
type CLIChannel struct {
	Base
	replies chan bus.OutboundMessage
}

// NewCLIChannel creates a CLIChannel publishing inbound messages to b.
func NewCLIChannel(b bus.Bus) *CLIChannel {
	return &CLIChannel{
		Base:    NewBase(bus.ChannelCLI, b, nil),
		replies: make(chan bus.OutboundMessage, 1),
	}
}

func (c *CLIChannel) Name() string { return string(bus.ChannelCLI) }

// Start runs the stdin REPL: reads lines, dispatches them to the agent via
// the bus, and prints each reply. Blocks until ctx is cancelled, stdin is
// closed, or the user quits.
func (c *CLIChannel) Start(ctx context.Context) error {
	fmt.Printf("Ask about F1 drivers, teams and circuits. Type 'quit' to exit.\n\n")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")

		scanDone := make(chan bool, 1)
		go func() {
			scanDone <- scanner.Scan()
		}()

		select {
		case ok := <-scanDone:
			if !ok {
				fmt.Println("\nGoodbye!")
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if cliExitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		c.HandleMessage("user", "direct", line, nil)
		c.waitForReply(ctx)
	}
}

func (c *CLIChannel) waitForReply(ctx context.Context) {
	select {
	case msg := <-c.replies:
		fmt.Printf("\n%s\n\n", msg.Content)
	case <-ctx.Done():
	}
}

// Send delivers an outbound agent reply to the Start loop.
func (c *CLIChannel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	select {
	case c.replies <- msg:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
