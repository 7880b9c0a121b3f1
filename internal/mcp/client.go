package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
)

// ServerConfig holds the launch parameters for a stdio MCP server.
type ServerConfig struct {
	Command string
	Args    []string
	Env     map[string]string
}

// Client drives a stdio MCP server subprocess over line-delimited JSON-RPC.
// The server's stderr is passed through so its diagnostics stay visible.
type Client struct {
	name string
	cfg  ServerConfig

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	mu     sync.Mutex
	nextID int64
}

// NewClient returns an unconnected Client for the given server.
func NewClient(name string, cfg ServerConfig) *Client {
	return &Client{name: name, cfg: cfg}
}

// Connect starts the server subprocess and runs the initialize handshake.
func (c *Client) Connect(ctx context.Context) error {
	if c.cfg.Command == "" {
		return fmt.Errorf("MCP server %q: no command configured", c.name)
	}

	c.cmd = exec.CommandContext(ctx, c.cfg.Command, c.cfg.Args...)
	c.cmd.Stderr = os.Stderr
	if c.cfg.Env != nil {
		c.cmd.Env = os.Environ()
		for k, v := range c.cfg.Env {
			c.cmd.Env = append(c.cmd.Env, k+"="+v)
		}
	}

	stdinPipe, err := c.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stdoutPipe, err := c.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	c.stdin = stdinPipe
	c.stdout = bufio.NewReader(stdoutPipe)

	if err := c.cmd.Start(); err != nil {
		return fmt.Errorf("start MCP server: %w", err)
	}

	if err := c.initialize(ctx); err != nil {
		c.cmd.Process.Kill() //nolint:errcheck
		return fmt.Errorf("initialize: %w", err)
	}
	return nil
}

// Close stops the server subprocess.
func (c *Client) Close() {
	if c.stdin != nil {
		c.stdin.Close() //nolint:errcheck
	}
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Process.Kill() //nolint:errcheck
	}
}

// Ping checks that the server still answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.call(ctx, "ping", nil)
	return err
}

// ListTools returns the tools exposed by the server.
func (c *Client) ListTools(ctx context.Context) ([]map[string]any, error) {
	resp, err := c.call(ctx, "tools/list", nil)
	if err != nil {
		return nil, err
	}
	var result struct {
		Tools []map[string]any `json:"tools"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool invokes a named tool and flattens its text content blocks.
func (c *Client) CallTool(ctx context.Context, toolName string, args map[string]any) (string, error) {
	payload := map[string]any{
		"name":      toolName,
		"arguments": args,
	}
	resp, err := c.call(ctx, "tools/call", payload)
	if err != nil {
		return "", err
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return string(resp), nil
	}

	var parts []string
	for _, block := range result.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}

	out := strings.Join(parts, "\n")
	if out == "" {
		out = "(no output)"
	}
	return out, nil
}

// ReadResource fetches a resource by URI and returns its text contents.
func (c *Client) ReadResource(ctx context.Context, uri string) (string, error) {
	resp, err := c.call(ctx, "resources/read", map[string]any{"uri": uri})
	if err != nil {
		return "", err
	}
	var result struct {
		Contents []struct {
			Text string `json:"text"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", err
	}
	var parts []string
	for _, ct := range result.Contents {
		if ct.Text != "" {
			parts = append(parts, ct.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (c *Client) initialize(ctx context.Context) error {
	params := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "pitwall", "version": "1.0"},
	}
	if _, err := c.call(ctx, "initialize", params); err != nil {
		return err
	}
	// Send initialized notification (no response expected)
	notif := map[string]any{"jsonrpc": "2.0", "method": "notifications/initialized"}
	data, _ := json.Marshal(notif)
	_, _ = fmt.Fprintf(c.stdin, "%s\n", data)
	return nil
}

func (c *Client) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := atomic.AddInt64(&c.nextID, 1)
	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprintf(c.stdin, "%s\n", data); err != nil {
		return nil, fmt.Errorf("write to MCP stdin: %w", err)
	}

	// Read response lines until we get one with our id.
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		line, err := c.stdout.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("read MCP stdout: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var resp struct {
			ID     *int64          `json:"id"`
			Result json.RawMessage `json:"result"`
			Error  *rpcError       `json:"error"`
		}
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			continue // skip non-JSON lines (server log output)
		}
		if resp.ID == nil || *resp.ID != id {
			continue
		}
		if resp.Error != nil {
			return nil, fmt.Errorf("MCP error %d: %s", resp.Error.Code, resp.Error.Message)
		}
		return resp.Result, nil
	}
}
