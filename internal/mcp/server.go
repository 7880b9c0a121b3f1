package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/pitwall/pitwall/internal/store"
	"github.com/pitwall/pitwall/internal/tools"
)

// maxLineBytes bounds a single JSON-RPC line; a dataset rendered into one
// resources/read response stays well under this.
const maxLineBytes = 4 * 1024 * 1024

// Server answers MCP requests over a line-delimited JSON-RPC stream.
// The transport carries protocol messages only; diagnostics go to slog,
// which the process points at stderr.
type Server struct {
	registry *Registry
	version  string

	in  io.Reader
	out io.Writer
	wmu sync.Mutex
}

// Registry bundles what the server exposes: the tool set plus the store
// backing resources and prompts.
type Registry struct {
	Tools *tools.Registry
	Store *store.Store
}

// NewServer returns a Server reading requests from in and writing
// responses to out.
func NewServer(reg *Registry, version string, in io.Reader, out io.Writer) *Server {
	return &Server{registry: reg, version: version, in: in, out: out}
}

// Serve reads requests line by line until EOF or context cancellation.
// Malformed lines get a parse error response; everything else is routed
// by method.
func (s *Server) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeError(json.RawMessage("null"), codeParseError, "parse error")
			continue
		}
		s.handle(ctx, req)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request stream: %w", err)
	}
	return nil
}

func (s *Server) handle(ctx context.Context, req request) {
	slog.Debug("rpc request", "method", req.Method)

	var (
		result any
		rerr   *rpcError
	)
	switch req.Method {
	case "initialize":
		result = s.initializeResult()
	case "notifications/initialized":
		return
	case "ping":
		result = map[string]any{}
	case "tools/list":
		result = s.listTools()
	case "tools/call":
		result, rerr = s.callTool(ctx, req.Params)
	case "resources/list":
		result = s.listResources()
	case "resources/read":
		result, rerr = s.readResource(req.Params)
	case "prompts/list":
		result = s.listPrompts()
	case "prompts/get":
		result, rerr = s.getPrompt(req.Params)
	default:
		rerr = &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
	}

	if req.isNotification() {
		return
	}
	if rerr != nil {
		s.writeError(req.ID, rerr.Code, rerr.Message)
		return
	}
	s.writeResult(req.ID, result)
}

func (s *Server) initializeResult() map[string]any {
	return map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools":     map[string]any{},
			"resources": map[string]any{},
			"prompts":   map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    "pitwall",
			"version": s.version,
		},
	}
}

func (s *Server) listTools() map[string]any {
	all := s.registry.Tools.All()
	descs := make([]toolDescriptor, 0, len(all))
	for _, t := range all {
		descs = append(descs, toolDescriptor{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.Parameters(),
		})
	}
	return map[string]any{"tools": descs}
}

func (s *Server) callTool(ctx context.Context, rawParams json.RawMessage) (any, *rpcError) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(rawParams, &params); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "invalid tools/call params"}
	}
	if params.Name == "" {
		return nil, &rpcError{Code: codeInvalidParams, Message: "missing tool name"}
	}

	out, err := s.registry.Tools.Dispatch(ctx, params.Name, params.Arguments)
	if err != nil {
		slog.Error("tool call failed", "tool", params.Name, "err", err)
		return callToolResult{
			Content: textContent("Error: " + err.Error()),
			IsError: true,
		}, nil
	}
	return callToolResult{Content: textContent(out)}, nil
}

func (s *Server) writeResult(id json.RawMessage, result any) {
	s.writeLine(response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) writeError(id json.RawMessage, code int, msg string) {
	s.writeLine(response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: msg}})
}

func (s *Server) writeLine(resp response) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("marshal response", "err", err)
		return
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()
	if _, err := fmt.Fprintf(s.out, "%s\n", data); err != nil {
		slog.Error("write response", "err", err)
	}
}
