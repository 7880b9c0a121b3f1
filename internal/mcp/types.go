// Package mcp implements both halves of the Model Context Protocol over
// line-delimited JSON-RPC 2.0: a stdio server exposing the F1 tool set,
// and a client that drives an external MCP server subprocess.
package mcp

import "encoding/json"

const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes used by the server.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// isNotification reports whether the request carries no id and therefore
// must not be answered.
func (r request) isNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toolDescriptor is the tools/list wire form of a single tool.
type toolDescriptor struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// contentBlock is one element of a tools/call or prompts/get payload.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textContent(text string) []contentBlock {
	return []contentBlock{{Type: "text", Text: text}}
}

// callToolResult is the tools/call response payload.
type callToolResult struct {
	Content []contentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// resourceDescriptor is the resources/list wire form of a single resource.
type resourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// resourceContents is one element of a resources/read response.
type resourceContents struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// promptDescriptor is the prompts/list wire form of a single prompt.
type promptDescriptor struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []promptArgument `json:"arguments,omitempty"`
}

type promptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// promptMessage is one message of a prompts/get response.
type promptMessage struct {
	Role    string       `json:"role"`
	Content contentBlock `json:"content"`
}
