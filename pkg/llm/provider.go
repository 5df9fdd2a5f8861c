package llm

import (
	"context"
	"fmt"
)

// StopEndTurn is the stop reason reported when the model finished its turn
// without requesting further tool use.
const StopEndTurn = "end_turn"

// Provider is a chat completion backend.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request is a single non-streaming completion request.
type Request struct {
	System      string
	Messages    []Message
	MCPServers  []MCPServer
	Toolsets    []Toolset
	Temperature float64
	MaxTokens   int
}

// Message is one conversation turn. Role is "user" or "assistant".
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// TextMessage builds a message holding a single text block.
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: []ContentBlock{NewTextBlock(text)}}
}

// MCPServer declares a remote MCP server the model may call tools on.
type MCPServer struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Toolset exposes the tools of a declared MCP server to the model.
type Toolset struct {
	Type          string `json:"type"`
	MCPServerName string `json:"mcp_server_name"`
}

// Usage reports token counts for a completion. Counters absent from the
// upstream response stay zero.
type Usage struct {
	InputTokens         int `json:"input_tokens"`
	OutputTokens        int `json:"output_tokens"`
	CacheReadTokens     int `json:"cache_read_input_tokens"`
	CacheCreationTokens int `json:"cache_creation_input_tokens"`
}

// Response is the model's reply to a Request.
type Response struct {
	Content    []ContentBlock
	StopReason string
	Usage      Usage
}

// FirstText returns the text of the first text block, or "" when the
// response carries none.
func (r *Response) FirstText() string {
	for _, block := range r.Content {
		if block.Type == ContentTypeText {
			return block.Text
		}
	}
	return ""
}

// NotConfiguredError indicates the provider is missing credentials and no
// upstream call was attempted.
type NotConfiguredError struct {
	Provider string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("%s API key is not configured", e.Provider)
}
