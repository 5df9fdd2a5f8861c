package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type AnthropicProvider struct {
	client *http.Client
	apiKey string
	apiURL string
	model  string
}

const (
	anthropicVersion = "2023-06-01"
	// Beta flag required for the MCP connector fields on the Messages API.
	anthropicMCPBeta = "mcp-client-2025-11-20"

	defaultAnthropicMaxTokens = 1024
)

func NewAnthropicProvider(cfg Config) *AnthropicProvider {
	apiURL := strings.TrimRight(cfg.APIURL, "/")
	if apiURL == "" {
		apiURL = "https://api.anthropic.com"
	}
	return &AnthropicProvider{
		client: &http.Client{Timeout: 120 * time.Second},
		apiKey: cfg.APIKey,
		apiURL: apiURL,
		model:  cfg.Model,
	}
}

// Configured reports whether the provider has credentials to make calls.
func (p *AnthropicProvider) Configured() error {
	if p.apiKey == "" {
		return &NotConfiguredError{Provider: "Anthropic"}
	}
	return nil
}

func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := p.Configured(); err != nil {
		return nil, err
	}
	if p.model == "" {
		return nil, errors.New("anthropic model is required")
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	body := anthropicRequest{
		Model:       p.model,
		MaxTokens:   maxTokens,
		System:      req.System,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MCPServers:  req.MCPServers,
	}
	for _, ts := range req.Toolsets {
		body.Tools = append(body.Tools, anthropicToolset{
			Type:          ts.Type,
			MCPServerName: ts.MCPServerName,
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	resp, err := doWithRetry(ctx, p.client, func() (*http.Request, error) {
		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL+"/v1/messages", bytes.NewReader(payload))
		if reqErr != nil {
			return nil, fmt.Errorf("anthropic: create request: %w", reqErr)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-API-Key", p.apiKey)
		httpReq.Header.Set("Anthropic-Version", anthropicVersion)
		if len(req.MCPServers) > 0 {
			httpReq.Header.Set("Anthropic-Beta", anthropicMCPBeta)
		}
		return httpReq, nil
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("anthropic: read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr anthropicErrorResponse
		if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("anthropic: %s: %s", apiErr.Error.Type, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("anthropic: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("anthropic: decode response: %w", err)
	}
	return &Response{
		Content:    decoded.Content,
		StopReason: decoded.StopReason,
		Usage:      decoded.Usage,
	}, nil
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []Message          `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
	MCPServers  []MCPServer        `json:"mcp_servers,omitempty"`
	Tools       []anthropicToolset `json:"tools,omitempty"`
}

type anthropicToolset struct {
	Type          string `json:"type"`
	MCPServerName string `json:"mcp_server_name"`
}

type anthropicResponse struct {
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

type anthropicErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
