package config

import (
	"strings"

	"github.com/matiasbenary/mcp-meilisearch/pkg/config"
)

// Chat modes. Agentic lets the model drive retrieval through MCP tool
// calls; retrieval runs a single search up front and answers in one call.
const (
	ModeAgentic   = "agentic"
	ModeRetrieval = "retrieval"
)

// Config stores environment configuration for the docs agent.
type Config struct {
	Port string

	AnthropicAPIKey string
	AnthropicModel  string
	AnthropicAPIURL string

	MCPServerURL string

	MeiliHost   string
	MeiliAPIKey string
	MeiliIndex  string

	ChatMode         string
	MaxIterations    int
	HistoryWindow    int
	MaxSessions      int
	SearchLimit      int
	ContextCharLimit int
	SourcesPerResult int
	HybridRatio      float64
	Temperature      float64
	MaxTokens        int
}

// LoadConfig loads the agent configuration from environment variables.
func LoadConfig() Config {
	mode := strings.ToLower(config.GetEnv("CHAT_MODE", ModeAgentic))
	if mode != ModeAgentic && mode != ModeRetrieval {
		mode = ModeAgentic
	}
	return Config{
		Port: config.GetEnv("PORT", "3000"),

		AnthropicAPIKey: config.GetEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  config.GetEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		AnthropicAPIURL: config.GetEnv("ANTHROPIC_API_URL", ""),

		MCPServerURL: config.GetEnv("MCP_SERVER_URL", ""),

		MeiliHost:   config.GetEnv("MEILI_HOST", "http://127.0.0.1:7700"),
		MeiliAPIKey: config.GetEnv("MEILI_API_KEY", ""),
		MeiliIndex:  config.GetEnv("MEILI_INDEX", "near-docs"),

		ChatMode:         mode,
		MaxIterations:    config.GetEnvInt("CHAT_MAX_ITERATIONS", 5),
		HistoryWindow:    config.GetEnvInt("CHAT_HISTORY_WINDOW", 4),
		MaxSessions:      config.GetEnvInt("CHAT_MAX_SESSIONS", 100),
		SearchLimit:      config.GetEnvInt("SEARCH_LIMIT", 5),
		ContextCharLimit: config.GetEnvInt("SEARCH_CONTEXT_CHAR_LIMIT", 2000),
		SourcesPerResult: config.GetEnvInt("SEARCH_SOURCES_PER_RESULT", 3),
		HybridRatio:      config.GetEnvFloat("SEARCH_HYBRID_RATIO", 0.5),
		Temperature:      config.GetEnvFloat("CHAT_TEMPERATURE", 0.1),
		MaxTokens:        config.GetEnvInt("CHAT_MAX_TOKENS", 1024),
	}
}
