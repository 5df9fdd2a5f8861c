package llm

import (
	"github.com/matiasbenary/mcp-meilisearch/pkg/config"
)

type Config struct {
	Model  string
	APIKey string
	APIURL string
}

func LoadConfig() Config {
	return Config{
		Model:  config.GetEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		APIKey: config.GetEnv("ANTHROPIC_API_KEY", ""),
		APIURL: config.GetEnv("ANTHROPIC_API_URL", ""),
	}
}
