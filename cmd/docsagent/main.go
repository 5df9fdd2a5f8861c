package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matiasbenary/mcp-meilisearch/internal/chat"
	agentconfig "github.com/matiasbenary/mcp-meilisearch/internal/config"
	"github.com/matiasbenary/mcp-meilisearch/internal/mcphost"
	"github.com/matiasbenary/mcp-meilisearch/internal/search"
	"github.com/matiasbenary/mcp-meilisearch/pkg/config"
	"github.com/matiasbenary/mcp-meilisearch/pkg/llm"
	"github.com/matiasbenary/mcp-meilisearch/pkg/logging"
	"github.com/matiasbenary/mcp-meilisearch/pkg/monitoring"
	"github.com/matiasbenary/mcp-meilisearch/pkg/server"
	"github.com/matiasbenary/mcp-meilisearch/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("docsagent")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting docsagent (NEAR documentation assistant)")

	cfg := agentconfig.LoadConfig()

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("docsagent", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("docsagent", version.Version, version.GitCommit)

	meili, err := search.NewMeiliClient(cfg.MeiliHost, cfg.MeiliAPIKey, cfg.MeiliIndex)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Meilisearch client")
	}

	healthChecker.AddCheck("meilisearch", monitoring.HTTPServiceHealthCheck("meilisearch", meili.HealthURL()))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"ANTHROPIC_API_KEY": cfg.AnthropicAPIKey,
	}))

	if cfg.AnthropicAPIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY not set - chat requests will be rejected")
	}

	provider := llm.NewAnthropicProvider(llm.Config{
		Model:  cfg.AnthropicModel,
		APIKey: cfg.AnthropicAPIKey,
		APIURL: cfg.AnthropicAPIURL,
	})

	sessions := chat.NewSessionStore(cfg.MaxSessions)
	orchestrator := chat.NewOrchestrator(chat.OrchestratorConfig{
		Provider:         provider,
		Searcher:         meili,
		Logger:           logger,
		Mode:             cfg.ChatMode,
		MCPServerURL:     cfg.MCPServerURL,
		MaxIterations:    cfg.MaxIterations,
		HistoryWindow:    cfg.HistoryWindow,
		SearchLimit:      cfg.SearchLimit,
		ContextCharLimit: cfg.ContextCharLimit,
		SourcesPerResult: cfg.SourcesPerResult,
		HybridRatio:      cfg.HybridRatio,
		Temperature:      cfg.Temperature,
		MaxTokens:        cfg.MaxTokens,
	})

	router := server.SetupServiceRouter(logger, "docsagent", healthChecker, metricsCollector)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Add this MCP server to your agent so they can search in our docs!")
	})

	chat.RegisterRoutes(router, chat.NewChatHandler(sessions, orchestrator, logger))

	// MCP endpoint exposing the documentation search tool.
	mcpServer := mcphost.NewServer(mcphost.Config{
		Searcher:    meili,
		Logger:      logger,
		SearchLimit: cfg.SearchLimit,
		HybridRatio: cfg.HybridRatio,
	})
	router.Any("/mcp/*path", gin.WrapH(mcphost.Handler(mcpServer)))

	serverConfig := server.DefaultConfig("docsagent", cfg.Port)
	logger.WithFields(logging.Fields{
		"port": serverConfig.Port,
		"mode": cfg.ChatMode,
	}).Info("docsagent ready")

	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
}
