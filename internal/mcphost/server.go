package mcphost

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasbenary/mcp-meilisearch/internal/search"
	"github.com/matiasbenary/mcp-meilisearch/pkg/logging"
	"github.com/matiasbenary/mcp-meilisearch/pkg/version"
)

const defaultSearchLimit = 5

// Config wires the documentation index into the MCP server.
type Config struct {
	Searcher    search.Searcher
	Logger      logging.Logger
	SearchLimit int
	HybridRatio float64
}

// NewServer creates an MCP server exposing the documentation search tool.
func NewServer(cfg Config) *mcp.Server {
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = defaultSearchLimit
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "docsagent-search",
		Version: version.Version,
	}, nil)

	registerSearch(srv, cfg)

	return srv
}

// Handler wraps the server in a stateless streamable HTTP handler for
// mounting under /mcp.
func Handler(srv *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return srv },
		&mcp.StreamableHTTPOptions{Stateless: true},
	)
}

type searchInput struct {
	Query  string `json:"query" jsonschema:"required" jsonschema_description:"Search query to run against the documentation index"`
	Limit  int    `json:"limit,omitempty" jsonschema_description:"Maximum number of results to return (default 5)"`
	Offset int    `json:"offset,omitempty" jsonschema_description:"Number of results to skip"`
}

type searchResponse struct {
	Query string       `json:"query"`
	Hits  []search.Hit `json:"hits"`
}

func registerSearch(srv *mcp.Server, cfg Config) {
	mcp.AddTool(srv,
		&mcp.Tool{
			Name:        "search",
			Description: "Search the NEAR documentation index for pages matching a query.",
		},
		func(ctx context.Context, _ *mcp.CallToolRequest, args searchInput) (*mcp.CallToolResult, any, error) {
			return handleSearch(ctx, args, cfg)
		},
	)
}

func handleSearch(ctx context.Context, args searchInput, cfg Config) (*mcp.CallToolResult, any, error) {
	if cfg.Searcher == nil {
		return toolError("documentation search unavailable")
	}
	if args.Query == "" {
		return toolError("query is required")
	}

	limit := args.Limit
	if limit <= 0 {
		limit = cfg.SearchLimit
	}

	hits, err := cfg.Searcher.Search(ctx, args.Query, search.Options{
		Limit:       limit,
		Offset:      args.Offset,
		HybridRatio: cfg.HybridRatio,
	})
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.WithField("query", args.Query).WithError(err).Warn("documentation search failed")
		}
		return toolError("search failed: " + err.Error())
	}
	if cfg.Logger != nil {
		cfg.Logger.WithField("query", args.Query).WithField("hits", len(hits)).Debug("documentation search")
	}
	if hits == nil {
		hits = []search.Hit{}
	}

	return toolSuccess(searchResponse{Query: args.Query, Hits: hits})
}
