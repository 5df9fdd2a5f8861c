package chat

import (
	"context"
	"errors"
	"time"

	"github.com/matiasbenary/mcp-meilisearch/internal/config"
	"github.com/matiasbenary/mcp-meilisearch/internal/search"
	"github.com/matiasbenary/mcp-meilisearch/pkg/llm"
	"github.com/matiasbenary/mcp-meilisearch/pkg/logging"
)

const (
	defaultMaxIterations = 5
	defaultHistoryWindow = 4
	defaultSearchLimit   = 5

	mcpServerName = "near-docs"

	// noAnswerFallback is returned when the model produced no text block.
	noAnswerFallback = "No response generated."
)

type OrchestratorConfig struct {
	Provider llm.Provider
	Searcher search.Searcher
	Logger   logging.Logger

	Mode         string
	MCPServerURL string

	MaxIterations    int
	HistoryWindow    int
	SearchLimit      int
	ContextCharLimit int
	SourcesPerResult int
	HybridRatio      float64
	Temperature      float64
	MaxTokens        int
}

type Orchestrator struct {
	provider llm.Provider
	searcher search.Searcher
	logger   logging.Logger

	mode         string
	mcpServerURL string

	maxIterations    int
	historyWindow    int
	searchLimit      int
	contextCharLimit int
	sourcesPerResult int
	hybridRatio      float64
	temperature      float64
	maxTokens        int
}

// Result is the outcome of one chat exchange.
type Result struct {
	Answer  string
	Sources []Source
	History []llm.Message
}

// configurable is satisfied by providers that can report missing
// credentials before any upstream call is made.
type configurable interface {
	Configured() error
}

func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	historyWindow := cfg.HistoryWindow
	if historyWindow <= 0 {
		historyWindow = defaultHistoryWindow
	}
	searchLimit := cfg.SearchLimit
	if searchLimit <= 0 {
		searchLimit = defaultSearchLimit
	}
	mode := cfg.Mode
	if mode == "" {
		mode = config.ModeAgentic
	}
	return &Orchestrator{
		provider:         cfg.Provider,
		searcher:         cfg.Searcher,
		logger:           cfg.Logger,
		mode:             mode,
		mcpServerURL:     cfg.MCPServerURL,
		maxIterations:    maxIterations,
		historyWindow:    historyWindow,
		searchLimit:      searchLimit,
		contextCharLimit: cfg.ContextCharLimit,
		sourcesPerResult: cfg.SourcesPerResult,
		hybridRatio:      cfg.HybridRatio,
		temperature:      cfg.Temperature,
		maxTokens:        cfg.MaxTokens,
	}
}

// Run executes one exchange: the prior history plus the new user message in,
// an answer with citations and the updated full history out. Any provider or
// search error aborts the exchange without a partial result.
func (o *Orchestrator) Run(ctx context.Context, history []llm.Message, userMessage string) (Result, error) {
	if o == nil || o.provider == nil {
		return Result{}, errors.New("llm provider is required")
	}
	if c, ok := o.provider.(configurable); ok {
		if err := c.Configured(); err != nil {
			return Result{}, err
		}
	}

	exchangesActive.Inc()
	defer exchangesActive.Dec()

	userTurn := llm.TextMessage("user", userMessage)
	fullHistory := append(append([]llm.Message{}, history...), userTurn)

	// Upstream sees only the windowed tail of the conversation; the full
	// history is still persisted by the caller.
	window := history
	if len(window) > o.historyWindow {
		window = window[len(window)-o.historyWindow:]
	}
	messages := append(append([]llm.Message{}, window...), userTurn)

	var result Result
	var err error
	if o.mode == config.ModeRetrieval {
		result, err = o.runRetrieval(ctx, messages, userMessage)
	} else {
		result, err = o.runAgentic(ctx, messages)
	}
	if err != nil {
		return Result{}, err
	}

	result.History = append(fullHistory, llm.TextMessage("assistant", result.Answer))
	return result, nil
}

// runAgentic drives the tool-use loop. The model calls documentation search
// through the declared MCP server; the loop only relays content and harvests
// citations. Provider calls are hard-capped at maxIterations, after which
// the best available output is returned.
func (o *Orchestrator) runAgentic(ctx context.Context, messages []llm.Message) (Result, error) {
	req := llm.Request{
		System:      systemPrompt,
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	}
	if o.mcpServerURL != "" {
		req.MCPServers = []llm.MCPServer{{Type: "url", URL: o.mcpServerURL, Name: mcpServerName}}
		req.Toolsets = []llm.Toolset{{Type: "mcp_toolset", MCPServerName: mcpServerName}}
	}

	collector := newSourceCollector(o.sourcesPerResult)

	var resp *llm.Response
	for call := 0; call < o.maxIterations; call++ {
		var err error
		resp, err = o.complete(ctx, req)
		if err != nil {
			return Result{}, err
		}
		if resp.StopReason == llm.StopEndTurn {
			break
		}
		if call == o.maxIterations-1 {
			if o.logger != nil {
				o.logger.WithField("calls", o.maxIterations).Warn("iteration cap reached, returning best available response")
			}
			break
		}
		// Harvest citations from this round's tool results, then feed the
		// model's output back verbatim so it can continue.
		collector.Collect(resp.Content)
		req.Messages = append(req.Messages, llm.Message{Role: "assistant", Content: resp.Content})
	}

	collector.Collect(resp.Content)
	answer := resp.FirstText()
	if answer == "" {
		answer = noAnswerFallback
	}
	return Result{Answer: answer, Sources: collector.Sources()}, nil
}

// runRetrieval searches once up front, injects the rendered context into the
// system prompt, and answers in a single call.
func (o *Orchestrator) runRetrieval(ctx context.Context, messages []llm.Message, userMessage string) (Result, error) {
	if o.searcher == nil {
		return Result{}, errors.New("searcher is required for retrieval mode")
	}

	searchStart := time.Now()
	hits, err := o.searcher.Search(ctx, userMessage, search.Options{
		Limit:       o.searchLimit,
		HybridRatio: o.hybridRatio,
	})
	searchQueriesTotal.WithLabelValues("pre_retrieval").Inc()
	searchDuration.Observe(time.Since(searchStart).Seconds())
	if err != nil {
		return Result{}, err
	}
	if o.logger != nil {
		o.logger.WithField("hits", len(hits)).Debug("pre-retrieval search")
	}

	resp, err := o.complete(ctx, llm.Request{
		System:      retrievalPrompt(buildContext(hits, o.contextCharLimit)),
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		return Result{}, err
	}

	collector := newSourceCollector(o.sourcesPerResult)
	collector.CollectHits(hits)

	answer := resp.FirstText()
	if answer == "" {
		answer = noAnswerFallback
	}
	return Result{Answer: answer, Sources: collector.Sources()}, nil
}

func (o *Orchestrator) complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	start := time.Now()
	resp, err := o.provider.Complete(ctx, req)
	llmDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		llmCallsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	llmCallsTotal.WithLabelValues("ok").Inc()

	recordUsageTokens(
		resp.Usage.InputTokens,
		resp.Usage.OutputTokens,
		resp.Usage.CacheReadTokens,
		resp.Usage.CacheCreationTokens,
	)
	if o.logger != nil {
		o.logger.WithFields(logging.Fields{
			"input_tokens":          resp.Usage.InputTokens,
			"output_tokens":         resp.Usage.OutputTokens,
			"cache_read_tokens":     resp.Usage.CacheReadTokens,
			"cache_creation_tokens": resp.Usage.CacheCreationTokens,
			"stop_reason":           resp.StopReason,
		}).Debug("llm call completed")
	}
	return resp, nil
}
