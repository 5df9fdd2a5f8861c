package chat

import (
	"encoding/json"

	"github.com/matiasbenary/mcp-meilisearch/internal/search"
	"github.com/matiasbenary/mcp-meilisearch/pkg/llm"
)

const (
	defaultSourcesPerResult = 3
	untitledSource          = "Untitled"
)

// Source is a documentation page cited in a reply.
type Source struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

type sourcePayload struct {
	Hits []struct {
		Title string `json:"title"`
		Path  string `json:"path"`
	} `json:"hits"`
}

// sourceCollector accumulates citations from tool results across the
// exchange. Duplicate paths keep their first occurrence.
type sourceCollector struct {
	perResult int
	sources   []Source
}

func newSourceCollector(perResult int) *sourceCollector {
	if perResult <= 0 {
		perResult = defaultSourcesPerResult
	}
	return &sourceCollector{perResult: perResult}
}

// Collect harvests sources from the tool result blocks of a response.
// Errored results and payloads that do not parse are skipped.
func (c *sourceCollector) Collect(blocks []llm.ContentBlock) {
	for _, block := range blocks {
		if !block.IsToolResult() || block.IsError {
			continue
		}
		var payload sourcePayload
		if err := json.Unmarshal([]byte(block.PayloadText()), &payload); err != nil {
			continue
		}
		// Cap first, then drop entries with neither title nor path.
		hits := payload.Hits
		if len(hits) > c.perResult {
			hits = hits[:c.perResult]
		}
		for _, hit := range hits {
			if hit.Title == "" && hit.Path == "" {
				continue
			}
			c.sources = append(c.sources, normalizeSource(hit.Title, hit.Path))
		}
	}
}

// CollectHits harvests sources directly from search hits.
func (c *sourceCollector) CollectHits(hits []search.Hit) {
	if len(hits) > c.perResult {
		hits = hits[:c.perResult]
	}
	for _, hit := range hits {
		if hit.Title == "" && hit.Path == "" {
			continue
		}
		c.sources = append(c.sources, normalizeSource(hit.Title, hit.Path))
	}
}

// Sources returns the deduplicated citation list. Never nil.
func (c *sourceCollector) Sources() []Source {
	out := make([]Source, 0, len(c.sources))
	seen := make(map[string]bool, len(c.sources))
	for _, src := range c.sources {
		if seen[src.Path] {
			continue
		}
		seen[src.Path] = true
		out = append(out, src)
	}
	return out
}

func normalizeSource(title, path string) Source {
	if title == "" {
		title = untitledSource
	}
	return Source{Title: title, Path: path}
}
