package search

import "context"

// Hit is a single documentation search result.
type Hit struct {
	Title   string  `json:"title"`
	Path    string  `json:"path"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// Options tunes a search query.
type Options struct {
	Limit       int
	Offset      int
	HybridRatio float64
}

// Searcher queries the documentation index.
type Searcher interface {
	Search(ctx context.Context, query string, opts Options) ([]Hit, error)
}
