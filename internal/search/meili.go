package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultEmbedder = "default"

// MeiliClient queries a Meilisearch index over its REST API.
type MeiliClient struct {
	host     string
	apiKey   string
	index    string
	embedder string
	client   *http.Client
}

// NewMeiliClient creates a Meilisearch client for the given index.
func NewMeiliClient(host, apiKey, index string) (*MeiliClient, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("meilisearch host is required")
	}
	if strings.TrimSpace(index) == "" {
		return nil, fmt.Errorf("meilisearch index is required")
	}
	return &MeiliClient{
		host:     strings.TrimRight(host, "/"),
		apiKey:   apiKey,
		index:    index,
		embedder: defaultEmbedder,
		client:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// HealthURL returns the instance health endpoint.
func (c *MeiliClient) HealthURL() string {
	return c.host + "/health"
}

type meiliHybrid struct {
	SemanticRatio float64 `json:"semanticRatio"`
	Embedder      string  `json:"embedder"`
}

type meiliSearchRequest struct {
	Q      string       `json:"q"`
	Limit  int          `json:"limit,omitempty"`
	Offset int          `json:"offset,omitempty"`
	Hybrid *meiliHybrid `json:"hybrid,omitempty"`
}

type meiliSearchResponse struct {
	Hits []struct {
		Title   string  `json:"title"`
		Path    string  `json:"path"`
		Content string  `json:"content"`
		Score   float64 `json:"_rankingScore,omitempty"`
	} `json:"hits"`
}

// Search runs a hybrid query and decodes the hits.
func (c *MeiliClient) Search(ctx context.Context, query string, opts Options) ([]Hit, error) {
	raw, err := c.SearchRaw(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var decoded meiliSearchResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode meilisearch response: %w", err)
	}

	hits := make([]Hit, 0, len(decoded.Hits))
	for _, item := range decoded.Hits {
		hits = append(hits, Hit{
			Title:   item.Title,
			Path:    item.Path,
			Content: item.Content,
			Score:   item.Score,
		})
	}
	return hits, nil
}

// SearchRaw runs a query and returns the response body unparsed. The MCP
// search tool forwards this payload verbatim.
func (c *MeiliClient) SearchRaw(ctx context.Context, query string, opts Options) ([]byte, error) {
	body := meiliSearchRequest{
		Q:      query,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	if opts.HybridRatio > 0 {
		body.Hybrid = &meiliHybrid{SemanticRatio: opts.HybridRatio, Embedder: c.embedder}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal meilisearch request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/indexes/%s/search", c.host, c.index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create meilisearch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meilisearch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("meilisearch request failed with status %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read meilisearch response: %w", err)
	}
	return buf.Bytes(), nil
}
