package chat

import (
	"strings"

	"github.com/matiasbenary/mcp-meilisearch/internal/search"
)

const (
	defaultContextCharLimit = 2000

	// noDocsMarker tells the model no documentation matched. The system
	// prompt instructs it to admit it cannot answer from the docs.
	noDocsMarker = "No relevant documentation found."

	contextSeparator = "\n---\n"
)

// buildContext renders search hits into a single text block for prompt
// injection. Each hit's content is hard-cut at charLimit characters so the
// prompt stays bounded regardless of document length.
func buildContext(hits []search.Hit, charLimit int) string {
	if charLimit <= 0 {
		charLimit = defaultContextCharLimit
	}
	if len(hits) == 0 {
		return noDocsMarker
	}

	entries := make([]string, 0, len(hits))
	for _, hit := range hits {
		title := hit.Title
		if title == "" {
			title = untitledSource
		}
		content := hit.Content
		if len(content) > charLimit {
			content = content[:charLimit]
		}
		var b strings.Builder
		b.WriteString("## ")
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString("Path: ")
		b.WriteString(hit.Path)
		b.WriteString("\n")
		b.WriteString(content)
		entries = append(entries, b.String())
	}
	return strings.Join(entries, contextSeparator)
}
