package chat

import (
	"strings"
	"testing"

	"github.com/matiasbenary/mcp-meilisearch/internal/search"
)

func TestBuildContextEmpty(t *testing.T) {
	if got := buildContext(nil, 2000); got != "No relevant documentation found." {
		t.Fatalf("unexpected marker: %q", got)
	}
}

func TestBuildContextRendersHits(t *testing.T) {
	hits := []search.Hit{
		{Title: "Validators", Path: "/protocol/validators", Content: "Staking overview."},
		{Title: "", Path: "/concepts/accounts", Content: "Accounts explained."},
	}
	got := buildContext(hits, 2000)

	if !strings.Contains(got, "## Validators\nPath: /protocol/validators\nStaking overview.") {
		t.Errorf("missing first entry:\n%s", got)
	}
	if !strings.Contains(got, "## Untitled\nPath: /concepts/accounts\n") {
		t.Errorf("missing untitled heading:\n%s", got)
	}
	if strings.Count(got, "\n---\n") != 1 {
		t.Errorf("expected one separator between two entries:\n%s", got)
	}
}

func TestBuildContextTruncatesContent(t *testing.T) {
	long := strings.Repeat("a", 2500)
	hits := []search.Hit{{Title: "Long", Path: "/long", Content: long}}

	got := buildContext(hits, 2000)
	if !strings.HasSuffix(got, strings.Repeat("a", 2000)) {
		t.Error("content should be cut at exactly the char limit")
	}
	if strings.Contains(got, strings.Repeat("a", 2001)) {
		t.Error("content exceeds the char limit")
	}
}
