package llm

import (
	"encoding/json"
	"testing"
)

func TestContentBlockDecodeText(t *testing.T) {
	var block ContentBlock
	if err := json.Unmarshal([]byte(`{"type":"text","text":"hello"}`), &block); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if block.Type != ContentTypeText || block.Text != "hello" {
		t.Fatalf("unexpected block: %+v", block)
	}
	if block.IsToolResult() {
		t.Fatal("text block reported as tool result")
	}
}

func TestContentBlockRoundTripPreservesUnknownFields(t *testing.T) {
	raw := `{"type":"mcp_tool_use","id":"toolu_01","name":"search","server_name":"near-docs","input":{"query":"validators"}}`
	var block ContentBlock
	if err := json.Unmarshal([]byte(raw), &block); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	out, err := json.Marshal(block)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got, want map[string]interface{}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
	if err := json.Unmarshal([]byte(raw), &want); err != nil {
		t.Fatalf("decode original: %v", err)
	}
	for key, value := range want {
		gotValue, ok := got[key]
		if !ok {
			t.Fatalf("round trip dropped field %q", key)
		}
		a, _ := json.Marshal(gotValue)
		b, _ := json.Marshal(value)
		if string(a) != string(b) {
			t.Fatalf("field %q changed: got %s, want %s", key, a, b)
		}
	}
}

func TestContentBlockPayloadTextString(t *testing.T) {
	var block ContentBlock
	raw := `{"type":"mcp_tool_result","is_error":false,"content":"{\"hits\":[]}"}`
	if err := json.Unmarshal([]byte(raw), &block); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !block.IsToolResult() {
		t.Fatal("expected tool result block")
	}
	if got := block.PayloadText(); got != `{"hits":[]}` {
		t.Fatalf("unexpected payload: %q", got)
	}
}

func TestContentBlockPayloadTextFragments(t *testing.T) {
	var block ContentBlock
	raw := `{"type":"tool_result","content":[{"type":"text","text":"{\"hits\":"},{"type":"text","text":"[]}"}]}`
	if err := json.Unmarshal([]byte(raw), &block); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := block.PayloadText(); got != `{"hits":[]}` {
		t.Fatalf("unexpected payload: %q", got)
	}
}

func TestContentBlockPayloadTextIgnoresNonTextFragments(t *testing.T) {
	var block ContentBlock
	raw := `{"type":"tool_result","content":[{"type":"text","text":"{\"hits\":"},{"type":"image","text":"ignored"},{"type":"text","text":"[]}"}]}`
	if err := json.Unmarshal([]byte(raw), &block); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := block.PayloadText(); got != `{"hits":[]}` {
		t.Fatalf("non-text fragments must not contribute: %q", got)
	}
}

func TestContentBlockPayloadTextUnparseable(t *testing.T) {
	var block ContentBlock
	raw := `{"type":"tool_result","content":{"unexpected":"shape"}}`
	if err := json.Unmarshal([]byte(raw), &block); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := block.PayloadText(); got != "" {
		t.Fatalf("expected empty payload, got %q", got)
	}
}

func TestResponseFirstText(t *testing.T) {
	resp := &Response{Content: []ContentBlock{
		{Type: "mcp_tool_use"},
		NewTextBlock("first"),
		NewTextBlock("second"),
	}}
	if got := resp.FirstText(); got != "first" {
		t.Fatalf("expected first text block, got %q", got)
	}

	empty := &Response{}
	if got := empty.FirstText(); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
