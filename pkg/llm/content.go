package llm

import "encoding/json"

// Content block types the orchestrator inspects. Anything else passes
// through untouched.
const (
	ContentTypeText          = "text"
	ContentTypeToolResult    = "tool_result"
	ContentTypeMCPToolResult = "mcp_tool_result"
)

// ContentBlock is one block of a message's content array. Blocks decoded
// from an upstream response keep their raw bytes so re-sending them in a
// follow-up request preserves fields this struct does not model.
type ContentBlock struct {
	Type    string
	Text    string
	IsError bool

	payload json.RawMessage
	raw     json.RawMessage
}

// NewTextBlock builds a plain text block.
func NewTextBlock(text string) ContentBlock {
	return ContentBlock{Type: ContentTypeText, Text: text}
}

// IsToolResult reports whether the block carries a tool invocation result.
func (b ContentBlock) IsToolResult() bool {
	return b.Type == ContentTypeToolResult || b.Type == ContentTypeMCPToolResult
}

type contentEnvelope struct {
	Type    string          `json:"type"`
	Text    string          `json:"text,omitempty"`
	IsError bool            `json:"is_error,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var env contentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	b.Type = env.Type
	b.Text = env.Text
	b.IsError = env.IsError
	b.payload = env.Content
	b.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	if len(b.raw) > 0 {
		return b.raw, nil
	}
	return json.Marshal(contentEnvelope{
		Type:    b.Type,
		Text:    b.Text,
		IsError: b.IsError,
		Content: b.payload,
	})
}

type textFragment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PayloadText extracts the textual payload of a tool result block. The
// payload arrives either as a bare JSON string or as an array of text
// fragments. Returns "" when neither form matches.
func (b ContentBlock) PayloadText() string {
	if len(b.payload) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.payload, &s); err == nil {
		return s
	}
	var fragments []textFragment
	if err := json.Unmarshal(b.payload, &fragments); err == nil {
		var out string
		for _, f := range fragments {
			if f.Type != ContentTypeText {
				continue
			}
			out += f.Text
		}
		return out
	}
	return ""
}
