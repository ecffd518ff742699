// zeus/services/llm/llm.go
package llm

import (
	"context"
	"encoding/json"
	"strings"

	"zeus/zeus/types"
)

// Runner is anything that answers an OpenAI-style chat-completion request.
type Runner interface {
	Run(ctx context.Context, req ChatRequest) (string, error)
}

type ChatRequest struct {
	Model       string                  `json:"model"`
	Messages    []types.ProviderMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens,omitempty"`
	TopP        float64                 `json:"top_p,omitempty"`
	Stream      bool                    `json:"stream"`
}

// InlineImage is raw image bytes for providers that take them inline.
type InlineImage struct {
	Data     []byte
	MIMEType string
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NormalizeContent flattens a choice's content. A plain string is returned
// as is. In an array every part contributes a line: its text for text parts,
// an empty string otherwise.
func NormalizeContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return ""
	}
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = partText(p)
	}
	return strings.Join(lines, "\n")
}

func partText(raw json.RawMessage) string {
	var part struct {
		Type string          `json:"type"`
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(raw, &part); err != nil || part.Type != "text" {
		return ""
	}
	var text string
	if err := json.Unmarshal(part.Text, &text); err != nil {
		return ""
	}
	return text
}
