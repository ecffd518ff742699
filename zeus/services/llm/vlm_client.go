// zeus/services/llm/vlm_client.go
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	httputils "zeus/zeus/utils/http"
	"zeus/zeus/utils/logging"

	"go.uber.org/zap"
)

// VLMClient talks to an OpenAI-compatible chat-completion endpoint that
// accepts image parts.
type VLMClient struct {
	baseURL string
	apiKey  string
}

func NewVLMClient(baseURL, apiKey string) *VLMClient {
	if apiKey == "" {
		logging.AppLogger.Warn("VLM_API_KEY is empty, upstream calls will likely be rejected")
	}
	return &VLMClient{baseURL: baseURL, apiKey: apiKey}
}

func (c *VLMClient) endpoint() string {
	return fmt.Sprintf("%s/chat/completions", c.baseURL)
}

// Run executes a single non-streaming completion and returns the first
// choice's content as text. A response without choices yields "".
func (c *VLMClient) Run(ctx context.Context, req ChatRequest) (string, error) {
	defer logging.LogDuration(ctx, "vlm_service_run")()

	req.Stream = false
	var resp chatResponse
	if err := httputils.PostJSONWithAuth(ctx, c.endpoint(), c.apiKey, req, &resp); err != nil {
		logging.ErrorLogger.Error("vlm request failed", zap.String("model", req.Model), zap.Error(err))
		return "", fmt.Errorf("vlm request: %w", err)
	}
	if len(resp.Choices) == 0 {
		logging.AppLogger.Warn("vlm returned no choices", zap.String("model", req.Model))
		return "", nil
	}
	return NormalizeContent(resp.Choices[0].Message.Content), nil
}

// ProxyRequest is the body accepted by the pass-through endpoint. Messages
// are forwarded untouched.
type ProxyRequest struct {
	Model       string          `json:"model"`
	Messages    json.RawMessage `json:"messages"`
	Temperature *float64        `json:"temperature,omitempty"`
	MaxTokens   *int            `json:"max_tokens,omitempty"`
	TopP        *float64        `json:"top_p,omitempty"`
	Stream      *bool           `json:"stream,omitempty"`
}

// WithDefaults fills the sampling fields the caller left out. Streaming is
// always off.
func (p ProxyRequest) WithDefaults() ProxyRequest {
	if p.Temperature == nil {
		t := 0.6
		p.Temperature = &t
	}
	if p.MaxTokens == nil {
		n := 800
		p.MaxTokens = &n
	}
	if p.TopP == nil {
		v := 1.0
		p.TopP = &v
	}
	stream := false
	p.Stream = &stream
	return p
}

// Forward relays a proxy request and returns the upstream status, content
// type and body without interpreting them.
func (c *VLMClient) Forward(ctx context.Context, req ProxyRequest) (int, string, []byte, error) {
	defer logging.LogDuration(ctx, "vlm_service_forward")()

	body, err := json.Marshal(req.WithDefaults())
	if err != nil {
		return 0, "", nil, err
	}
	return httputils.PostRaw(ctx, c.endpoint(), c.apiKey, body)
}
