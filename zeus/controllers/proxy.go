// zeus/controllers/proxy.go
package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"zeus/zeus/agents/core"
	"zeus/zeus/services/llm"
	apitypes "zeus/zeus/utils/types"
)

var ErrProxyRequest = errors.New("model and a messages array are required")

// Forwarder relays raw chat-completion requests.
type Forwarder interface {
	Forward(ctx context.Context, req llm.ProxyRequest) (int, string, []byte, error)
}

type ProxyController struct {
	forwarder  Forwarder
	translator core.Translator
}

func NewProxyController(forwarder Forwarder, translator core.Translator) *ProxyController {
	return &ProxyController{forwarder: forwarder, translator: translator}
}

// Upstream is a relayed response, passed back verbatim.
type Upstream struct {
	Status      int
	ContentType string
	Body        []byte
}

func (c *ProxyController) Forward(ctx context.Context, req llm.ProxyRequest) (*Upstream, error) {
	if strings.TrimSpace(req.Model) == "" || !isArray(req.Messages) {
		return nil, ErrProxyRequest
	}
	status, ct, body, err := c.forwarder.Forward(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Upstream{Status: status, ContentType: ct, Body: body}, nil
}

// isArray reports whether raw is a JSON array; an empty one counts.
func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return false
	}
	var items []json.RawMessage
	return json.Unmarshal(raw, &items) == nil
}

func (c *ProxyController) Translate(ctx context.Context, req apitypes.TranslateRequest) (*apitypes.TranslateResponse, error) {
	if _, err := llm.ParseTarget(req.Target); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return &apitypes.TranslateResponse{Translated: req.Text}, nil
	}
	out, err := c.translator.Translate(ctx, req.Text, req.Target)
	if err != nil {
		return nil, err
	}
	return &apitypes.TranslateResponse{Translated: out}, nil
}
