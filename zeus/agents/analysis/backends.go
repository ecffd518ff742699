package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zeus/zeus/services/llm"
	"zeus/zeus/types"
)

// Prompt is what an analysis backend receives. Image holds bytes that were
// already compressed to JPEG.
type Prompt struct {
	System      string
	Text        string
	Image       *llm.InlineImage
	ImageURL    string
	Temperature float64
	MaxTokens   int
}

type Backend interface {
	Name() string
	Analyze(ctx context.Context, p Prompt) (string, error)
}

// ImageUploader turns compressed JPEG bytes into a URL a remote model can
// fetch.
type ImageUploader interface {
	StoreJPEG(ctx context.Context, jpg []byte) (string, error)
}

var ErrImageUnavailable = errors.New("no image url and no uploader")

// VLMBackend analyzes through the chat-completion model. Images are
// uploaded first and referenced by URL.
type VLMBackend struct {
	runner   llm.Runner
	model    string
	uploader ImageUploader
}

func NewVLMBackend(runner llm.Runner, model string, uploader ImageUploader) *VLMBackend {
	return &VLMBackend{runner: runner, model: model, uploader: uploader}
}

func (b *VLMBackend) Name() string { return "vlm" }

func (b *VLMBackend) Analyze(ctx context.Context, p Prompt) (string, error) {
	parts := []types.Part{types.TextPart(p.Text)}
	url := p.ImageURL
	if url == "" && p.Image != nil {
		if b.uploader == nil {
			return "", ErrImageUnavailable
		}
		u, err := b.uploader.StoreJPEG(ctx, p.Image.Data)
		if err != nil {
			return "", fmt.Errorf("upload analysis image: %w", err)
		}
		url = u
	}
	if url != "" {
		parts = append(parts, types.ImagePart(url))
	}

	msgs := make([]types.ProviderMessage, 0, 2)
	if strings.TrimSpace(p.System) != "" {
		msgs = append(msgs, types.ProviderMessage{Role: types.RoleSystem, Content: []types.Part{types.TextPart(p.System)}})
	}
	msgs = append(msgs, types.ProviderMessage{Role: types.RoleUser, Content: parts})

	return b.runner.Run(ctx, llm.ChatRequest{
		Model:       b.model,
		Messages:    msgs,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	})
}

// Generator is the part of the Gemini client the analyzer needs.
type Generator interface {
	Generate(ctx context.Context, prompt string, image *llm.InlineImage, temperature float64, maxTokens int) (string, error)
}

// GeminiBackend sends the image inline with the mode prompt. It has no
// system turn.
type GeminiBackend struct {
	gen Generator
}

func NewGeminiBackend(gen Generator) *GeminiBackend {
	return &GeminiBackend{gen: gen}
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) Analyze(ctx context.Context, p Prompt) (string, error) {
	if p.Image == nil && p.ImageURL != "" {
		return "", fmt.Errorf("gemini backend needs image bytes: %w", ErrImageUnavailable)
	}
	return b.gen.Generate(ctx, p.Text, p.Image, p.Temperature, p.MaxTokens)
}
