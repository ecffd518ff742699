// zeus/services/llm/gemini.go
package llm

import (
	"context"
	"errors"
	"fmt"

	"zeus/zeus/utils/logging"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

var ErrNoImage = errors.New("no image in response")

type GeminiClient struct {
	client     *genai.Client
	model      string
	imageModel string
}

func NewGeminiClient(ctx context.Context, apiKey, model, imageModel string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model, imageModel: imageModel}, nil
}

// Generate sends one user turn made of the prompt and an optional inline
// image, and returns the response text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, image *InlineImage, temperature float64, maxTokens int) (string, error) {
	defer logging.LogDuration(ctx, "gemini_generate")()

	parts := []*genai.Part{}
	if image != nil {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: image.MIMEType, Data: image.Data}})
	}
	parts = append(parts, &genai.Part{Text: prompt})

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](float32(temperature)),
		MaxOutputTokens: int32(maxTokens),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: parts}}, cfg)
	if err != nil {
		logging.ErrorLogger.Error("gemini generate failed", zap.String("model", g.model), zap.Error(err))
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// GenerateImage asks the image model for a picture. The model chooses its own
// resolution, so width and height only shape the prompt.
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string, width, height int) ([]byte, string, error) {
	defer logging.LogDuration(ctx, "gemini_generate_image")()

	cfg := &genai.GenerateContentConfig{ResponseModalities: []string{"TEXT", "IMAGE"}}
	text := fmt.Sprintf("%s Aspect %dx%d.", prompt, width, height)
	resp, err := g.client.Models.GenerateContent(ctx, g.imageModel, genai.Text(text), cfg)
	if err != nil {
		logging.ErrorLogger.Error("gemini image generation failed", zap.String("model", g.imageModel), zap.Error(err))
		return nil, "", fmt.Errorf("generate image: %w", err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && len(p.InlineData.Data) > 0 {
				mime := p.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return p.InlineData.Data, mime, nil
			}
		}
	}
	return nil, "", ErrNoImage
}
