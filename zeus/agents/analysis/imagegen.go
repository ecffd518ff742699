package analysis

import (
	"context"
	"errors"
	"strings"

	"zeus/zeus/sources/storage"
)

var ErrNoPrompt = errors.New("a prompt or an analysis is required")

// ImageGenerator renders a prompt into image bytes and their MIME type.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, width, height int) ([]byte, string, error)
}

type ImageRequest struct {
	Prompt      string `json:"prompt"`
	Analysis    string `json:"analysis"`
	AspectRatio string `json:"aspect_ratio"`
}

type ImageResult struct {
	Image  string `json:"image"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Rendered is a generated image as raw bytes.
type Rendered struct {
	Data     []byte
	MIMEType string
	Prompt   string
	Width    int
	Height   int
}

// Ext is the file extension matching the image's MIME type.
func (r *Rendered) Ext() string {
	switch r.MIMEType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// Render generates the image for req. An explicit prompt wins over one
// derived from the analysis text.
func Render(ctx context.Context, gen ImageGenerator, req ImageRequest) (*Rendered, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		if strings.TrimSpace(req.Analysis) == "" {
			return nil, ErrNoPrompt
		}
		prompt = ImagePrompt(req.Analysis)
	}
	w, h := Dimensions(req.AspectRatio)
	data, mime, err := gen.GenerateImage(ctx, prompt, w, h)
	if err != nil {
		return nil, err
	}
	return &Rendered{Data: data, MIMEType: mime, Prompt: prompt, Width: w, Height: h}, nil
}

// GenerateImage is Render with the image inlined as a data URL.
func GenerateImage(ctx context.Context, gen ImageGenerator, req ImageRequest) (*ImageResult, error) {
	r, err := Render(ctx, gen, req)
	if err != nil {
		return nil, err
	}
	return &ImageResult{Image: storage.DataURL(r.MIMEType, r.Data), Prompt: r.Prompt, Width: r.Width, Height: r.Height}, nil
}
