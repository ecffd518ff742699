// zeus/services/llm/hf_image.go
package llm

import (
	"context"
	"fmt"
	"strings"

	httputils "zeus/zeus/utils/http"
	"zeus/zeus/utils/logging"

	"go.uber.org/zap"
)

const hfInferenceURL = "https://router.huggingface.co/hf-inference/models"

// HFImageClient generates images through the Hugging Face inference router.
type HFImageClient struct {
	baseURL string
	token   string
	model   string
}

func NewHFImageClient(token, model string) *HFImageClient {
	return &HFImageClient{baseURL: hfInferenceURL, token: token, model: model}
}

// WithBaseURL points the client somewhere else, mostly for tests.
func (c *HFImageClient) WithBaseURL(u string) *HFImageClient {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

type hfImageRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"parameters"`
}

func (c *HFImageClient) GenerateImage(ctx context.Context, prompt string, width, height int) ([]byte, string, error) {
	defer logging.LogDuration(ctx, "hf_generate_image")()

	req := hfImageRequest{Inputs: prompt}
	req.Parameters.Width = width
	req.Parameters.Height = height

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	data, contentType, err := httputils.PostForBytes(ctx, url, c.token, req)
	if err != nil {
		logging.ErrorLogger.Error("hf image generation failed", zap.String("model", c.model), zap.Error(err))
		return nil, "", fmt.Errorf("generate image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", ErrNoImage
	}
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/png"
	}
	return data, contentType, nil
}
