// zeus/controllers/image.go
package controllers

import (
	"context"

	"zeus/zeus/agents/analysis"
)

type ImageController struct {
	gen analysis.ImageGenerator
}

func NewImageController(gen analysis.ImageGenerator) *ImageController {
	return &ImageController{gen: gen}
}

func (c *ImageController) Generate(ctx context.Context, req analysis.ImageRequest) (*analysis.ImageResult, error) {
	return analysis.GenerateImage(ctx, c.gen, req)
}
