// zeus/controllers/upload.go
package controllers

import (
	"context"

	"zeus/zeus/agents/core"
	apitypes "zeus/zeus/utils/types"
)

type UploadController struct {
	uploader core.Uploader
}

func NewUploadController(uploader core.Uploader) *UploadController {
	return &UploadController{uploader: uploader}
}

func (c *UploadController) Upload(ctx context.Context, filename, contentType string, data []byte) (*apitypes.UploadResponse, error) {
	url, err := c.uploader.UploadImage(ctx, filename, contentType, data)
	if err != nil {
		return nil, err
	}
	return &apitypes.UploadResponse{URL: url}, nil
}
