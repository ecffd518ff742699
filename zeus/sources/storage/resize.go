package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	MaxUploadBytes = 10 << 20
	MaxSide        = 1280
	JPEGQuality    = 78
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrNotImage     = errors.New("file is not a supported image")
)

// CompressImage decodes data, scales it to fit MaxSide on its longest edge
// (never enlarging) and re-encodes it as JPEG.
func CompressImage(data []byte) ([]byte, error) {
	if len(data) > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	b := src.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), MaxSide)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}

// FitWithin scales (w, h) so the longer side is at most limit, keeping the
// aspect ratio. Sizes already within bounds are returned unchanged.
func FitWithin(w, h, limit int) (int, int) {
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= limit || longest == 0 {
		return w, h
	}
	scale := float64(limit) / float64(longest)
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
