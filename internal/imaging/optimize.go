// Package imaging downscales and recompresses visiting-card photos before
// they are shipped to the remote media host.
package imaging

import (
	"bytes"

	img "github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Bounding box and quality applied to every stored card image. Images already
// inside the box are recompressed but never upscaled.
const (
	maxWidth    = 1200
	maxHeight   = 800
	jpegQuality = 85
)

// Optimizer recompresses card images. Any internal failure falls back to the
// original buffer; callers never see an error.
type Optimizer struct {
	logger *zap.Logger
}

// NewOptimizer constructs an Optimizer.
func NewOptimizer(logger *zap.Logger) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{logger: logger}
}

// Optimize fits the image inside the bounding box and re-encodes it as JPEG.
func (o *Optimizer) Optimize(data []byte) []byte {
	src, err := img.Decode(bytes.NewReader(data), img.AutoOrientation(true))
	if err != nil {
		o.logger.Warn("card image left unoptimized", zap.Error(err))
		return data
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		src = img.Fit(src, maxWidth, maxHeight, img.Lanczos)
	}

	out := &bytes.Buffer{}
	if err := img.Encode(out, src, img.JPEG, img.JPEGQuality(jpegQuality)); err != nil {
		o.logger.Warn("card image left unoptimized", zap.Error(err))
		return data
	}
	return out.Bytes()
}
