package port

import (
	"context"
	"imgopt/internal/core/domain"
)

type ImageTransformer interface {
	// Transform decodes raw image bytes, scales them to the fixed target width, converts the result to grayscale and
	// returns it JPEG encoded.
	Transform(ctx context.Context, raw []byte) (*domain.TransformedImage, error)
}
