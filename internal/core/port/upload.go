package port

import (
	"context"
	"imgopt/internal/core/domain"
	"io"
	"net/url"
)

type UploadProcessor interface {
	// Process decodes the form body, validates it and transforms the uploaded image. Errors are *domain.StateError
	// values wrapping one of the domain sentinel errors.
	Process(ctx context.Context, contentType string, body io.Reader, query url.Values) (*domain.TransformedImage, error)
}
