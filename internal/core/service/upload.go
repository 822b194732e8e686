package service

import (
	"context"
	"errors"
	"imgopt/internal/core/domain"
	"imgopt/internal/core/port"
	"io"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Upload runs a single upload from the raw request body to the transformed
// image. It holds no per-request state and is safe for concurrent use.
type Upload struct {
	decoder     port.FormDecoder
	transformer port.ImageTransformer
}

func NewUpload(decoder port.FormDecoder, transformer port.ImageTransformer) *Upload {
	return &Upload{decoder: decoder, transformer: transformer}
}

// Process advances the upload through AwaitingParse, Validating and Transforming. On success the upload is left in
// Responding and the caller writes the image. Failures are returned as *domain.StateError.
func (u *Upload) Process(ctx context.Context, contentType string, body io.Reader,
	query url.Values) (*domain.TransformedImage, error) {
	l := zerolog.Ctx(ctx)
	state := domain.AwaitingParse

	advance := func(next domain.UploadState) {
		l.Debug().Stringer("from", state).Stringer("to", next).Msg("upload state changed")
		state = next
	}

	reject := func(err error) error {
		l.Debug().Err(err).Stringer("state", state).Msg("upload rejected")
		return &domain.StateError{State: state, Err: err}
	}

	upload, err := u.decoder.Decode(contentType, body, query)
	if err != nil {
		if !errors.Is(err, domain.ErrNotMultipart) {
			advance(domain.Validating)
		}
		return nil, reject(err)
	}

	advance(domain.Validating)

	l.Debug().
		Strs("parts", lo.Map(upload.Parts, func(p domain.FormPart, _ int) string { return p.Name })).
		Str("fileName", upload.Image.FileName).
		Msg("form decoded")

	if upload.Option {
		// recorded only, the transform ignores it
		l.Info().Msg("checkbox is checked")
	}

	advance(domain.Transforming)

	img, err := u.transformer.Transform(ctx, upload.Image.Content)
	if err != nil {
		return nil, reject(err)
	}

	advance(domain.Responding)

	return img, nil
}
