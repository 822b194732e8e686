package multipart

import (
	"errors"
	"fmt"
	"imgopt/internal/core/domain"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/c2h5oh/datasize"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const formDataType = "multipart/form-data"

// Decoder turns a multipart/form-data body into an ordered list of parts.
type Decoder struct {
	maxPartSize int64
}

func NewDecoder(maxPartSize datasize.ByteSize) *Decoder {
	return &Decoder{maxPartSize: int64(maxPartSize.Bytes())}
}

func (d *Decoder) Decode(contentType string, body io.Reader, query url.Values) (*domain.Upload, error) {
	boundary, err := formBoundary(contentType)
	if err != nil {
		return nil, err
	}

	parts, err := d.readParts(multipart.NewReader(body, boundary))
	if err != nil {
		return nil, err
	}

	image, ok := lo.Find(parts, func(p domain.FormPart) bool {
		return p.Name == domain.ImageField
	})
	if !ok || len(image.Content) == 0 {
		log.Debug().Int("parts", len(parts)).Msg("no image part in form")
		return nil, domain.ErrMissingPart
	}

	upload := &domain.Upload{
		Image:  image,
		Option: optionFlag(parts, query),
		Parts:  parts,
	}

	log.Debug().
		Int("parts", len(parts)).
		Int("imageBytes", len(image.Content)).
		Str("imageType", image.ContentType).
		Bool("option", bool(upload.Option)).
		Msg("decoded multipart body")

	return upload, nil
}

// readParts consumes the body part by part until the closing boundary. Every
// part is read into memory in full.
func (d *Decoder) readParts(r *multipart.Reader) ([]domain.FormPart, error) {
	var parts []domain.FormPart

	for {
		p, err := r.NextPart()
		// NextPart wraps io.EOF when the stream ends without a closing boundary,
		// only a bare io.EOF marks a complete body.
		if err == io.EOF {
			return parts, nil
		}
		if err != nil {
			return nil, classifyReadError(err)
		}

		content, err := io.ReadAll(io.LimitReader(p, d.maxPartSize+1))
		_ = p.Close()
		if err != nil {
			return nil, classifyReadError(fmt.Errorf("reading part %q: %w", p.FormName(), err))
		}

		if int64(len(content)) > d.maxPartSize {
			return nil, fmt.Errorf("%w: part %q is larger than %d bytes", domain.ErrTooLarge, p.FormName(),
				d.maxPartSize)
		}

		parts = append(parts, domain.FormPart{
			Name:        p.FormName(),
			FileName:    p.FileName(),
			ContentType: p.Header.Get("Content-Type"),
			Content:     content,
		})
	}
}

func formBoundary(contentType string) (string, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrNotMultipart, err)
	}

	if mediaType != formDataType || params["boundary"] == "" {
		return "", fmt.Errorf("%w: got %q", domain.ErrNotMultipart, mediaType)
	}

	return params["boundary"], nil
}

func classifyReadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: %w", domain.ErrTooLarge, err)
	}

	return fmt.Errorf("%w: %w", domain.ErrNotMultipart, err)
}

func optionFlag(parts []domain.FormPart, query url.Values) domain.OptionFlag {
	if p, ok := lo.Find(parts, func(p domain.FormPart) bool {
		return p.Name == domain.OptionField
	}); ok {
		return domain.ParseOptionFlag(string(p.Content), true)
	}

	return domain.ParseOptionFlag(query.Get(domain.OptionField), query.Has(domain.OptionField))
}
