package port

import (
	"imgopt/internal/core/domain"
	"io"
	"net/url"
)

type FormDecoder interface {
	// Decode reads a multipart/form-data body described by contentType and returns the first image part along with
	// the option flag. Query values are consulted for the option flag when the form does not carry it.
	Decode(contentType string, body io.Reader, query url.Values) (*domain.Upload, error)
}
