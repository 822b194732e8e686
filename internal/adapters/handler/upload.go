package handler

import (
	"errors"
	"imgopt/internal/core/domain"
	"imgopt/internal/core/port"
	"net/http"
	"strconv"

	"github.com/c2h5oh/datasize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type Upload struct {
	processor   port.UploadProcessor
	maxBodySize int64
}

func NewUpload(processor port.UploadProcessor, maxBodySize datasize.ByteSize) *Upload {
	return &Upload{processor: processor, maxBodySize: int64(maxBodySize.Bytes())}
}

func (u *Upload) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := hlog.FromRequest(r)

	body := http.MaxBytesReader(w, r.Body, u.maxBodySize)
	defer body.Close()

	img, err := u.processor.Process(r.Context(), r.Header.Get("Content-Type"), body, r.URL.Query())
	if err != nil {
		code, message := rejection(err)

		var event *zerolog.Event
		if code >= http.StatusInternalServerError {
			event = l.Error()
		} else {
			event = l.Warn()
		}
		event.Err(err).Int("status", code).Msg("upload failed")

		writeText(w, r, code, message)
		return
	}

	w.Header().Set("Content-Type", img.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(img.Data); err != nil {
		l.Warn().Err(err).Msg("failed writing image response")
		return
	}

	event := l.Debug().Stringer("state", domain.Done).Int("bytes", len(img.Data))
	if width, height, err := img.Dimensions(); err == nil {
		event = event.Int("width", width).Int("height", height)
	}
	event.Msg("upload complete")
}

// rejection maps a pipeline error to the status code and plain text body sent
// to the client.
func rejection(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotMultipart):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, domain.ErrMissingPart):
		return http.StatusBadRequest, "No image uploaded"
	case errors.Is(err, domain.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "Image too large"
	case errors.Is(err, domain.ErrDecode):
		return http.StatusInternalServerError, "Failed to read image"
	case errors.Is(err, domain.ErrEncode):
		return http.StatusInternalServerError, "Failed to encode image"
	default:
		return http.StatusInternalServerError, "Failed to read image"
	}
}
