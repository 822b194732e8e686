package transformer

import (
	"bytes"
	"fmt"
	"image"
	"imgopt/internal/core/domain"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// sniffImage rejects payloads whose magic bytes do not belong to an image
// type before any decoder runs.
func sniffImage(raw []byte) (*mimetype.MIME, error) {
	detected := mimetype.Detect(raw)
	if !strings.HasPrefix(detected.String(), "image/") {
		err := fmt.Errorf("%w: unsupported content type %s", domain.ErrDecode, detected.String())
		log.Warn().Err(err).Int("bytes", len(raw)).Send()
		return nil, err
	}

	return detected, nil
}

// maxJPEGSide is the largest width or height the JPEG encoder accepts.
const maxJPEGSide = 1<<16 - 1

// checkDimensions reads only the image header and rejects sources above
// maxPixels, or whose scaled output could not be JPEG encoded, before any
// pixel buffer is allocated.
func checkDimensions(raw []byte, maxPixels int) (image.Config, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrDecode, err)
		log.Warn().Err(err).Int("bytes", len(raw)).Send()
		return cfg, err
	}

	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		err = fmt.Errorf("%w: %s source of %dx%d exceeds %d pixels", domain.ErrDecode, format, cfg.Width,
			cfg.Height, maxPixels)
		log.Warn().Err(err).Int("bytes", len(raw)).Send()
		return cfg, err
	}

	if _, height := domain.TargetSize(cfg.Width, cfg.Height); height > maxJPEGSide {
		err = fmt.Errorf("%w: scaled height %d exceeds %d", domain.ErrEncode, height, maxJPEGSide)
		log.Warn().Err(err).Int("srcWidth", cfg.Width).Int("srcHeight", cfg.Height).Send()
		return cfg, err
	}

	return cfg, nil
}
