package transformer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"imgopt/internal/core/domain"

	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Native transforms images in process with the Go image packages.
type Native struct {
	quality   int
	maxPixels int
}

func NewNative(quality, maxPixels int) *Native {
	return &Native{quality: quality, maxPixels: maxPixels}
}

func (n *Native) Transform(ctx context.Context, raw []byte) (*domain.TransformedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := sniffImage(raw); err != nil {
		return nil, err
	}

	if _, err := checkDimensions(raw, n.maxPixels); err != nil {
		return nil, err
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrDecode, err)
		log.Warn().Err(err).Int("bytes", len(raw)).Send()
		return nil, err
	}

	bounds := src.Bounds()
	width, height := domain.TargetSize(bounds.Dx(), bounds.Dy())

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), src, bounds, draw.Src, nil)

	// color.GrayModel applies the ITU-R BT.601 luma weights.
	gray := image.NewGray(scaled.Bounds())
	draw.Draw(gray, gray.Bounds(), scaled, image.Point{}, draw.Src)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, gray, &jpeg.Options{Quality: n.quality}); err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrEncode, err)
		log.Error().Err(err).Send()
		return nil, err
	}

	log.Debug().
		Str("format", format).
		Int("srcWidth", bounds.Dx()).
		Int("srcHeight", bounds.Dy()).
		Int("width", width).
		Int("height", height).
		Int("bytes", buf.Len()).
		Msg("image transformed")

	return domain.NewTransformedImage(buf.Bytes()), nil
}
