package transformer

import (
	"context"
	"errors"
	"fmt"
	"imgopt/internal/adapters/file"
	"imgopt/internal/core/domain"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Magick delegates the transform to an ImageMagick binary. Input and output
// go through uuid-named temp files, so concurrent requests never share a path.
type Magick struct {
	magickBinary []string
	quality      int
	maxPixels    int
}

func NewMagick(quality, maxPixels int) (*Magick, error) {
	m := &Magick{quality: quality, maxPixels: maxPixels}
	commands := [][]string{{"magick", "-version"}, {"convert", "-version"}}

	for _, command := range commands {
		_, err := exec.Command(command[0], command[1:]...).Output()
		if err != nil {
			log.Debug().Strs("command", command).Msg("binary not found")
			continue
		}

		log.Debug().Strs("command", command).Msg("binary found")
		m.magickBinary = command[:len(command)-1]
		break
	}

	if len(m.magickBinary) == 0 {
		return nil, errors.New("magick binary not available")
	}

	return m, nil
}

func (m *Magick) Transform(ctx context.Context, raw []byte) (*domain.TransformedImage, error) {
	detected, err := sniffImage(raw)
	if err != nil {
		return nil, err
	}

	if _, err := checkDimensions(raw, m.maxPixels); err != nil {
		return nil, err
	}

	in, err := file.SaveTempFile(raw, detected.Extension())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncode, err)
	}
	defer file.RemoveTempFile(in)

	out, err := file.TempPath(".jpg")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncode, err)
	}
	defer file.RemoveTempFile(out)

	args := make([]string, 0, len(m.magickBinary)+12)
	args = append(args, m.magickBinary...)
	args = append(args,
		in+"[0]",
		"-resize", fmt.Sprintf("%dx", domain.TargetWidth),
		"-colorspace", "Gray",
		"-type", "Grayscale",
		"-quality", strconv.Itoa(m.quality),
		"jpeg:"+out,
	)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stderr, err := cmd.CombinedOutput()
	if err != nil {
		log.Error().Bytes("magickStderr", stderr).Err(err).Msg("magick command failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	log.Debug().Msg("magick command finished")

	data, err := file.GetTempFile(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEncode, err)
	}

	return domain.NewTransformedImage(data), nil
}
