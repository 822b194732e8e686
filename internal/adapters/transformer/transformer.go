package transformer

import (
	"fmt"
	"imgopt/internal/core/port"
)

const (
	EngineNative = "native"
	EngineMagick = "magick"
)

// New builds the transform engine selected in the configuration.
func New(engine string, quality, maxPixels int) (port.ImageTransformer, error) {
	switch engine {
	case EngineNative, "":
		return NewNative(quality, maxPixels), nil
	case EngineMagick:
		m, err := NewMagick(quality, maxPixels)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown transform engine %q", engine)
	}
}
