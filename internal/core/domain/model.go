package domain

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
)

// FormPart is a single decoded multipart segment.
type FormPart struct {
	Name        string
	FileName    string
	ContentType string
	Content     []byte
}

// Upload is what the form decoder hands to the transform pipeline.
type Upload struct {
	Image  FormPart
	Option OptionFlag
	Parts  []FormPart
}

// OptionFlag mirrors the checkbox on the upload form. It is captured but does
// not change the transform.
type OptionFlag bool

func ParseOptionFlag(value string, present bool) OptionFlag {
	return OptionFlag(present && value == OptionEnabled)
}

type TransformedImage struct {
	Data     []byte
	MIMEType string
}

func NewTransformedImage(data []byte) *TransformedImage {
	return &TransformedImage{Data: data, MIMEType: MIMETypeJPEG}
}

// Dimensions reads width and height from the encoded header.
func (t *TransformedImage) Dimensions() (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(t.Data))
	if err != nil {
		return 0, 0, fmt.Errorf("reading transformed image header: %w", err)
	}

	return cfg.Width, cfg.Height, nil
}
