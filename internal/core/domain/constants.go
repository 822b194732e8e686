package domain

import "errors"

var (
	ErrNotMultipart = errors.New("request is not multipart/form-data")
	ErrMissingPart  = errors.New("no image part in request")
	ErrTooLarge     = errors.New("upload exceeds size limit")
	ErrDecode       = errors.New("failed to decode image")
	ErrEncode       = errors.New("failed to encode image")
)

const (
	// TargetWidth is the fixed width of every transformed image.
	TargetWidth = 200

	ImageField    = "image"
	OptionField   = "checkbox"
	OptionEnabled = "on"

	MIMETypeJPEG = "image/jpeg"
)
