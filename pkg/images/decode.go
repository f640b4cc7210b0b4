// Package images validates uploaded diagrams before they are sent to the model.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"

	"github.com/dskvich/oracai/pkg/domain"
)

const DefaultMaxBytes = 10 << 20

var allowedTypes = []string{"image/jpeg", "image/png"}

// AcceptAttr is the file input accept list for the supported formats.
const AcceptAttr = ".jpg,.jpeg,.png,image/jpeg,image/png"

// Read consumes r up to maxBytes and decodes the result as a JPEG or PNG image.
func Read(name string, r io.Reader, maxBytes int64) (*domain.UploadedImage, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, &domain.ValidationError{
			Field:   "image",
			Message: fmt.Sprintf("the file is larger than %d MB", maxBytes>>20),
		}
	}

	return Decode(name, data)
}

// Decode checks the sniffed content type and decodes the pixels.
func Decode(name string, data []byte) (*domain.UploadedImage, error) {
	if len(data) == 0 {
		return nil, &domain.ValidationError{Field: "image", Message: "please upload an image first"}
	}

	mime := mimetype.Detect(data)
	mimeType, ok := lo.Find(allowedTypes, func(t string) bool { return mime.Is(t) })
	if !ok {
		return nil, &domain.ValidationError{
			Field:   "image",
			Message: fmt.Sprintf("unsupported file type %s, upload a JPG or PNG image", mime.String()),
		}
	}

	pixels, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.ValidationError{Field: "image", Message: "the image could not be decoded"}
	}

	bounds := pixels.Bounds()

	return &domain.UploadedImage{
		Name:     name,
		Data:     data,
		MIMEType: mimeType,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Pixels:   pixels,
	}, nil
}
