package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dskvich/oracai/pkg/domain"
	"github.com/dskvich/oracai/pkg/images"
)

const imageField = "image"

// readUpload returns the decoded "image" form file. A missing file yields a nil image so the
// assistant can report it the same way for every transport.
func readUpload(c *gin.Context, maxBytes int64) (*domain.UploadedImage, error) {
	// Multipart overhead on top of the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+1<<20)

	header, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return nil, &domain.ValidationError{
			Field:   imageField,
			Message: fmt.Sprintf("the file is larger than %d MB", maxBytes>>20),
		}
	}
	if err != nil {
		return nil, &domain.ValidationError{Field: imageField, Message: "the upload could not be read"}
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	return images.Read(header.Filename, f, maxBytes)
}
