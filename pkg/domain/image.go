package domain

import (
	"encoding/base64"
	"image"
)

// UploadedImage lives for a single request and is not retained after the response is rendered.
type UploadedImage struct {
	Name     string
	Data     []byte
	MIMEType string
	Width    int
	Height   int
	Pixels   image.Image
}

func (i *UploadedImage) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}
