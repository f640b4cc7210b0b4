package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/oracai/pkg/domain"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(), nil))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		img, err := Decode("erd.png", encodePNG(t))
		require.NoError(t, err)

		assert.Equal(t, "erd.png", img.Name)
		assert.Equal(t, "image/png", img.MIMEType)
		assert.Equal(t, 4, img.Width)
		assert.Equal(t, 3, img.Height)
		assert.NotNil(t, img.Pixels)
	})

	t.Run("jpeg", func(t *testing.T) {
		img, err := Decode("cloud.jpg", encodeJPEG(t))
		require.NoError(t, err)

		assert.Equal(t, "image/jpeg", img.MIMEType)
		assert.Equal(t, 4, img.Width)
	})
}

func TestDecode_Rejects(t *testing.T) {
	tests := map[string][]byte{
		"empty":         nil,
		"text":          []byte("definitely not an image"),
		"gif":           []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"),
		"truncated png": encodePNG(t)[:20],
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			img, err := Decode("upload", data)

			assert.Nil(t, img)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRead_TooLarge(t *testing.T) {
	data := encodePNG(t)

	_, err := Read("erd.png", bytes.NewReader(data), int64(len(data)-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	img, err := Read("erd.png", bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
}
