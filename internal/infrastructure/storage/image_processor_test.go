package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestImageProcessor_ValidateImage(t *testing.T) {
	p := NewImageProcessor()

	assert.NoError(t, p.ValidateImage(pngBytes(t, 10, 10)))
	assert.ErrorContains(t, p.ValidateImage([]byte("ID3 not an image")), "not an image")

	small := &ImageProcessor{MaxSize: 16}
	assert.ErrorContains(t, small.ValidateImage(pngBytes(t, 10, 10)), "exceeds")
}

func TestImageProcessor_Thumbnail(t *testing.T) {
	p := NewImageProcessor()

	thumb, err := p.Thumbnail(pngBytes(t, 600, 300), ThumbnailSize)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 150, cfg.Height)

	_, err = p.Thumbnail([]byte("nope"), ThumbnailSize)
	assert.Error(t, err)
}
