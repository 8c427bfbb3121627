package loader

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 90, A: 255})
		}
	}
	return img
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.jpg", "out.tiff", "out.bmp"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(testImage(12, 7), path, 90))

			img, err := Open(path)
			require.NoError(t, err)
			assert.Equal(t, 12, img.Bounds().Dx())
			assert.Equal(t, 7, img.Bounds().Dy())
		})
	}
}

func TestOpen_PNGIsLossless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exact.png")
	src := testImage(5, 4)
	require.NoError(t, Save(src, path, 95))

	img, err := Open(path)
	require.NoError(t, err)
	r, g, b, _ := img.At(3, 2).RGBA()
	assert.Equal(t, uint32(30), r>>8)
	assert.Equal(t, uint32(20), g>>8)
	assert.Equal(t, uint32(90), b>>8)
}

func TestOpen_Failures(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, ErrLoadFailure)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a png"), 0644))
	_, err = Open(garbage)
	assert.ErrorIs(t, err, ErrLoadFailure)
}

func TestSave_UnsupportedExtension(t *testing.T) {
	err := Save(testImage(2, 2), filepath.Join(t.TempDir(), "out.xyz"), 95)
	assert.Error(t, err)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("a/b/photo.JPG"))
	assert.True(t, IsImage("scan.tiff"))
	assert.True(t, IsImage("web.webp"))
	assert.False(t, IsImage("notes.txt"))
	assert.False(t, IsImage("noext"))
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "beach-640x480.png", OutputName("/photos/beach.jpg", 640, 480))
	assert.Equal(t, "a.b-1x2.png", OutputName("a.b.tiff", 1, 2))
}
