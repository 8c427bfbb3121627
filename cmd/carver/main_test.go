package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/Carver/config"
	"github.com/dixieflatline76/Carver/pkg/carver"
	"github.com/dixieflatline76/Carver/pkg/loader"
)

func writeTestImage(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 13), G: uint8(y * 7), B: uint8((x + y) * 5), A: 255})
		}
	}
	path := filepath.Join(dir, "input.png")
	require.NoError(t, loader.Save(img, path, 95))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--quiet"))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCarveCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, 20, 16)
	out := filepath.Join(dir, "out.png")

	stdout, err := execute(t, "carve", in, "-o", out, "--cols", "5", "--rows", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "15x13")

	img, err := loader.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 15, 13), img.Bounds())
}

func TestCarveCommand_Size(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, 20, 16)
	out := filepath.Join(dir, "out.png")

	_, err := execute(t, "carve", in, "-o", out, "--size", "12x10", "--order", "alternate", "--energy", "gradient")
	require.NoError(t, err)

	img, err := loader.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 10), img.Bounds())
}

func TestCarveCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, 10, 10)

	_, err := execute(t, "carve", in, "--cols", "10")
	assert.ErrorIs(t, err, carver.ErrInvalidTarget)

	_, err = execute(t, "carve", filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, loader.ErrLoadFailure)

	_, err = execute(t, "carve", in, "--energy", "laplacian")
	assert.Error(t, err)

	_, err = execute(t, "carve", in, "--faces")
	assert.ErrorContains(t, err, "--cascade")
}

func TestSeamsAndEnergyCommands(t *testing.T) {
	dir := t.TempDir()
	in := writeTestImage(t, dir, 30, 20)

	seams := filepath.Join(dir, "seams.png")
	stdout, err := execute(t, "seams", in, "-o", seams, "--cols", "4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "4 seams")

	img, err := loader.Open(seams)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds(), "seams are drawn on the original")

	energyOut := filepath.Join(dir, "energy.png")
	_, err = execute(t, "energy", in, "-o", energyOut)
	require.NoError(t, err)
	img, err = loader.Open(energyOut)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 30, 20), img.Bounds())
}

func TestBatchCommand(t *testing.T) {
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "results")
	writeTestImage(t, in, 12, 9)

	stdout, err := execute(t, "batch", in, out, "--cols", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "input-11x9.png")

	_, err = loader.Open(filepath.Join(out, "input-11x9.png"))
	assert.NoError(t, err)

	_, err = execute(t, "batch", t.TempDir(), out)
	assert.ErrorContains(t, err, "no images found")
}

func TestConfigCommand(t *testing.T) {
	stdout, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"order": "`+config.OrderVerticalFirst+`"`)
}
