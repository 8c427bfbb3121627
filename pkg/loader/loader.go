// Package loader decodes source images and writes carved results.
package loader

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrLoadFailure wraps every error that stops an image from being decoded.
var ErrLoadFailure = errors.New("loader: image could not be loaded")

var extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
	".gif":  true,
	".webp": true,
}

// Open decodes the image at path, applying its EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailure, path, err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("%w: %s: image has no pixels", ErrLoadFailure, path)
	}
	return img, nil
}

// Save encodes img to path. The format follows the file extension; JPEG
// output uses the given quality.
func Save(img image.Image, path string, quality int) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// IsImage reports whether path has an extension Open understands.
func IsImage(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// OutputName returns "<name>-<width>x<height>.png" for src.
func OutputName(src string, width, height int) string {
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s-%dx%d.png", name, width, height)
}
