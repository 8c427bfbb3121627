// Package face finds faces with a pigo cascade so the carver can keep seams
// away from them.
package face

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"

	"github.com/dixieflatline76/Carver/util/log"
)

// ErrBadCascade is returned when the cascade file cannot be unpacked.
var ErrBadCascade = errors.New("face: invalid cascade")

// minCascadeLen is the size of the cascade header pigo reads before any
// tree data.
const minCascadeLen = 24

// Detector runs a pigo face cascade.
type Detector struct {
	classifier *pigo.Pigo
	tuning     Tuning
}

// NewDetector unpacks a pigo cascade ("facefinder").
func NewDetector(cascade []byte, tuning Tuning) (d *Detector, err error) {
	if len(cascade) < minCascadeLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadCascade, len(cascade))
	}

	// Unpack indexes into the packet without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, fmt.Errorf("%w: %v", ErrBadCascade, r)
		}
	}()

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCascade, err)
	}
	return &Detector{classifier: classifier, tuning: tuning}, nil
}

// LoadDetector reads a cascade file from disk.
func LoadDetector(path string, tuning Tuning) (*Detector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cascade %s: %w", path, err)
	}
	d, err := NewDetector(data, tuning)
	if err != nil {
		return nil, fmt.Errorf("loading cascade %s: %w", path, err)
	}
	log.Debugf("Face cascade loaded from %s", path)
	return d, nil
}

// Detect returns the padded bounding boxes of the faces in img, in img's
// coordinate space.
func (d *Detector) Detect(img image.Image) []image.Rectangle {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}

	dets := d.classifier.RunCascade(d.cascadeParams(img), 0.0)
	dets = d.classifier.ClusterDetections(dets, d.tuning.IoU)

	var faces []image.Rectangle
	for _, det := range dets {
		if det.Q < d.tuning.Confidence {
			continue
		}
		faces = append(faces, boxOf(det, d.tuning.PaddingPct).Add(b.Min).Intersect(b))
	}
	log.Debugf("Detected %d face(s) in %dx%d image", len(faces), b.Dx(), b.Dy())
	return faces
}

// cascadeParams builds the cascade input for img. pigo samples from (0,0),
// so the pixels are copied to a zero-origin buffer first.
func (d *Detector) cascadeParams(img image.Image) pigo.CascadeParams {
	src := imaging.Clone(img)
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()
	short := min(cols, rows)

	return pigo.CascadeParams{
		MinSize:     max(short*d.tuning.MinSizePct/100, 20),
		MaxSize:     max(short*d.tuning.MaxSizePct/100, 20),
		ShiftFactor: d.tuning.Shift,
		ScaleFactor: d.tuning.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(src),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}
}

// boxOf converts a pigo detection (centre and diameter) to a rectangle
// grown by padPct percent of its size on every side.
func boxOf(det pigo.Detection, padPct int) image.Rectangle {
	half := det.Scale / 2
	pad := det.Scale * padPct / 100
	return image.Rect(
		det.Col-half-pad, det.Row-half-pad,
		det.Col+half+pad, det.Row+half+pad,
	)
}
