// Package compare produces the same target size with several reduction
// strategies so seam carving can be judged against cropping and scaling.
package compare

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/dixieflatline76/Carver/pkg/carver"
)

// Strategy names, in the order Variants returns them.
const (
	SeamCarve = "Seam Carving"
	SmartCrop = "Smart Crop"
	Resize    = "Lanczos Resize"
	CenterFit = "Center Fill"
)

// Variant is one strategy's output.
type Variant struct {
	Name     string
	Image    image.Image
	Duration time.Duration
	Err      error
}

// Processor runs every strategy on an image.
type Processor struct {
	Options   carver.Options
	Resampler imaging.ResampleFilter
}

// NewProcessor creates a processor with Lanczos resampling.
func NewProcessor(opts carver.Options) *Processor {
	return &Processor{Options: opts, Resampler: imaging.Lanczos}
}

// Variants shrinks img to width x height with each strategy. A strategy
// failure is recorded in its Variant; only a cancelled context aborts the
// whole comparison.
func (p *Processor) Variants(ctx context.Context, img image.Image, width, height int) ([]Variant, error) {
	b := img.Bounds()
	if width <= 0 || height <= 0 || width > b.Dx() || height > b.Dy() {
		return nil, fmt.Errorf("%w: %dx%d does not fit inside %dx%d", carver.ErrInvalidTarget, width, height, b.Dx(), b.Dy())
	}

	steps := []struct {
		name string
		fn   func() (image.Image, error)
	}{
		{SeamCarve, func() (image.Image, error) {
			c := carver.New(img, p.Options)
			if _, err := c.Resize(ctx, width, height); err != nil {
				return nil, err
			}
			return c.Image(), nil
		}},
		{SmartCrop, func() (image.Image, error) { return p.cropImage(ctx, img, width, height) }},
		{Resize, func() (image.Image, error) { return imaging.Resize(img, width, height, p.Resampler), nil }},
		{CenterFit, func() (image.Image, error) {
			return imaging.Fill(img, width, height, imaging.Center, p.Resampler), nil
		}},
	}

	variants := make([]Variant, 0, len(steps))
	for _, step := range steps {
		if err := checkContext(ctx); err != nil {
			return variants, err
		}
		start := time.Now()
		out, err := step.fn()
		variants = append(variants, Variant{
			Name:     step.name,
			Image:    out,
			Duration: time.Since(start),
			Err:      err,
		})
	}
	return variants, nil
}

// cropImage crops to the best region of the target aspect ratio and scales
// it to the target size.
func (p *Processor) cropImage(ctx context.Context, img image.Image, width, height int) (image.Image, error) {
	r := &resizer{resampler: p.Resampler}
	analyzer := smartcrop.NewAnalyzer(r)

	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)

	go func() {
		topCrop, err := analyzer.FindBestCrop(img, width, height)
		resultChan <- cropResult{crop: topCrop, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultChan:
		if result.err != nil {
			return nil, fmt.Errorf("finding best crop: %w", result.err)
		}
		cropped := imaging.Crop(img, result.crop)
		return r.Resize(cropped, uint(width), uint(height)), nil
	}
}

// resizer implements the smartcrop Resizer interface.
type resizer struct {
	resampler imaging.ResampleFilter
}

func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
