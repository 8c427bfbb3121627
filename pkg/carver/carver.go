// Package carver shrinks images by repeatedly removing the lowest-energy
// seam.
//
// A Carver owns its pixels for its whole life. Runs are synchronous and
// single-threaded; the only suspension points are between two seams, where
// the context and the abort flag are polled.
package carver

import (
	"context"
	"errors"
	"fmt"
	"image"

	"golang.org/x/time/rate"

	"github.com/dixieflatline76/Carver/pkg/energy"
	"github.com/dixieflatline76/Carver/pkg/imagebuf"
	"github.com/dixieflatline76/Carver/pkg/seam"
	"github.com/dixieflatline76/Carver/util"
	"github.com/dixieflatline76/Carver/util/log"
)

// Carver removes seams from one image.
type Carver struct {
	opts Options
	buf  *imagebuf.Buffer
	grid *energy.Grid

	removed *util.SafeCounter
	aborted *util.SafeFlag
	lastErr error
	seams   [][]image.Point
	faces   []image.Rectangle
}

// Result summarises a Carve run.
type Result struct {
	Width, Height  int
	ColumnsRemoved int
	RowsRemoved    int
}

// New copies img and prepares its energy grid.
func New(img image.Image, opts Options) *Carver {
	if opts.Energy == nil {
		opts.Energy = energy.Sobel
	}
	if opts.ProtectWeight == 0 {
		opts.ProtectWeight = DefaultProtectWeight
	}

	c := &Carver{
		opts:    opts,
		buf:     imagebuf.New(img),
		removed: util.NewSafeCounter(),
		aborted: util.NewSafeFlag(),
	}

	if opts.Protector != nil {
		origin := img.Bounds().Min
		for _, r := range opts.Protector.Detect(img) {
			r = r.Sub(origin)
			c.faces = append(c.faces, r)
			c.buf.AddBias(r, opts.ProtectWeight)
		}
		if len(c.faces) > 0 {
			log.Debugf("Protecting %d region(s) from carving", len(c.faces))
		}
	}

	c.grid = energy.Compute(c.buf, opts.Energy)
	return c
}

// Width returns the current image width.
func (c *Carver) Width() int { return c.buf.Width() }

// Height returns the current image height.
func (c *Carver) Height() int { return c.buf.Height() }

// Removed returns the number of seams removed since New. Safe to call from
// another goroutine during a run.
func (c *Carver) Removed() int { return c.removed.Value() }

// LastError returns the error of the most recent failed operation, or nil
// if the most recent operation succeeded.
func (c *Carver) LastError() error { return c.lastErr }

// Image returns a copy of the current pixels.
func (c *Carver) Image() *image.NRGBA { return c.buf.Image() }

// Energy returns the current energy grid. It must not be modified.
func (c *Carver) Energy() *energy.Grid { return c.grid }

// ProtectedRegions returns the rectangles the Protector reported, in
// source image coordinates relative to its top-left corner.
func (c *Carver) ProtectedRegions() []image.Rectangle { return c.faces }

// RemovedSeams returns the source coordinates of every removed seam, in
// removal order. Empty unless Options.TrackSeams is set.
func (c *Carver) RemovedSeams() [][]image.Point { return c.seams }

// Abort asks a running Carve to stop before its next seam. Safe to call
// from another goroutine.
func (c *Carver) Abort() {
	if c.aborted.Raise() {
		log.Debugf("Abort requested after %d seam(s)", c.removed.Value())
	}
}

// NextSeam returns the seam of orientation o that would be removed next.
func (c *Carver) NextSeam(o seam.Orientation) (seam.Seam, error) {
	s, err := seam.Find(c.grid, o)
	c.lastErr = err
	return s, err
}

// RemoveSeam removes one seam. The image is untouched if s does not fit it
// or if the matching dimension is already one pixel.
func (c *Carver) RemoveSeam(s seam.Seam) error {
	if err := c.checkDegenerate(s.Orientation); err != nil {
		c.lastErr = err
		return err
	}
	err := c.apply(s)
	c.lastErr = err
	return err
}

// Carve removes columns vertical seams and rows horizontal seams in the
// configured order. Requests are validated before anything changes: a
// negative count, or a count reaching the current dimension, fails with
// ErrInvalidTarget, so no axis can drop below one pixel. A cancelled or
// aborted run keeps the seams already removed and returns the context error
// or ErrAborted. An Abort issued before the run starts stops it before the
// first seam; the flag is lowered when the run ends.
func (c *Carver) Carve(ctx context.Context, columns, rows int) (Result, error) {
	w, h := c.buf.Width(), c.buf.Height()
	if columns < 0 || rows < 0 || (columns > 0 && columns >= w) || (rows > 0 && rows >= h) {
		err := fmt.Errorf("%w: remove %d columns and %d rows from %dx%d", ErrInvalidTarget, columns, rows, w, h)
		c.lastErr = err
		return Result{Width: w, Height: h}, err
	}

	defer c.aborted.Lower()
	res, err := c.run(ctx, columns, rows)
	c.lastErr = err
	return res, err
}

// Resize carves the image down to width x height. A target larger than the
// current image, or not positive, fails with ErrInvalidTarget.
func (c *Carver) Resize(ctx context.Context, width, height int) (Result, error) {
	w, h := c.buf.Width(), c.buf.Height()
	if width <= 0 || height <= 0 || width > w || height > h {
		err := fmt.Errorf("%w: cannot carve %dx%d to %dx%d", ErrInvalidTarget, w, h, width, height)
		c.lastErr = err
		return Result{Width: w, Height: h}, err
	}
	return c.Carve(ctx, w-width, h-height)
}

func (c *Carver) run(ctx context.Context, columns, rows int) (Result, error) {
	plan := schedule(c.opts.Order, columns, rows)
	total := len(plan)
	if total == 0 {
		return c.result(0, 0), nil
	}

	log.Debugf("Carving %d columns and %d rows from %dx%d (%s)", columns, rows, c.buf.Width(), c.buf.Height(), c.opts.Order)

	progress := &rate.Sometimes{Every: 1}
	if c.opts.ProgressInterval > 0 {
		progress = &rate.Sometimes{First: 1, Interval: c.opts.ProgressInterval}
	}

	var cols, rws int
	report := func(o seam.Orientation) {
		if c.opts.Progress == nil {
			return
		}
		c.opts.Progress(Progress{
			Removed: cols + rws,
			Total:   total,
			Width:   c.buf.Width(),
			Height:  c.buf.Height(),
			Last:    o,
		})
	}

	var last seam.Orientation
	for _, o := range plan {
		if err := ctx.Err(); err != nil {
			report(last)
			return c.result(cols, rws), err
		}
		if c.aborted.IsSet() {
			report(last)
			return c.result(cols, rws), ErrAborted
		}

		s, err := seam.Find(c.grid, o)
		if err != nil {
			return c.result(cols, rws), fmt.Errorf("finding %s seam: %w", o, err)
		}
		if err := c.apply(s); err != nil {
			return c.result(cols, rws), err
		}

		if o == seam.Vertical {
			cols++
		} else {
			rws++
		}
		last = o
		progress.Do(func() { report(o) })
	}

	report(last)
	return c.result(cols, rws), nil
}

func (c *Carver) result(cols, rows int) Result {
	return Result{
		Width:          c.buf.Width(),
		Height:         c.buf.Height(),
		ColumnsRemoved: cols,
		RowsRemoved:    rows,
	}
}

func (c *Carver) checkDegenerate(o seam.Orientation) error {
	if o == seam.Vertical && c.buf.Width() <= 1 {
		return fmt.Errorf("%w: cannot remove a column from width %d", ErrDegenerateImage, c.buf.Width())
	}
	if o == seam.Horizontal && c.buf.Height() <= 1 {
		return fmt.Errorf("%w: cannot remove a row from height %d", ErrDegenerateImage, c.buf.Height())
	}
	return nil
}

// apply removes s from the pixels and brings the energy grid up to date.
func (c *Carver) apply(s seam.Seam) error {
	var origins []image.Point
	if c.opts.TrackSeams {
		if err := s.Validate(c.buf.Width(), c.buf.Height()); err != nil {
			return fmt.Errorf("removing seam from image: %w", err)
		}
		origins = c.buf.SeamOrigins(s)
	}

	if err := c.buf.RemoveSeam(s); err != nil {
		return err
	}
	if err := c.grid.RemoveSeam(s); err != nil {
		return err
	}

	switch c.opts.Recompute {
	case RecomputeFull:
		c.grid = energy.Compute(c.buf, c.opts.Energy)
	default:
		c.grid.Refresh(c.buf, c.opts.Energy, s)
	}

	if origins != nil {
		c.seams = append(c.seams, origins)
	}
	c.removed.Increment()
	return nil
}

// schedule lists the orientation of every seam a run will remove.
func schedule(order Order, columns, rows int) []seam.Orientation {
	plan := make([]seam.Orientation, 0, columns+rows)
	appendN := func(o seam.Orientation, n int) {
		for i := 0; i < n; i++ {
			plan = append(plan, o)
		}
	}

	switch order {
	case HorizontalFirst:
		appendN(seam.Horizontal, rows)
		appendN(seam.Vertical, columns)
	case Alternate:
		for columns > 0 || rows > 0 {
			if columns > 0 {
				plan = append(plan, seam.Vertical)
				columns--
			}
			if rows > 0 {
				plan = append(plan, seam.Horizontal)
				rows--
			}
		}
	default:
		appendN(seam.Vertical, columns)
		appendN(seam.Horizontal, rows)
	}
	return plan
}

// Carve is the one-shot form: it copies img, removes columns vertical and
// rows horizontal seams, and returns the result. img is never modified.
// An invalid target returns a nil image; a cancelled run returns the
// partially carved image along with the context error.
func Carve(ctx context.Context, img image.Image, columns, rows int, opts Options) (image.Image, error) {
	c := New(img, opts)
	if _, err := c.Carve(ctx, columns, rows); err != nil {
		if errors.Is(err, ErrInvalidTarget) {
			return nil, err
		}
		return c.Image(), err
	}
	return c.Image(), nil
}
