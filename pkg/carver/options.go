package carver

import (
	"fmt"
	"image"
	"time"

	"github.com/dixieflatline76/Carver/config"
	"github.com/dixieflatline76/Carver/pkg/energy"
	"github.com/dixieflatline76/Carver/pkg/seam"
)

// Order decides which axis is carved first.
type Order int

const (
	// VerticalFirst removes all columns, then all rows.
	VerticalFirst Order = iota
	// HorizontalFirst removes all rows, then all columns.
	HorizontalFirst
	// Alternate interleaves columns and rows until one axis is done.
	Alternate
)

func (o Order) String() string {
	switch o {
	case VerticalFirst:
		return config.OrderVerticalFirst
	case HorizontalFirst:
		return config.OrderHorizontalFirst
	case Alternate:
		return config.OrderAlternate
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder maps a config value to an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", config.OrderVerticalFirst:
		return VerticalFirst, nil
	case config.OrderHorizontalFirst:
		return HorizontalFirst, nil
	case config.OrderAlternate:
		return Alternate, nil
	default:
		return 0, fmt.Errorf("unknown seam order %q", s)
	}
}

// Recompute decides how the energy grid is updated after a removal.
type Recompute int

const (
	// RecomputeLocal refreshes only the band around the removed seam.
	RecomputeLocal Recompute = iota
	// RecomputeFull recomputes the whole grid.
	RecomputeFull
)

// ParseRecompute maps a config value to a Recompute mode.
func ParseRecompute(s string) (Recompute, error) {
	switch s {
	case "", config.RecomputeLocal:
		return RecomputeLocal, nil
	case config.RecomputeFull:
		return RecomputeFull, nil
	default:
		return 0, fmt.Errorf("unknown recompute mode %q", s)
	}
}

// Protector finds regions that seams should avoid, such as faces.
type Protector interface {
	Detect(img image.Image) []image.Rectangle
}

// Progress is reported while a run removes seams.
type Progress struct {
	Removed int // seams removed so far in this run
	Total   int // seams requested for this run
	Width   int
	Height  int
	Last    seam.Orientation
}

// Options configures a Carver. The zero value carves with Sobel energy,
// columns first and local energy refresh.
type Options struct {
	Energy    energy.Func
	Order     Order
	Recompute Recompute

	// Protector, when set, is run once on the source image. Every pixel
	// inside a returned rectangle gets ProtectWeight added to its energy.
	Protector     Protector
	ProtectWeight float64

	// Progress is called at most once per ProgressInterval, and always
	// once when a run ends.
	Progress         func(Progress)
	ProgressInterval time.Duration

	// TrackSeams records the source coordinates of every removed pixel.
	TrackSeams bool
}

// DefaultProtectWeight comfortably exceeds the largest Sobel or gradient
// energy of an 8-bit pixel.
const DefaultProtectWeight = 1e5

// FromConfig builds Options from the persisted settings.
func FromConfig(cfg *config.Config) (Options, error) {
	fn, err := energy.Lookup(cfg.Energy)
	if err != nil {
		return Options{}, err
	}
	order, err := ParseOrder(cfg.Order)
	if err != nil {
		return Options{}, err
	}
	recompute, err := ParseRecompute(cfg.Recompute)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Energy:           fn,
		Order:            order,
		Recompute:        recompute,
		ProgressInterval: cfg.ProgressInterval,
	}, nil
}
