package face

// Tuning holds the detector's magic numbers in one place.
type Tuning struct {
	MinSizePct  int     `json:"min_size_pct"`  // Default: 5 (% of the shorter image side)
	MaxSizePct  int     `json:"max_size_pct"`  // Default: 100
	Shift       float64 `json:"shift"`         // Default: 0.1 (window stride)
	ScaleFactor float64 `json:"scale_factor"`  // Default: 1.1 (pigo pyramid step)
	IoU         float64 `json:"iou_threshold"` // Default: 0.2 (clustering)
	Confidence  float32 `json:"confidence"`    // Default: 5.0 (minimum Q)
	PaddingPct  int     `json:"padding_pct"`   // Default: 20 (grow each box so hair and chin survive)
}

// DefaultTuning returns the standard detector settings.
func DefaultTuning() Tuning {
	return Tuning{
		MinSizePct:  5,
		MaxSizePct:  100,
		Shift:       0.1,
		ScaleFactor: 1.1,
		IoU:         0.2,
		Confidence:  5.0,
		PaddingPct:  20,
	}
}
