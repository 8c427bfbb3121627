package carver

import "errors"

var (
	// ErrInvalidTarget is returned before any mutation when a requested
	// reduction is negative or would remove the whole image.
	ErrInvalidTarget = errors.New("carver: invalid target size")
	// ErrDegenerateImage is returned when removing a seam would leave an
	// image with no columns or no rows.
	ErrDegenerateImage = errors.New("carver: image is one pixel wide or high")
	// ErrAborted is returned when Abort stops a run between two seams.
	ErrAborted = errors.New("carver: run aborted")
)
