package raster

import "errors"

// ErrInvalidDimensions is returned when a surface is created with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("invalid surface dimensions")
