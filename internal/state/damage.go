package state

import (
	"image"
	"sync"
)

// StrokeBounds returns the pixel rectangle covered by a stroke of the given
// width through points, padded by the stamp radius plus one pixel.
func StrokeBounds(width int, points ...Point) image.Rectangle {
	if len(points) == 0 {
		return image.Rectangle{}
	}
	minX, minY := points[0].Pixel()
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		x, y := p.Pixel()
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	pad := max(width, 1)/2 + 1
	return image.Rect(minX-pad, minY-pad, maxX+pad+1, maxY+pad+1)
}

// CircleBounds returns the pixel rectangle covered by a circle outline of the
// given radius and stroke width around center.
func CircleBounds(center Point, radius, width int) image.Rectangle {
	cx, cy := center.Pixel()
	pad := radius + max(width, 1)/2 + 1
	return image.Rect(cx-pad, cy-pad, cx+pad+1, cy+pad+1)
}

// DamageTracker accumulates damaged regions until they are flushed. The
// board uses it to coalesce redraws when live redraw is off.
type DamageTracker struct {
	mu     sync.Mutex
	bounds image.Rectangle
	region image.Rectangle
}

// NewDamageTracker creates a tracker that clips every region to bounds.
func NewDamageTracker(bounds image.Rectangle) *DamageTracker {
	return &DamageTracker{bounds: bounds}
}

// Add merges r into the pending region and returns r clipped to the tracker
// bounds.
func (d *DamageTracker) Add(r image.Rectangle) image.Rectangle {
	d.mu.Lock()
	defer d.mu.Unlock()

	r = r.Intersect(d.bounds)
	if r.Empty() {
		return image.Rectangle{}
	}
	d.region = d.region.Union(r)
	return r
}

// Pending returns the merged region without resetting it.
func (d *DamageTracker) Pending() image.Rectangle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.region
}

// Flush returns the merged region and resets the tracker.
func (d *DamageTracker) Flush() image.Rectangle {
	d.mu.Lock()
	defer d.mu.Unlock()

	r := d.region
	d.region = image.Rectangle{}
	return r
}

// Reset drops any pending damage and rebinds the tracker to bounds.
func (d *DamageTracker) Reset(bounds image.Rectangle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.bounds = bounds
	d.region = image.Rectangle{}
}
