package tool

import (
	"image"
	"math"

	"SketchBoard/internal/state"
)

// farLimit bounds coordinates before any arithmetic so differences of
// extreme samples stay finite.
const farLimit = 1e12

// reach is the box gesture coordinates are confined to: the surface grown on
// every side by its larger dimension plus the stroke width. Anything drawn
// beyond it cannot touch a surface pixel.
type reach struct {
	minX, minY, maxX, maxY float64
}

func newReach(bounds image.Rectangle, width int) reach {
	m := float64(max(bounds.Dx(), bounds.Dy()) + width)
	return reach{
		minX: float64(bounds.Min.X) - m,
		minY: float64(bounds.Min.Y) - m,
		maxX: float64(bounds.Max.X) + m,
		maxY: float64(bounds.Max.Y) + m,
	}
}

// clamp moves p onto the nearest point of the box.
func (r reach) clamp(p state.Point) state.Point {
	return state.Point{
		X: math.Min(math.Max(p.X, r.minX), r.maxX),
		Y: math.Min(math.Max(p.Y, r.minY), r.maxY),
	}
}

// maxRadius is a radius past which a circle centered inside the box covers
// every surface pixel with its interior.
func (r reach) maxRadius(width int) float64 {
	return math.Hypot(r.maxX-r.minX, r.maxY-r.minY) + float64(width) + 1
}

// clip cuts the segment p→q to the box (Liang-Barsky). It reports false when
// no part of the segment is inside.
func (r reach) clip(p, q state.Point) (state.Point, state.Point, bool) {
	p, q = far(p), far(q)
	dx, dy := q.X-p.X, q.Y-p.Y
	t0, t1 := 0.0, 1.0
	for _, edge := range [4][2]float64{
		{-dx, p.X - r.minX},
		{dx, r.maxX - p.X},
		{-dy, p.Y - r.minY},
		{dy, r.maxY - p.Y},
	} {
		pk, qk := edge[0], edge[1]
		if pk == 0 {
			if qk < 0 {
				return p, q, false
			}
			continue
		}
		t := qk / pk
		if pk < 0 {
			if t > t1 {
				return p, q, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return p, q, false
			}
			t1 = math.Min(t1, t)
		}
	}
	a := state.Point{X: p.X + t0*dx, Y: p.Y + t0*dy}
	b := state.Point{X: p.X + t1*dx, Y: p.Y + t1*dy}
	return r.clamp(a), r.clamp(b), true
}

func far(p state.Point) state.Point {
	return state.Point{
		X: math.Min(math.Max(p.X, -farLimit), farLimit),
		Y: math.Min(math.Max(p.Y, -farLimit), farLimit),
	}
}
