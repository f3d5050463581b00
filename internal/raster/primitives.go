package raster

import (
	"image"
	"image/color"
)

// FillDisc paints every pixel within radius r of (cx, cy). A radius of zero
// paints the center pixel only.
func (s *Surface) FillDisc(cx, cy, r int, c color.RGBA) {
	if r < 0 {
		return
	}
	span := s.span(cx, cy, r)
	for dy := span.Min.Y; dy < span.Max.Y; dy++ {
		for dx := span.Min.X; dx < span.Max.X; dx++ {
			if dx*dx+dy*dy <= r*r {
				s.SetPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

// StrokeLine draws a capsule of the given width from (x0, y0) to (x1, y1):
// a disc is stamped at every step of a Bresenham walk, which also rounds
// both ends.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width int, c color.RGBA) {
	r := stampRadius(width)
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		s.FillDisc(x0, y0, r, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// StrokeRect outlines the axis-aligned box with corners (x0, y0) and
// (x1, y1). The corners may come in any order.
func (s *Surface) StrokeRect(x0, y0, x1, y1, width int, c color.RGBA) {
	s.StrokeLine(x0, y0, x1, y0, width, c)
	s.StrokeLine(x1, y0, x1, y1, width, c)
	s.StrokeLine(x1, y1, x0, y1, width, c)
	s.StrokeLine(x0, y1, x0, y0, width, c)
}

// FillRect blends c over every pixel of the box with corners (x0, y0) and
// (x1, y1), both inclusive.
func (s *Surface) FillRect(x0, y0, x1, y1 int, c color.RGBA) {
	r := image.Rect(min(x0, x1), min(y0, y1), max(x0, x1)+1, max(y0, y1)+1).Intersect(s.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.BlendPixel(x, y, c)
		}
	}
}

// StrokeCircle outlines the circle of the given radius around (cx, cy) with
// the midpoint algorithm, stamping a disc of the stroke width at every
// outline pixel.
func (s *Surface) StrokeCircle(cx, cy, radius, width int, c color.RGBA) {
	if radius < 0 {
		return
	}
	r := stampRadius(width)
	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			s.FillDisc(cx+p[0], cy+p[1], r, c)
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillCircle blends c over every pixel within radius of (cx, cy).
func (s *Surface) FillCircle(cx, cy, radius int, c color.RGBA) {
	if radius < 0 {
		return
	}
	span := s.span(cx, cy, radius)
	for dy := span.Min.Y; dy < span.Max.Y; dy++ {
		for dx := span.Min.X; dx < span.Max.X; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				s.BlendPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

// span returns the offsets from (cx, cy), within r on both axes, that land
// on the surface. It is empty when the square misses the surface.
func (s *Surface) span(cx, cy, r int) image.Rectangle {
	b := s.img.Rect
	// a literal, since image.Rect would swap an inverted (empty) span
	return image.Rectangle{
		Min: image.Pt(max(-r, b.Min.X-cx), max(-r, b.Min.Y-cy)),
		Max: image.Pt(min(r+1, b.Max.X-cx), min(r+1, b.Max.Y-cy)),
	}
}

func stampRadius(width int) int {
	if width < 1 {
		width = 1
	}
	return width / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
