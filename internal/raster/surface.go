// Package raster holds the pixel surface a board draws onto and the
// primitives that mutate it.
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Surface is a fixed-size RGBA pixel buffer. It remembers the color it was
// last filled with so erasing can paint the background back.
type Surface struct {
	img        *image.RGBA
	background color.RGBA
}

var _ image.Image = (*Surface)(nil)

// New allocates a width x height surface filled with fill.
func New(width, height int, fill color.RGBA) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	s.Clear(fill)
	return s, nil
}

func (s *Surface) Width() int  { return s.img.Rect.Dx() }
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model { return color.RGBAModel }

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color { return s.RGBAAt(x, y) }

// Background returns the fill color of the last New or Clear.
func (s *Surface) Background() color.RGBA { return s.background }

// RGBAAt returns the pixel at (x, y), or the zero color outside the surface.
func (s *Surface) RGBAAt(x, y int) color.RGBA {
	if !s.contains(x, y) {
		return color.RGBA{}
	}
	return s.img.RGBAAt(x, y)
}

// SetPixel overwrites a single pixel. Out-of-range coordinates are ignored.
func (s *Surface) SetPixel(x, y int, c color.RGBA) {
	if !s.contains(x, y) {
		return
	}
	i := s.img.PixOffset(x, y)
	p := s.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// BlendPixel composites c over the existing pixel (Porter-Duff source-over,
// premultiplied alpha). Out-of-range coordinates are ignored.
func (s *Surface) BlendPixel(x, y int, c color.RGBA) {
	if !s.contains(x, y) {
		return
	}
	if c.A == 0xff {
		s.SetPixel(x, y, c)
		return
	}
	i := s.img.PixOffset(x, y)
	p := s.img.Pix[i : i+4 : i+4]
	inv := uint32(0xff - c.A)
	p[0] = c.R + uint8(uint32(p[0])*inv/0xff)
	p[1] = c.G + uint8(uint32(p[1])*inv/0xff)
	p[2] = c.B + uint8(uint32(p[2])*inv/0xff)
	p[3] = c.A + uint8(uint32(p[3])*inv/0xff)
}

// Blit overwrites region with the same pixels of src. The region is clipped
// to both surfaces.
func (s *Surface) Blit(region image.Rectangle, src *Surface) {
	r := region.Intersect(s.img.Rect).Intersect(src.img.Rect)
	if r.Empty() {
		return
	}
	n := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := s.img.PixOffset(r.Min.X, y)
		si := src.img.PixOffset(r.Min.X, y)
		copy(s.img.Pix[di:di+n], src.img.Pix[si:si+n])
	}
}

// Clear refills the whole surface in place and records fill as the new
// background.
func (s *Surface) Clear(fill color.RGBA) {
	s.background = fill
	pix := s.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = fill.R, fill.G, fill.B, fill.A
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// Clone returns a deep copy.
func (s *Surface) Clone() *Surface {
	return &Surface{img: s.Image(), background: s.background}
}

// Export returns a copy of the pixels as RGBA rows, top to bottom, with no
// padding between rows.
func (s *Surface) Export() []byte {
	out := make([]byte, len(s.img.Pix))
	copy(out, s.img.Pix)
	return out
}

// Image returns a copy of the surface as an *image.RGBA.
func (s *Surface) Image() *image.RGBA {
	img := image.NewRGBA(s.img.Rect)
	copy(img.Pix, s.img.Pix)
	return img
}

// ContentBounds returns the smallest rectangle holding every pixel that
// differs from the background. It is empty for a blank surface.
func (s *Surface) ContentBounds() image.Rectangle {
	bg := s.background
	minX, minY := s.Width(), s.Height()
	maxX, maxY := -1, -1
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.img.RGBAAt(x, y) == bg {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

func (s *Surface) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.img.Rect.Max.X && y < s.img.Rect.Max.Y
}
