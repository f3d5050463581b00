package state

import (
	"fmt"
	"image/color"
	"math"
)

// Tool is the interpretation applied to pointer input.
type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
	ToolLine
	ToolRectangle
	ToolCircle
	ToolSelect
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolPen, ToolEraser, ToolLine, ToolRectangle, ToolCircle, ToolSelect}

func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolEraser:
		return "eraser"
	case ToolLine:
		return "line"
	case ToolRectangle:
		return "rect"
	case ToolCircle:
		return "circle"
	case ToolSelect:
		return "select"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Continuous reports whether every intermediate sample of a stroke with this
// tool is committed as it arrives.
func (t Tool) Continuous() bool {
	return t == ToolPen || t == ToolEraser
}

// Shape reports whether the tool previews until release and commits once.
func (t Tool) Shape() bool {
	return t == ToolLine || t == ToolRectangle || t == ToolCircle
}

// Point is a position on the surface in pixel units.
type Point struct {
	X, Y float64
}

// Pixel maps the point to the pixel cell that contains it.
func (p Point) Pixel() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Style carries the drawing parameters of one operation. A FillColor with
// zero alpha means shapes are not filled.
type Style struct {
	StrokeColor color.RGBA
	StrokeWidth int
	FillColor   color.RGBA
}

// DefaultStyle matches the defaults of the board toolbar.
var DefaultStyle = Style{
	StrokeColor: color.RGBA{R: 0xff, A: 0xff},
	StrokeWidth: 5,
}

// Normalize clamps the stroke width to at least one pixel.
func (s Style) Normalize() Style {
	if s.StrokeWidth < 1 {
		s.StrokeWidth = 1
	}
	return s
}

// Filled reports whether shapes drawn with this style get an interior.
func (s Style) Filled() bool {
	return s.FillColor.A > 0
}

// PointerSample is one raw pointer reading. Seq is a monotonic ordinal
// stamped by the harness; zero means unstamped.
type PointerSample struct {
	X, Y       float64
	ButtonDown bool
	Seq        uint64
}

// Point returns the sample position.
func (s PointerSample) Point() Point {
	return Point{X: s.X, Y: s.Y}
}
