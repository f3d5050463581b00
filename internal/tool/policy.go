// Package tool maps a tool, a style and the geometry of a gesture to the
// raster instruction that renders it. It has no state and no side effects.
package tool

import (
	"image"
	"image/color"
	"math"
	"strings"

	"SketchBoard/internal/state"
)

// Shape is the raster primitive an Instruction asks for.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeDot
	ShapeSegment
	ShapeRect
	ShapeCircle
)

func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeDot:
		return "dot"
	case ShapeSegment:
		return "segment"
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	}
	return "unknown"
}

// Geometry is the gesture being rendered. Background is the color the
// eraser paints with; Bounds is the target surface, or empty when unknown.
type Geometry struct {
	From       state.Point
	To         state.Point
	Background color.RGBA
	Bounds     image.Rectangle
}

// Instruction describes one raster operation.
//
// Points holds one pixel for a dot, two for a segment or rectangle (the
// corners), and the center for a circle.
type Instruction struct {
	Shape  Shape
	Points []image.Point
	Color  color.RGBA
	Width  int
	Radius int
	Filled bool
	Fill   color.RGBA
}

// Bounds returns the pixel rectangle the instruction may touch.
func (in Instruction) Bounds() image.Rectangle {
	switch in.Shape {
	case ShapeNone:
		return image.Rectangle{}
	case ShapeCircle:
		c := in.Points[0]
		return state.CircleBounds(state.Point{X: float64(c.X), Y: float64(c.Y)}, in.Radius, in.Width)
	}
	pts := make([]state.Point, len(in.Points))
	for i, p := range in.Points {
		pts[i] = state.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return state.StrokeBounds(in.Width, pts...)
}

// Decide returns the instruction for drawing geom with tool and style.
//
// When geom.Bounds is set, coordinates far outside it are pulled in first:
// segments are clipped to a margin around the surface, corners and centers
// are clamped to it and radii are capped. The visible result is unchanged.
func Decide(tool state.Tool, style state.Style, geom Geometry) (Instruction, error) {
	style = style.Normalize()
	confined := !geom.Bounds.Empty()
	box := newReach(geom.Bounds, style.StrokeWidth)

	ends := func() (image.Point, image.Point, bool) {
		a, b := far(geom.From), far(geom.To)
		if confined {
			var ok bool
			if a, b, ok = box.clip(a, b); !ok {
				return image.Point{}, image.Point{}, false
			}
		}
		return pixel(a), pixel(b), true
	}
	corner := func(p state.Point) image.Point {
		p = far(p)
		if confined {
			p = box.clamp(p)
		}
		return pixel(p)
	}

	in := Instruction{Color: style.StrokeColor, Width: style.StrokeWidth}

	switch tool {
	case state.ToolPen, state.ToolEraser:
		if tool == state.ToolEraser {
			in.Color = geom.Background
		}
		from, to, ok := ends()
		if !ok {
			return Instruction{Shape: ShapeNone}, nil
		}
		if from == to {
			in.Shape = ShapeDot
			in.Points = []image.Point{from}
		} else {
			in.Shape = ShapeSegment
			in.Points = []image.Point{from, to}
		}
	case state.ToolLine:
		from, to, ok := ends()
		if !ok {
			return Instruction{Shape: ShapeNone}, nil
		}
		in.Shape = ShapeSegment
		in.Points = []image.Point{from, to}
	case state.ToolRectangle:
		in.Shape = ShapeRect
		in.Points = []image.Point{corner(geom.From), corner(geom.To)}
		in.Filled, in.Fill = style.Filled(), style.FillColor
	case state.ToolCircle:
		in.Shape = ShapeCircle
		in.Points = []image.Point{corner(geom.From)}
		radius := far(geom.From).Dist(far(geom.To))
		if confined {
			radius = math.Min(radius, box.maxRadius(style.StrokeWidth))
		}
		in.Radius = int(math.Round(radius))
		in.Filled, in.Fill = style.Filled(), style.FillColor
	case state.ToolSelect:
		return Instruction{Shape: ShapeNone}, nil
	default:
		return Instruction{}, &InvalidToolError{Tool: tool}
	}
	return in, nil
}

// Parse resolves a tool name. Besides the canonical names it accepts the
// aliases "freedraw", "rectangle" and "transform".
func Parse(name string) (state.Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pen", "freedraw":
		return state.ToolPen, nil
	case "eraser":
		return state.ToolEraser, nil
	case "line":
		return state.ToolLine, nil
	case "rect", "rectangle":
		return state.ToolRectangle, nil
	case "circle":
		return state.ToolCircle, nil
	case "select", "transform":
		return state.ToolSelect, nil
	}
	return 0, &InvalidToolError{Name: name}
}

// Valid reports whether the policy knows t.
func Valid(t state.Tool) bool {
	return t >= state.ToolPen && t <= state.ToolSelect
}

func pixel(p state.Point) image.Point {
	x, y := p.Pixel()
	return image.Pt(x, y)
}
