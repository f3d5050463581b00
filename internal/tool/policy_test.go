package tool

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"SketchBoard/internal/state"
)

var (
	bg    = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	style = state.Style{StrokeColor: blue, StrokeWidth: 4}
)

func geom(x0, y0, x1, y1 float64) Geometry {
	return Geometry{From: state.Point{X: x0, Y: y0}, To: state.Point{X: x1, Y: y1}, Background: bg}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		tool   state.Tool
		geom   Geometry
		shape  Shape
		color  color.RGBA
		points []image.Point
		radius int
	}{
		{"pen segment", state.ToolPen, geom(1, 2, 3, 4), ShapeSegment, blue, []image.Point{{1, 2}, {3, 4}}, 0},
		{"pen dot", state.ToolPen, geom(7, 7, 7, 7), ShapeDot, blue, []image.Point{{7, 7}}, 0},
		{"eraser uses background", state.ToolEraser, geom(1, 2, 3, 4), ShapeSegment, bg, []image.Point{{1, 2}, {3, 4}}, 0},
		{"line", state.ToolLine, geom(0, 0, 10, 0), ShapeSegment, blue, []image.Point{{0, 0}, {10, 0}}, 0},
		{"rect", state.ToolRectangle, geom(0, 0, 50, 50), ShapeRect, blue, []image.Point{{0, 0}, {50, 50}}, 0},
		{"circle radius is distance", state.ToolCircle, geom(100, 100, 103, 104), ShapeCircle, blue, []image.Point{{100, 100}}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Decide(tt.tool, style, tt.geom)
			if err != nil {
				t.Fatalf("Decide failed: %v", err)
			}
			if in.Shape != tt.shape {
				t.Errorf("shape = %v, want %v", in.Shape, tt.shape)
			}
			if in.Color != tt.color {
				t.Errorf("color = %v, want %v", in.Color, tt.color)
			}
			if in.Width != 4 {
				t.Errorf("width = %d, want 4", in.Width)
			}
			if in.Radius != tt.radius {
				t.Errorf("radius = %d, want %d", in.Radius, tt.radius)
			}
			if len(in.Points) != len(tt.points) {
				t.Fatalf("points = %v, want %v", in.Points, tt.points)
			}
			for i := range in.Points {
				if in.Points[i] != tt.points[i] {
					t.Errorf("points = %v, want %v", in.Points, tt.points)
				}
			}
		})
	}
}

func TestDecide_Select(t *testing.T) {
	in, err := Decide(state.ToolSelect, style, geom(0, 0, 9, 9))
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if in.Shape != ShapeNone {
		t.Errorf("shape = %v, want none", in.Shape)
	}
	if !in.Bounds().Empty() {
		t.Errorf("bounds = %v, want empty", in.Bounds())
	}
}

func TestDecide_InvalidTool(t *testing.T) {
	_, err := Decide(state.Tool(99), style, geom(0, 0, 1, 1))
	if !errors.Is(err, ErrInvalidTool) {
		t.Fatalf("expected ErrInvalidTool, got %v", err)
	}
	var ite *InvalidToolError
	if !errors.As(err, &ite) || ite.Tool != state.Tool(99) {
		t.Errorf("expected *InvalidToolError for Tool(99), got %#v", err)
	}
}

func TestDecide_Fill(t *testing.T) {
	filled := style
	filled.FillColor = color.RGBA{R: 64, A: 128}

	rect, _ := Decide(state.ToolRectangle, filled, geom(0, 0, 5, 5))
	if !rect.Filled || rect.Fill != filled.FillColor {
		t.Errorf("rect fill = %v %v", rect.Filled, rect.Fill)
	}
	line, _ := Decide(state.ToolLine, filled, geom(0, 0, 5, 5))
	if line.Filled {
		t.Error("lines are never filled")
	}
	plain, _ := Decide(state.ToolCircle, style, geom(0, 0, 5, 5))
	if plain.Filled {
		t.Error("circle without fill color is filled")
	}
}

func TestDecide_NormalizesWidth(t *testing.T) {
	in, _ := Decide(state.ToolPen, state.Style{StrokeColor: blue}, geom(0, 0, 1, 1))
	if in.Width != 1 {
		t.Errorf("width = %d, want 1", in.Width)
	}
}

func TestInstruction_Bounds(t *testing.T) {
	in, _ := Decide(state.ToolCircle, state.Style{StrokeColor: blue, StrokeWidth: 1}, geom(100, 100, 103, 104))
	if got, want := in.Bounds(), image.Rect(94, 94, 107, 107); got != want {
		t.Errorf("circle bounds = %v, want %v", got, want)
	}
	in, _ = Decide(state.ToolLine, state.Style{StrokeColor: blue, StrokeWidth: 1}, geom(10, 10, 20, 10))
	if got, want := in.Bounds(), image.Rect(9, 9, 22, 12); got != want {
		t.Errorf("line bounds = %v, want %v", got, want)
	}
}

func TestDecide_ConfinesFarGeometry(t *testing.T) {
	surface := image.Rect(0, 0, 200, 200)
	far := func(x0, y0, x1, y1 float64) Geometry {
		g := geom(x0, y0, x1, y1)
		g.Bounds = surface
		return g
	}

	pen, _ := Decide(state.ToolPen, style, far(10, 10, 1e300, 10))
	if pen.Shape != ShapeSegment || pen.Points[0] != image.Pt(10, 10) {
		t.Fatalf("pen = %v %v", pen.Shape, pen.Points)
	}
	if end := pen.Points[1]; end.X < 403 || end.X > 404 || end.Y != 10 {
		t.Errorf("clipped end = %v, want x in [403,404] on y=10", end)
	}

	outside, _ := Decide(state.ToolLine, style, far(-1e9, -1e9, -1e9, 1e9))
	if outside.Shape != ShapeNone {
		t.Errorf("segment beyond the margin = %v, want none", outside.Shape)
	}
	dot, _ := Decide(state.ToolPen, style, far(-1e9, 5, -1e9, 5))
	if dot.Shape != ShapeNone {
		t.Errorf("dot beyond the margin = %v, want none", dot.Shape)
	}

	rect, _ := Decide(state.ToolRectangle, style, far(10, 10, -1e300, 1e300))
	if got := rect.Points[1]; got != image.Pt(-204, 404) {
		t.Errorf("rect corner = %v, want (-204,404)", got)
	}

	circle, _ := Decide(state.ToolCircle, style, far(100, 100, 1e300, 1e300))
	if circle.Radius < 800 || circle.Radius > 865 {
		t.Errorf("radius = %d, want capped near 865", circle.Radius)
	}
	if circle.Points[0] != image.Pt(100, 100) {
		t.Errorf("center = %v", circle.Points[0])
	}
}

func TestDecide_ConfinedKeepsNearGeometry(t *testing.T) {
	g := geom(-5, 20, 210, 30)
	g.Bounds = image.Rect(0, 0, 200, 200)
	in, _ := Decide(state.ToolLine, style, g)
	if in.Points[0] != image.Pt(-5, 20) || in.Points[1] != image.Pt(210, 30) {
		t.Errorf("points = %v, want unchanged", in.Points)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want state.Tool
	}{
		{"pen", state.ToolPen},
		{"freedraw", state.ToolPen},
		{"Eraser", state.ToolEraser},
		{"line", state.ToolLine},
		{"rect", state.ToolRectangle},
		{"rectangle", state.ToolRectangle},
		{" circle ", state.ToolCircle},
		{"transform", state.ToolSelect},
	}
	for _, tt := range tests {
		got, err := Parse(tt.name)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, err := Parse("text"); !errors.Is(err, ErrInvalidTool) {
		t.Errorf("Parse(text) = %v, want ErrInvalidTool", err)
	}
}

func TestParse_RoundTripsString(t *testing.T) {
	for _, tl := range state.Tools {
		got, err := Parse(tl.String())
		if err != nil || got != tl {
			t.Errorf("Parse(%q) = %v, %v", tl.String(), got, err)
		}
		if !Valid(tl) {
			t.Errorf("Valid(%v) = false", tl)
		}
	}
	if Valid(state.Tool(-1)) {
		t.Error("Valid(-1) = true")
	}
}
