// Package engine applies stroke events to a committed pixel surface.
//
// Continuous tools (pen, eraser) commit every segment as it arrives. Shape
// tools (line, rectangle, circle) render into a scratch overlay copied from
// the surface at stroke start and commit once, on release. The committed
// surface is never touched while a shape is being previewed.
package engine

import (
	"image"
	"image/color"

	"SketchBoard/internal/input"
	"SketchBoard/internal/raster"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tool"
)

// Engine owns the committed surface of one board.
type Engine struct {
	surface *raster.Surface

	// snapshot is the committed surface as it was when the active shape
	// stroke started; overlay is snapshot plus the current preview.
	snapshot *raster.Surface
	overlay  *raster.Surface
	preview  image.Rectangle
}

// New wraps surface. The engine takes ownership of it.
func New(surface *raster.Surface) *Engine {
	return &Engine{surface: surface}
}

// Surface returns the committed surface.
func (e *Engine) Surface() *raster.Surface {
	return e.surface
}

// Display returns what the board should show: the preview overlay while a
// shape is being dragged, the committed surface otherwise.
func (e *Engine) Display() *raster.Surface {
	if e.overlay != nil {
		return e.overlay
	}
	return e.surface
}

// Previewing reports whether a shape preview is active.
func (e *Engine) Previewing() bool {
	return e.overlay != nil
}

// Apply renders ev and returns the damaged rectangle of the displayed
// surface. The rectangle is empty when nothing visible changed.
func (e *Engine) Apply(ev input.Event) (image.Rectangle, error) {
	switch {
	case ev.Tool.Continuous():
		return e.applyContinuous(ev)
	case ev.Tool.Shape():
		return e.applyShape(ev)
	}
	// select and unknown tools go through the policy so that a bad tool
	// value is reported instead of silently ignored
	in, err := tool.Decide(ev.Tool, ev.Style, e.geometry(ev.From, ev.To))
	if err != nil {
		return image.Rectangle{}, err
	}
	return e.render(e.surface, in), nil
}

func (e *Engine) applyContinuous(ev input.Event) (image.Rectangle, error) {
	if ev.Kind == input.StrokeEnd && ev.From == ev.To {
		return image.Rectangle{}, nil
	}
	in, err := tool.Decide(ev.Tool, ev.Style, e.geometry(ev.From, ev.To))
	if err != nil {
		return image.Rectangle{}, err
	}
	return e.render(e.surface, in), nil
}

func (e *Engine) applyShape(ev input.Event) (image.Rectangle, error) {
	switch ev.Kind {
	case input.StrokeStart:
		e.snapshot = e.surface.Clone()
		e.overlay = e.surface.Clone()
		e.preview = image.Rectangle{}
		return image.Rectangle{}, nil

	case input.StrokeExtend:
		if e.overlay == nil {
			// the stroke was cancelled
			return image.Rectangle{}, nil
		}
		in, err := tool.Decide(ev.Tool, ev.Style, e.geometry(ev.Start, ev.To))
		if err != nil {
			return image.Rectangle{}, err
		}
		old := e.preview
		e.overlay.Blit(old, e.snapshot)
		e.preview = e.render(e.overlay, in)
		return old.Union(e.preview), nil

	case input.StrokeEnd:
		if e.overlay == nil {
			return image.Rectangle{}, nil
		}
		old := e.preview
		e.Cancel()
		in, err := tool.Decide(ev.Tool, ev.Style, e.geometry(ev.Start, ev.To))
		if err != nil {
			return old, err
		}
		return old.Union(e.render(e.surface, in)), nil
	}
	return image.Rectangle{}, nil
}

// Cancel discards any preview overlay. The committed surface is untouched.
func (e *Engine) Cancel() {
	e.snapshot = nil
	e.overlay = nil
	e.preview = image.Rectangle{}
}

// Clear cancels any preview and refills the committed surface.
func (e *Engine) Clear(fill color.RGBA) {
	e.Cancel()
	e.surface.Clear(fill)
}

func (e *Engine) geometry(from, to state.Point) tool.Geometry {
	return tool.Geometry{
		From:       from,
		To:         to,
		Background: e.surface.Background(),
		Bounds:     e.surface.Bounds(),
	}
}

// render draws in onto dst and returns the touched rectangle clipped to dst.
func (e *Engine) render(dst *raster.Surface, in tool.Instruction) image.Rectangle {
	switch in.Shape {
	case tool.ShapeNone:
		return image.Rectangle{}
	case tool.ShapeDot:
		p := in.Points[0]
		dst.FillDisc(p.X, p.Y, in.Width/2, in.Color)
	case tool.ShapeSegment:
		a, b := in.Points[0], in.Points[1]
		dst.StrokeLine(a.X, a.Y, b.X, b.Y, in.Width, in.Color)
	case tool.ShapeRect:
		a, b := in.Points[0], in.Points[1]
		if in.Filled {
			dst.FillRect(a.X, a.Y, b.X, b.Y, in.Fill)
		}
		dst.StrokeRect(a.X, a.Y, b.X, b.Y, in.Width, in.Color)
	case tool.ShapeCircle:
		c := in.Points[0]
		if in.Filled {
			dst.FillCircle(c.X, c.Y, in.Radius, in.Fill)
		}
		dst.StrokeCircle(c.X, c.Y, in.Radius, in.Width, in.Color)
	}
	return in.Bounds().Intersect(dst.Bounds())
}
