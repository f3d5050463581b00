package session

import (
	"image/color"

	"SketchBoard/internal/state"
)

// Option configures a Session during creation.
type Option func(*options)

type options struct {
	width, height int
	background    color.RGBA
	tool          state.Tool
	style         state.Style
	liveRedraw    bool
	onRedraw      func(Redraw)
}

func defaultOptions() options {
	return options{
		width:      800,
		height:     600,
		background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		tool:       state.ToolPen,
		style:      state.DefaultStyle,
		liveRedraw: true,
	}
}

// WithSize sets the surface dimensions. The default is 800x600.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithBackground sets the initial fill, which is also the eraser color.
func WithBackground(c color.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithTool sets the initial tool.
func WithTool(t state.Tool) Option {
	return func(o *options) {
		o.tool = t
	}
}

// WithStyle sets the initial style.
func WithStyle(s state.Style) Option {
	return func(o *options) {
		o.style = s
	}
}

// WithLiveRedraw controls whether every visible change is reported. When
// off, damage is coalesced and reported once per stroke, on release.
func WithLiveRedraw(live bool) Option {
	return func(o *options) {
		o.liveRedraw = live
	}
}

// WithRedraw registers the redraw callback.
func WithRedraw(fn func(Redraw)) Option {
	return func(o *options) {
		o.onRedraw = fn
	}
}
