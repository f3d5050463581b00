// Package session is the boundary between a drawing harness and the
// drawing core. A Session owns one surface, one pointer reducer and one
// engine; nothing is shared between sessions.
package session

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/google/uuid"

	"SketchBoard/internal/engine"
	"SketchBoard/internal/export"
	"SketchBoard/internal/input"
	"SketchBoard/internal/raster"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tool"
)

// Redraw tells the harness what to show. Surface is the committed surface,
// or the preview overlay while a shape is being dragged. It stays valid
// until the next call into the session and must not be modified.
type Redraw struct {
	Surface    *raster.Surface
	Damage     image.Rectangle
	Previewing bool
}

// Session is one independent drawing board. Its methods are safe to call
// from multiple goroutines; the redraw callback runs on the calling
// goroutine after the session lock is released.
type Session struct {
	id string

	mu         sync.Mutex
	reducer    *input.Reducer
	engine     *engine.Engine
	damage     *state.DamageTracker
	tool       state.Tool
	style      state.Style
	liveRedraw bool
	onRedraw   func(Redraw)
}

// New creates a session with a fresh surface.
func New(opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !tool.Valid(o.tool) {
		return nil, &tool.InvalidToolError{Tool: o.tool}
	}
	surface, err := raster.New(o.width, o.height, o.background)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s := &Session{
		id:         uuid.NewString(),
		reducer:    input.NewReducer(),
		engine:     engine.New(surface),
		damage:     state.NewDamageTracker(surface.Bounds()),
		tool:       o.tool,
		style:      o.style.Normalize(),
		liveRedraw: o.liveRedraw,
		onRedraw:   o.onRedraw,
	}
	Logger().Info("session created", "id", s.id, "width", o.width, "height", o.height)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Bounds returns the surface rectangle.
func (s *Session) Bounds() image.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Surface().Bounds()
}

// Tool returns the active tool.
func (s *Session) Tool() state.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tool
}

// Style returns the active style.
func (s *Session) Style() state.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// Background returns the surface's current background, which is also the
// eraser color.
func (s *Session) Background() color.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Surface().Background()
}

// Stroking reports whether a stroke is in progress.
func (s *Session) Stroking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reducer.Stroking()
}

// SetRedraw replaces the redraw callback.
func (s *Session) SetRedraw(fn func(Redraw)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRedraw = fn
}

// SetLiveRedraw switches between reporting every change and reporting once
// per stroke.
func (s *Session) SetLiveRedraw(live bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveRedraw = live
}

// SubmitPointerSample feeds one pointer reading through the reducer and the
// engine. Out-of-range, duplicate and stray samples are absorbed silently.
func (s *Session) SubmitPointerSample(sample state.PointerSample) error {
	s.mu.Lock()
	ev, ok := s.reducer.Submit(sample, s.tool, s.style)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	dmg, err := s.engine.Apply(ev)
	if err != nil {
		s.reducer.Cancel()
		s.engine.Cancel()
		s.mu.Unlock()
		Logger().Warn("stroke rejected", "id", s.id, "tool", ev.Tool.String(), "err", err)
		return err
	}
	if ev.Kind != input.StrokeExtend {
		Logger().Debug("stroke "+ev.Kind.String(), "id", s.id, "tool", ev.Tool.String(),
			"x", ev.To.X, "y", ev.To.Y)
	}

	s.damage.Add(dmg)
	var notify bool
	if s.liveRedraw || ev.Kind == input.StrokeEnd {
		// the flush also carries anything held back before live redraw
		// was switched on
		dmg = s.damage.Flush()
		notify = !dmg.Empty()
	}
	r, fn := s.redrawLocked(dmg)
	s.mu.Unlock()

	if notify && fn != nil {
		fn(r)
	}
	return nil
}

// SetTool changes the active tool. Switching to a different tool while a
// stroke is in progress cancels that stroke; segments a pen or eraser has
// already committed stay.
func (s *Session) SetTool(t state.Tool) error {
	if !tool.Valid(t) {
		err := &tool.InvalidToolError{Tool: t}
		Logger().Warn("tool rejected", "id", s.id, "err", err)
		return err
	}

	s.mu.Lock()
	if s.tool == t {
		s.mu.Unlock()
		return nil
	}
	s.tool = t
	r, fn, notify := s.cancelLocked()
	s.mu.Unlock()

	Logger().Info("tool changed", "id", s.id, "tool", t.String())
	if notify && fn != nil {
		fn(r)
	}
	return nil
}

// SetStyle changes the style for future strokes. A stroke in progress keeps
// the style it started with.
func (s *Session) SetStyle(style state.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style.Normalize()
}

// Cancel abandons the stroke in progress, discarding any shape preview.
func (s *Session) Cancel() {
	s.mu.Lock()
	r, fn, notify := s.cancelLocked()
	s.mu.Unlock()

	if notify && fn != nil {
		fn(r)
	}
}

// Clear cancels any stroke in progress and refills the surface. fill also
// becomes the eraser color.
func (s *Session) Clear(fill color.RGBA) {
	s.mu.Lock()
	if s.reducer.Cancel() {
		Logger().Debug("stroke cancelled by clear", "id", s.id)
	}
	s.engine.Clear(fill)
	bounds := s.engine.Surface().Bounds()
	s.damage.Reset(bounds)
	r, fn := s.redrawLocked(bounds)
	s.mu.Unlock()

	Logger().Info("board cleared", "id", s.id)
	if fn != nil {
		fn(r)
	}
}

// Export returns a copy of the committed surface as RGBA rows, top to
// bottom. An active shape preview is not included.
func (s *Session) Export() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Surface().Export()
}

// Snapshot returns a copy of the committed surface as an image.
func (s *Session) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Surface().Image()
}

// ContentBounds returns the box of pixels differing from the background.
func (s *Session) ContentBounds() image.Rectangle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Surface().ContentBounds()
}

// ExportPNG encodes the committed surface as PNG.
func (s *Session) ExportPNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.ExportTo(&buf, export.PNG, false, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportTo encodes the committed surface to w. When trim is set the image
// is cropped to the drawn content plus pad pixels; a blank board is never
// cropped.
func (s *Session) ExportTo(w io.Writer, f export.Format, trim bool, pad int) error {
	s.mu.Lock()
	img := s.engine.Surface().Image()
	var content image.Rectangle
	if trim {
		content = s.engine.Surface().ContentBounds()
	}
	s.mu.Unlock()

	if trim {
		img = export.Trim(img, content, pad)
	}
	if err := export.Encode(w, img, f); err != nil {
		return fmt.Errorf("exporting session %s: %w", s.id, err)
	}
	return nil
}

func (s *Session) cancelLocked() (Redraw, func(Redraw), bool) {
	previewing := s.engine.Previewing()
	if s.reducer.Cancel() {
		Logger().Debug("stroke cancelled", "id", s.id)
	}
	s.engine.Cancel()
	// pending holds pen segments not yet reported when live redraw is off
	dmg := s.damage.Flush()
	if previewing {
		dmg = s.engine.Surface().Bounds()
	}
	if dmg.Empty() {
		return Redraw{}, nil, false
	}
	r, fn := s.redrawLocked(dmg)
	return r, fn, true
}

func (s *Session) redrawLocked(dmg image.Rectangle) (Redraw, func(Redraw)) {
	return Redraw{
		Surface:    s.engine.Display(),
		Damage:     dmg,
		Previewing: s.engine.Previewing(),
	}, s.onRedraw
}
