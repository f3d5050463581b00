package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/config"
	"SketchBoard/internal/export"
	"SketchBoard/internal/session"
	"SketchBoard/internal/state"
)

// BoardWidget shows a session's surface and turns mouse input into pointer
// samples for it.
type BoardWidget struct {
	widget.BaseWidget
	session *session.Session
	seq     state.Sequencer

	mu       sync.RWMutex
	frame    *image.RGBA
	drawing  bool
	last     fyne.Position
	settings *config.Settings
	lastFill color.RGBA

	statusBar  *widget.Label
	OnSettings func(*config.Settings)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(s *session.Session, settings *config.Settings) *BoardWidget {
	b := &BoardWidget{
		session:   s,
		frame:     s.Snapshot(),
		settings:  settings,
		lastFill:  settings.Style.FillColor,
		statusBar: widget.NewLabel("Ready"),
	}
	s.SetRedraw(b.applyRedraw)
	b.ExtendBaseWidget(b)
	return b
}

// applyRedraw copies the damaged region into the frame. It runs on whichever
// goroutine fed the session, so the widget refresh is handed to fyne.Do.
func (b *BoardWidget) applyRedraw(r session.Redraw) {
	b.mu.Lock()
	dmg := r.Damage.Intersect(b.frame.Rect)
	draw.Draw(b.frame, dmg, r.Surface, dmg.Min, draw.Src)
	b.mu.Unlock()

	fyne.Do(b.Refresh)
}

// Frame returns a copy of what the board currently shows.
func (b *BoardWidget) Frame() *image.RGBA {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := image.NewRGBA(b.frame.Rect)
	copy(out.Pix, b.frame.Pix)
	return out
}

// Session returns the session the board draws on.
func (b *BoardWidget) Session() *session.Session {
	return b.session
}

func (b *BoardWidget) StatusBar() *widget.Label {
	return b.statusBar
}

func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// Settings returns the settings the board was last configured with.
func (b *BoardWidget) Settings() *config.Settings {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.settings
}

// ApplySettings takes a reloaded configuration. Canvas size and background
// only apply to new boards; style, redraw mode and palette apply now.
func (b *BoardWidget) ApplySettings(s *config.Settings) {
	b.mu.Lock()
	b.settings = s
	if s.Style.Filled() {
		b.lastFill = s.Style.FillColor
	}
	b.mu.Unlock()

	b.session.SetStyle(s.Style)
	b.session.SetLiveRedraw(s.LiveRedraw)
	if b.OnSettings != nil {
		fyne.Do(func() { b.OnSettings(s) })
	}
	log.Printf("[BOARD] Settings reloaded (stroke %d, live redraw %v)", s.Style.StrokeWidth, s.LiveRedraw)
	b.SetStatus("Settings reloaded")
}

func (b *BoardWidget) SetTool(t state.Tool) {
	if err := b.session.SetTool(t); err != nil {
		log.Printf("[BOARD] Tool change failed: %v", err)
		b.SetStatus(err.Error())
		return
	}
	b.SetStatus("Tool: " + t.String())
}

func (b *BoardWidget) SetColor(c color.Color) {
	style := b.session.Style()
	style.StrokeColor = color.RGBAModel.Convert(c).(color.RGBA)
	b.session.SetStyle(style)
}

func (b *BoardWidget) SetStroke(width float64) {
	style := b.session.Style()
	style.StrokeWidth = int(width)
	b.session.SetStyle(style)
}

// SetFill turns shape filling on or off. Turning it on restores the last
// fill in use, or the stroke color at half opacity when there was none.
func (b *BoardWidget) SetFill(on bool) {
	style := b.session.Style()
	if on == style.Filled() {
		return
	}
	b.mu.Lock()
	if on {
		style.FillColor = b.lastFill
		if style.FillColor.A == 0 {
			style.FillColor = config.WithAlpha(style.StrokeColor, 0.5)
		}
	} else {
		b.lastFill = style.FillColor
		style.FillColor = color.RGBA{}
	}
	b.mu.Unlock()
	b.session.SetStyle(style)
}

// ClearBoard wipes the board back to its current background.
func (b *BoardWidget) ClearBoard() {
	b.session.Clear(b.session.Background())
	b.SetStatus("Board cleared")
}

// ClearTo wipes the board to c, which becomes its background and the
// eraser color. Translucent colors are made opaque.
func (b *BoardWidget) ClearTo(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	fill := color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
	b.session.Clear(fill)
	log.Printf("[BOARD] Cleared to %s", config.FormatColor(fill))
	b.SetStatus("Background " + config.FormatColor(fill))
}

// SaveToFile encodes the board in the format implied by the file extension,
// falling back to the configured format.
func (b *BoardWidget) SaveToFile(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("Error closing writer: %v", err)
		}
	}()

	settings := b.Settings()
	format, err := export.ParseFormat(writer.URI().Extension())
	if err != nil {
		format = settings.ExportFormat
	}
	log.Printf("SaveToFile: Exporting %s to %s", format, writer.URI().Name())

	if err := b.session.ExportTo(writer, format, settings.Trim, settings.TrimPadding); err != nil {
		log.Printf("SaveToFile: Error exporting: %v", err)
		b.SetStatus("Error saving file")
		return
	}
	b.SetStatus(fmt.Sprintf("Saved %s", writer.URI().Name()))
}

// toSurface maps a widget position to surface coordinates. The frame is
// stretched over the widget, so the axes scale independently.
func (b *BoardWidget) toSurface(pos fyne.Position) (float64, float64) {
	size := b.Size()
	bounds := b.session.Bounds()
	sx, sy := 1.0, 1.0
	if size.Width > 0 {
		sx = float64(bounds.Dx()) / float64(size.Width)
	}
	if size.Height > 0 {
		sy = float64(bounds.Dy()) / float64(size.Height)
	}
	return float64(pos.X) * sx, float64(pos.Y) * sy
}

func (b *BoardWidget) submit(pos fyne.Position, down bool) {
	x, y := b.toSurface(pos)
	sample := b.seq.Stamp(state.PointerSample{X: x, Y: y, ButtonDown: down})
	if err := b.session.SubmitPointerSample(sample); err != nil {
		log.Printf("[BOARD] Stroke dropped: %v", err)
		b.SetStatus(err.Error())
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mu.Lock()
	b.drawing = true
	b.last = e.Position
	b.mu.Unlock()
	b.submit(e.Position, true)
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.release(e.Position)
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.move(e.Position)
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.move(e.Position)
}

// DragEnd carries no position, so the stroke ends where it was last seen.
func (b *BoardWidget) DragEnd() {
	b.mu.RLock()
	last := b.last
	b.mu.RUnlock()
	b.release(last)
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

// MouseOut leaves the stroke alone; samples outside the surface are clipped.
func (b *BoardWidget) MouseOut() {}

func (b *BoardWidget) move(pos fyne.Position) {
	b.mu.Lock()
	if !b.drawing {
		b.mu.Unlock()
		return
	}
	b.last = pos
	b.mu.Unlock()
	b.submit(pos, true)
}

func (b *BoardWidget) release(pos fyne.Position) {
	b.mu.Lock()
	if !b.drawing {
		b.mu.Unlock()
		return
	}
	b.drawing = false
	b.mu.Unlock()
	b.submit(pos, false)
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return newBoardRenderer(b)
}
