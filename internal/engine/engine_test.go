package engine

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"SketchBoard/internal/input"
	"SketchBoard/internal/raster"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tool"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
	thin  = state.Style{StrokeColor: black, StrokeWidth: 1}
)

type harness struct {
	t       *testing.T
	reducer *input.Reducer
	engine  *Engine
	tool    state.Tool
	style   state.Style
}

func newHarness(t *testing.T, tl state.Tool) *harness {
	t.Helper()
	s, err := raster.New(200, 200, white)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	return &harness{t: t, reducer: input.NewReducer(), engine: New(s), tool: tl, style: thin}
}

func (h *harness) feed(x, y float64, pressed bool) image.Rectangle {
	h.t.Helper()
	ev, ok := h.reducer.Submit(state.PointerSample{X: x, Y: y, ButtonDown: pressed}, h.tool, h.style)
	if !ok {
		return image.Rectangle{}
	}
	dmg, err := h.engine.Apply(ev)
	if err != nil {
		h.t.Fatalf("Apply(%v) failed: %v", ev.Kind, err)
	}
	return dmg
}

func (h *harness) clear(c color.RGBA) {
	h.reducer.Cancel()
	h.engine.Clear(c)
}

func (h *harness) pixel(x, y int) color.RGBA {
	return h.engine.Surface().RGBAAt(x, y)
}

func blank(t *testing.T) []byte {
	t.Helper()
	s, _ := raster.New(200, 200, white)
	return s.Export()
}

func TestIdleSamplesLeaveSurfaceUnchanged(t *testing.T) {
	for _, tl := range state.Tools {
		h := newHarness(t, tl)
		for i := 0; i < 20; i++ {
			h.feed(float64(i*7), float64(i*3), false)
		}
		if !bytes.Equal(h.engine.Surface().Export(), blank(t)) {
			t.Errorf("%s: released samples mutated the surface", tl)
		}
	}
}

func TestPen_DuplicateSamplesDrawSingleMark(t *testing.T) {
	h := newHarness(t, state.ToolPen)
	h.style.StrokeWidth = 5
	h.feed(10, 10, true)
	h.feed(10, 10, true)
	h.feed(10, 10, true)
	h.feed(10, 10, false)

	ref, _ := raster.New(200, 200, white)
	ref.FillDisc(10, 10, 2, black)
	if !bytes.Equal(h.engine.Surface().Export(), ref.Export()) {
		t.Error("surface differs from a single start mark")
	}
}

func TestPen_CommitsEverySegment(t *testing.T) {
	h := newHarness(t, state.ToolPen)
	h.feed(10, 10, true)
	h.feed(20, 10, true)
	if h.engine.Previewing() {
		t.Fatal("pen must not preview")
	}
	if got := h.pixel(15, 10); got != black {
		t.Errorf("segment pixel = %v, want black before release", got)
	}
	h.feed(20, 20, false)
	if got := h.pixel(20, 15); got != black {
		t.Errorf("closing segment pixel = %v, want black", got)
	}
}

func TestEraser_PaintsBackground(t *testing.T) {
	h := newHarness(t, state.ToolPen)
	h.style.StrokeWidth = 3
	h.feed(10, 50, true)
	h.feed(90, 50, false)

	h.tool = state.ToolEraser
	h.feed(50, 40, true)
	h.feed(50, 60, false)

	if got := h.pixel(50, 50); got != white {
		t.Errorf("erased pixel = %v, want background", got)
	}
	if got := h.pixel(20, 50); got != black {
		t.Errorf("untouched pixel = %v, want black", got)
	}
}

func TestEraser_UsesCurrentBackground(t *testing.T) {
	grey := color.RGBA{R: 245, G: 245, B: 245, A: 255}
	h := newHarness(t, state.ToolPen)
	h.clear(grey)
	h.feed(10, 10, true)
	h.feed(30, 10, false)

	h.tool = state.ToolEraser
	h.feed(20, 10, true)
	h.feed(20, 10, false)
	if got := h.pixel(20, 10); got != grey {
		t.Errorf("erased pixel = %v, want %v", got, grey)
	}
}

func TestRectangle_PreviewDoesNotAffectCommit(t *testing.T) {
	a := newHarness(t, state.ToolRectangle)
	a.feed(0, 0, true)
	a.feed(50, 50, true)
	a.feed(50, 50, false)

	b := newHarness(t, state.ToolRectangle)
	b.feed(0, 0, true)
	b.feed(50, 50, false)

	if !bytes.Equal(a.engine.Surface().Export(), b.engine.Surface().Export()) {
		t.Error("intermediate preview changed the committed rectangle")
	}
	if got := a.pixel(50, 25); got != black {
		t.Errorf("outline pixel = %v, want black", got)
	}
	if got := a.pixel(25, 25); got != white {
		t.Errorf("interior pixel = %v, want white", got)
	}
}

func TestShape_PreviewNeverTouchesCommittedSurface(t *testing.T) {
	h := newHarness(t, state.ToolLine)
	h.feed(10, 10, true)
	for i := 0; i < 50; i++ {
		h.feed(float64(20+i*3), float64(100-i), true)
	}

	if !h.engine.Previewing() {
		t.Fatal("expected preview while dragging")
	}
	if !bytes.Equal(h.engine.Surface().Export(), blank(t)) {
		t.Error("preview mutated the committed surface")
	}

	// only the latest preview is visible
	disp := h.engine.Display()
	if got := disp.RGBAAt(20, 100); got != white {
		t.Errorf("stale preview pixel at (20,100) = %v", got)
	}
	if got := disp.RGBAAt(167, 51); got != black {
		t.Errorf("current preview end (167,51) = %v, want black", got)
	}
}

func TestShape_CommitsOnceOnRelease(t *testing.T) {
	h := newHarness(t, state.ToolLine)
	h.feed(10, 10, true)
	h.feed(40, 10, true)
	h.feed(60, 10, false)

	if h.engine.Previewing() {
		t.Error("preview survived release")
	}
	if h.engine.Display() != h.engine.Surface() {
		t.Error("display must be the committed surface after release")
	}
	if got := h.pixel(60, 10); got != black {
		t.Errorf("line end = %v, want black", got)
	}
}

func TestCircle_RadiusIsDistance(t *testing.T) {
	h := newHarness(t, state.ToolCircle)
	h.feed(100, 100, true)
	h.feed(103, 104, false)

	if got := h.pixel(105, 100); got != black {
		t.Errorf("outline (105,100) = %v, want black", got)
	}
	if got := h.pixel(100, 100); got != white {
		t.Errorf("center (100,100) = %v, want white", got)
	}
}

func TestFilledShapes(t *testing.T) {
	fill := color.RGBA{R: 200, A: 255}
	h := newHarness(t, state.ToolCircle)
	h.style.FillColor = fill
	h.feed(100, 100, true)
	h.feed(110, 100, false)
	if got := h.pixel(100, 100); got != fill {
		t.Errorf("circle center = %v, want fill", got)
	}
	if got := h.pixel(110, 100); got != black {
		t.Errorf("circle outline = %v, want black", got)
	}

	h.tool = state.ToolRectangle
	h.feed(10, 10, true)
	h.feed(30, 30, false)
	if got := h.pixel(20, 20); got != fill {
		t.Errorf("rect interior = %v, want fill", got)
	}
}

func TestClearMidStroke(t *testing.T) {
	h := newHarness(t, state.ToolRectangle)
	h.feed(0, 0, true)
	h.feed(25, 25, true)
	h.clear(white)
	h.feed(50, 50, false)

	if h.engine.Previewing() {
		t.Error("clear left a preview behind")
	}
	if !bytes.Equal(h.engine.Surface().Export(), blank(t)) {
		t.Error("shape drawn after clear")
	}
}

func TestEngine_EndWithoutStartIsIgnored(t *testing.T) {
	h := newHarness(t, state.ToolRectangle)
	dmg, err := h.engine.Apply(input.Event{
		Kind: input.StrokeEnd, To: state.Point{X: 50, Y: 50}, Tool: state.ToolRectangle, Style: thin,
	})
	if err != nil || !dmg.Empty() {
		t.Errorf("Apply = %v, %v; want empty, nil", dmg, err)
	}
}

func TestSelect_NoMutation(t *testing.T) {
	h := newHarness(t, state.ToolSelect)
	h.feed(10, 10, true)
	if dmg := h.feed(90, 90, true); !dmg.Empty() {
		t.Errorf("select damage = %v, want empty", dmg)
	}
	h.feed(90, 90, false)
	if !bytes.Equal(h.engine.Surface().Export(), blank(t)) {
		t.Error("select mutated the surface")
	}
}

func TestInvalidTool(t *testing.T) {
	h := newHarness(t, state.Tool(42))
	ev, _ := h.reducer.Submit(state.PointerSample{X: 1, Y: 1, ButtonDown: true}, h.tool, h.style)
	_, err := h.engine.Apply(ev)
	if !errors.Is(err, tool.ErrInvalidTool) {
		t.Errorf("expected ErrInvalidTool, got %v", err)
	}
}

func TestDamageCoversMutation(t *testing.T) {
	h := newHarness(t, state.ToolPen)
	h.style.StrokeWidth = 7
	before := h.engine.Surface().Export()

	var dmg image.Rectangle
	dmg = dmg.Union(h.feed(40, 40, true))
	dmg = dmg.Union(h.feed(80, 60, true))
	dmg = dmg.Union(h.feed(80, 60, false))

	after := h.engine.Surface().Export()
	changed := false
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			i := (y*200 + x) * 4
			if bytes.Equal(before[i:i+4], after[i:i+4]) {
				continue
			}
			changed = true
			if !image.Pt(x, y).In(dmg) {
				t.Fatalf("pixel (%d,%d) changed outside damage %v", x, y, dmg)
			}
		}
	}
	if !changed {
		t.Fatal("stroke changed nothing")
	}
}

func TestShapeDamageIncludesStalePreview(t *testing.T) {
	h := newHarness(t, state.ToolRectangle)
	h.feed(10, 10, true)
	h.feed(150, 150, true)
	dmg := h.feed(20, 20, true)

	if !image.Pt(150, 150).In(dmg) {
		t.Errorf("damage %v does not cover the erased preview", dmg)
	}
	if got := h.engine.Display().RGBAAt(150, 150); got != white {
		t.Errorf("stale preview corner = %v, want white", got)
	}
}
