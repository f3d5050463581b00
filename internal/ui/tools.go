package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/config"
	"SketchBoard/internal/export"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tool"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.RGBA
	OnTapped func(color.RGBA)
}

func newColorSwatch(c color.RGBA, tapped func(color.RGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func paletteSwatches(board *BoardWidget, palette []color.RGBA) []fyne.CanvasObject {
	onColorTapped := func(c color.RGBA) {
		board.SetColor(c)
	}
	swatches := make([]fyne.CanvasObject, 0, len(palette))
	for _, c := range palette {
		swatches = append(swatches, newColorSwatch(c, onColorTapped))
	}
	return swatches
}

func toolNames() []string {
	names := make([]string, 0, len(state.Tools))
	for _, t := range state.Tools {
		names = append(names, t.String())
	}
	return names
}

// --- The Main Toolbar ---
// newBoard runs when the user asks for another board; nil hides the action.
func NewToolbar(board *BoardWidget, win fyne.Window, newBoard func()) fyne.CanvasObject {
	settings := board.Settings()

	// --- Tool Selector ---
	toolSelect := widget.NewSelect(toolNames(), func(name string) {
		t, err := tool.Parse(name)
		if err != nil {
			log.Printf("[BOARD] %v", err)
			return
		}
		board.SetTool(t)
	})
	toolSelect.SetSelected(settings.Tool.String())

	// --- Color Palette ---
	colorBox := container.NewHBox(paletteSwatches(board, settings.Palette)...)

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(1.0, 50.0)
	strokeSlider.SetValue(float64(settings.Style.StrokeWidth))
	strokeSlider.OnChanged = func(val float64) {
		board.SetStroke(val)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	// Checked is set before OnChanged so the configured fill survives.
	fillCheck := widget.NewCheck("Fill", nil)
	fillCheck.Checked = settings.Style.Filled()
	fillCheck.OnChanged = board.SetFill

	// Reloads update the controls without firing their callbacks.
	board.OnSettings = func(s *config.Settings) {
		colorBox.Objects = paletteSwatches(board, s.Palette)
		colorBox.Refresh()
		strokeSlider.Value = float64(s.Style.StrokeWidth)
		strokeSlider.Refresh()
		fillCheck.Checked = s.Style.Filled()
		fillCheck.Refresh()
	}

	actions := []widget.ToolbarItem{
		widget.NewToolbarAction(theme.ColorPaletteIcon(), func() {
			showColorPicker(win, "Stroke color", "Draw with", board.SetColor)
		}), // Custom stroke color
		widget.NewToolbarAction(theme.ColorChromaticIcon(), func() {
			showColorPicker(win, "Background", "Clear the board to", board.ClearTo)
		}), // Background
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			showExportDialog(board, win)
		}), // Export
		widget.NewToolbarAction(theme.DeleteIcon(), board.ClearBoard), // Clear
	}
	if newBoard != nil {
		actions = append(actions, widget.NewToolbarSeparator(),
			widget.NewToolbarAction(theme.ContentAddIcon(), newBoard)) // New board
	}
	tb := widget.NewToolbar(actions...)

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		toolSelect,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		fillCheck,
		layout.NewSpacer(),
		tb,
	)
}

func showColorPicker(win fyne.Window, title, message string, picked func(color.Color)) {
	picker := dialog.NewColorPicker(title, message, picked, win)
	picker.Advanced = true
	picker.Show()
}

func showExportDialog(board *BoardWidget, win fyne.Window) {
	exts := make([]string, 0, len(export.Formats))
	for _, f := range export.Formats {
		exts = append(exts, f.Extension())
	}

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		board.SaveToFile(writer)
	}, win)
	save.SetFilter(storage.NewExtensionFileFilter(exts))
	save.SetFileName("board" + board.Settings().ExportFormat.Extension())
	save.Show()
}
