package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	raster     *canvas.Raster
}

func newBoardRenderer(b *BoardWidget) *boardRenderer {
	r := &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(b.session.Background()),
	}
	// The generator hands back a copy; the frame keeps changing underneath.
	r.raster = canvas.NewRaster(func(int, int) image.Image {
		return b.Frame()
	})
	r.raster.ScaleMode = canvas.ImageScalePixels
	return r
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.raster}
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.raster.Resize(size)
}

// MinSize is the surface at one pixel per unit.
func (r *boardRenderer) MinSize() fyne.Size {
	bounds := r.board.session.Bounds()
	return fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy()))
}

func (r *boardRenderer) Refresh() {
	r.background.FillColor = r.board.session.Background()
	r.background.Refresh()
	r.raster.Refresh()
}

func (r *boardRenderer) Destroy() {}
