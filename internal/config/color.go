package config

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses "#RRGGBB" or "#RGB" into an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// WithAlpha returns c with opacity alpha in [0, 1], premultiplied.
func WithAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := uint8(alpha*0xff + 0.5)
	n := color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
	return color.RGBAModel.Convert(n).(color.RGBA)
}

// FormatColor renders c as "#rrggbb". Transparent colors render as "none".
func FormatColor(c color.RGBA) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cf.Hex()
}
