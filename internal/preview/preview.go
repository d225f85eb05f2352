package preview

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	defaultLineColor = "#ff0000"
	defaultOpacity   = 0.5

	// Cut lines are drawn 2 px wide, centred on the cut coordinate.
	lineWidth = 2
)

// Options controls the appearance of the rendered overlay. Zero values fall
// back to a red line at 50 % opacity.
type Options struct {
	LineColor string
	Opacity   float64
}

// Render blends a cut-line overlay over the source image. Each vertical and
// horizontal position strictly inside the image gets a 2-px-wide line on a
// transparent layer, which is then composited over the source at the
// configured opacity. Positions at or outside the image bounds are skipped,
// and the source image is never modified.
func Render(img image.Image, vertical, horizontal []int, opts Options) *image.RGBA {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	lineColor := parseLineColor(opts.LineColor, resolveOpacity(opts.Opacity))

	overlay := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, x := range vertical {
		if x <= 0 || x >= w {
			continue
		}
		strip := image.Rect(x-lineWidth/2, 0, x+lineWidth/2, h)
		draw.Draw(overlay, strip, &image.Uniform{C: lineColor}, image.Point{}, draw.Src)
	}
	for _, y := range horizontal {
		if y <= 0 || y >= h {
			continue
		}
		strip := image.Rect(0, y-lineWidth/2, w, y+lineWidth/2)
		draw.Draw(overlay, strip, &image.Uniform{C: lineColor}, image.Point{}, draw.Src)
	}

	return blend.Normal(img, overlay)
}

func resolveOpacity(opacity float64) float64 {
	if opacity <= 0 {
		return defaultOpacity
	}
	if opacity > 1 {
		return 1
	}
	return opacity
}

// parseLineColor interprets a hex color string such as "#ff0000", falling
// back to the default red when the string is empty or malformed. The line
// opacity is carried in the alpha channel so compositing stays a plain
// source-over blend.
func parseLineColor(hex string, opacity float64) color.Color {
	if hex == "" {
		hex = defaultLineColor
	}
	parsed, err := colorful.Hex(hex)
	if err != nil {
		parsed, _ = colorful.Hex(defaultLineColor)
	}
	r, g, b := parsed.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(opacity*255 + 0.5)}
}
