package preview

import (
	"image"
	"image/color"
	"testing"
)

func whiteImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func TestRenderDrawsLines(t *testing.T) {
	t.Parallel()

	base := whiteImage(20, 20)
	out := Render(base, []int{10}, []int{5}, Options{})

	// On the vertical line the red overlay dims green and blue.
	_, g, _, _ := out.At(10, 15).RGBA()
	if g >= 0xffff {
		t.Fatalf("expected vertical line at x=10 to tint the pixel, got g=%d", g)
	}
	_, g, _, _ = out.At(15, 5).RGBA()
	if g >= 0xffff {
		t.Fatalf("expected horizontal line at y=5 to tint the pixel, got g=%d", g)
	}

	// Away from any line the source shows through untouched.
	r, g, b, _ := out.At(15, 15).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatalf("expected untouched pixel, got r=%d g=%d b=%d", r, g, b)
	}
}

func TestRenderSkipsOutOfBoundsLines(t *testing.T) {
	t.Parallel()

	base := whiteImage(10, 10)
	out := Render(base, []int{0, 10, -3}, []int{0, 10, 42}, Options{})

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			r, g, b, _ := out.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || b != 0xffff {
				t.Fatalf("pixel (%d,%d) modified by out-of-bounds line: r=%d g=%d b=%d", x, y, r, g, b)
			}
		}
	}
}

func TestRenderLineWidth(t *testing.T) {
	t.Parallel()

	base := whiteImage(20, 20)
	out := Render(base, []int{10}, nil, Options{Opacity: 1})

	// The 2-px strip covers x=9 and x=10; neighbours stay white.
	for _, x := range []int{9, 10} {
		if _, g, _, _ := out.At(x, 0).RGBA(); g >= 0xffff {
			t.Fatalf("expected line coverage at x=%d", x)
		}
	}
	for _, x := range []int{8, 11} {
		if _, g, _, _ := out.At(x, 0).RGBA(); g != 0xffff {
			t.Fatalf("expected no line coverage at x=%d, got g=%d", x, g)
		}
	}
}

func TestRenderCustomColorAndOpacity(t *testing.T) {
	t.Parallel()

	base := whiteImage(10, 10)
	out := Render(base, []int{5}, nil, Options{LineColor: "#0000ff", Opacity: 1})

	r, _, b, _ := out.At(5, 5).RGBA()
	if b < 0xf000 || r > 0x0fff {
		t.Fatalf("expected full-opacity blue line, got r=%d b=%d", r, b)
	}
}

func TestRenderBadColorFallsBack(t *testing.T) {
	t.Parallel()

	base := whiteImage(10, 10)
	out := Render(base, []int{5}, nil, Options{LineColor: "not-a-color", Opacity: 1})

	r, g, _, _ := out.At(5, 5).RGBA()
	if r < 0xf000 || g > 0x0fff {
		t.Fatalf("expected fallback red line, got r=%d g=%d", r, g)
	}
}
