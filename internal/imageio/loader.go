package imageio

import (
	"fmt"
	"image"
	"os"

	// Register decoders for every input format the slicer accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes a loaded source image.
type Info struct {
	Width    int
	Height   int
	Format   string
	HasAlpha bool
}

// Load opens and decodes a source image. Supported formats are PNG, JPEG,
// GIF, WebP, TIFF, and BMP; detection is based on the file contents, not the
// extension.
func Load(path string) (image.Image, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode image %s: %w", path, err)
	}

	bounds := img.Bounds()
	info := Info{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Format:   format,
		HasAlpha: hasAlphaChannel(img),
	}
	return img, info, nil
}

func hasAlphaChannel(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return true
	default:
		return false
	}
}
