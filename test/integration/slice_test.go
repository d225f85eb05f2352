package integration

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/HavilandTuff/guillotine-plus/internal/application"
	"github.com/HavilandTuff/guillotine-plus/internal/config"
	"github.com/HavilandTuff/guillotine-plus/internal/slicer"
)

func writeSourceImage(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 2), G: uint8(y * 2), B: 200, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create source image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode source image: %v", err)
	}
}

func runApp(t *testing.T, overrides *config.CLIOverrides) error {
	t.Helper()

	cfg, err := config.Load(overrides)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	app, err := application.New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("init application: %v", err)
	}
	return app.Run()
}

func TestIntegrationGridSlice(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.png")
	writeSourceImage(t, source, 100, 100)

	tileSize := 50
	prefix := "grid"
	overrides := &config.CLIOverrides{
		ImagePath:    source,
		TileWidth:    &tileSize,
		TileHeight:   &tileSize,
		OutputDir:    &dir,
		OutputPrefix: &prefix,
	}

	if err := runApp(t, overrides); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i := 1; i <= 4; i++ {
		name := slicer.Filename("grid", i, slicer.FormatPNG)
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("expected tile %s: %v", name, err)
		}
		decoded, err := png.Decode(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("tile %s does not decode: %v", name, err)
		}
		if decoded.Bounds().Dx() != 50 || decoded.Bounds().Dy() != 50 {
			t.Fatalf("tile %s has wrong size %v", name, decoded.Bounds())
		}
	}
}

func TestIntegrationGuidesSliceWithYAMLConfig(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.png")
	writeSourceImage(t, source, 80, 60)

	configYAML := `
method: guides
vertical_guides: [40]
horizontal_guides: [30]
output:
  prefix: cell
`
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	overrides := &config.CLIOverrides{
		ConfigFile: configPath,
		ImagePath:  source,
		OutputDir:  &dir,
	}

	if err := runApp(t, overrides); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i := 1; i <= 4; i++ {
		path := filepath.Join(dir, slicer.Filename("cell", i, slicer.FormatPNG))
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected guide tile %d: %v", i, err)
		}
	}
}

func TestIntegrationPreviewThenForcedSlice(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.png")
	writeSourceImage(t, source, 60, 60)

	tileSize := 30
	prefix := "shot"
	mode := "preview"
	overrides := &config.CLIOverrides{
		ImagePath:    source,
		TileWidth:    &tileSize,
		TileHeight:   &tileSize,
		OutputDir:    &dir,
		OutputPrefix: &prefix,
		Mode:         &mode,
	}

	if err := runApp(t, overrides); err != nil {
		t.Fatalf("preview run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "shot_preview.png")); err != nil {
		t.Fatalf("expected preview file: %v", err)
	}

	// Slice into the same directory, then again without --force: the second
	// run must refuse to overwrite.
	sliceMode := "slice"
	overrides.Mode = &sliceMode
	if err := runApp(t, overrides); err != nil {
		t.Fatalf("slice run failed: %v", err)
	}

	err := runApp(t, overrides)
	if err == nil {
		t.Fatalf("expected overwrite refusal on second slice run")
	}

	force := true
	overrides.Force = &force
	if err := runApp(t, overrides); err != nil {
		t.Fatalf("forced slice run failed: %v", err)
	}
}
