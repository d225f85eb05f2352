package slicer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/HavilandTuff/guillotine-plus/internal/calculator"
)

const defaultJPEGQuality = 92

// ErrOutputDir indicates the output directory is missing or not a directory.
var ErrOutputDir = errors.New("output directory does not exist")

// Slicer exports tile rectangles as separate image files. Tiles are written
// in sequence order, so the 1-based file numbering is fixed by the order the
// calculator emitted them in.
type Slicer struct {
	logger   *zap.Logger
	progress progressGate
	quality  int
}

// Option configures Slicer behaviour.
type Option func(*Slicer)

// WithProgressRate throttles per-tile progress log lines to the given rate.
// A non-positive rate logs every tile.
func WithProgressRate(perSecond float64, burst int) Option {
	return func(s *Slicer) {
		s.progress = newTokenBucketGate(perSecond, burst)
	}
}

// WithJPEGQuality overrides the JPEG encoding quality (1-100).
func WithJPEGQuality(quality int) Option {
	return func(s *Slicer) {
		if quality >= 1 && quality <= 100 {
			s.quality = quality
		}
	}
}

// New constructs a Slicer logging through the provided logger.
func New(logger *zap.Logger, opts ...Option) *Slicer {
	s := &Slicer{
		logger:   logger,
		progress: newTokenBucketGate(0, 0),
		quality:  defaultJPEGQuality,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Slice crops every tile out of the source image and saves it to outputDir as
// {prefix}_{index:03d}.{ext}, index counting from 1 in sequence order.
//
// A tile that fails to encode or write is logged and skipped; the remaining
// tiles are still exported and the paths actually written are returned.
// Only directory-level problems abort the run.
func (s *Slicer) Slice(img image.Image, tiles []calculator.Rect, outputDir, prefix string, format Format) ([]string, error) {
	if len(tiles) == 0 {
		return nil, nil
	}

	info, err := os.Stat(outputDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrOutputDir, outputDir)
	}

	bounds := img.Bounds()
	saved := make([]string, 0, len(tiles))

	for idx, tile := range tiles {
		region := image.Rect(
			bounds.Min.X+tile.X,
			bounds.Min.Y+tile.Y,
			bounds.Min.X+tile.X+tile.Width,
			bounds.Min.Y+tile.Y+tile.Height,
		)
		cropped := imaging.Crop(img, region)

		// JPEG has no alpha channel: flatten onto white before encoding.
		var out image.Image = cropped
		if format == FormatJPEG {
			background := imaging.New(tile.Width, tile.Height, color.White)
			out = imaging.Overlay(background, cropped, image.Pt(0, 0), 1.0)
		}

		path := filepath.Join(outputDir, Filename(prefix, idx+1, format))
		if err := imaging.Save(out, path, imaging.JPEGQuality(s.quality)); err != nil {
			s.logger.Warn("tile save failed",
				zap.Int("index", idx+1),
				zap.String("path", path),
				zap.Error(err),
			)
			continue
		}
		saved = append(saved, path)

		if s.progress.allow() {
			s.logger.Info("tile written",
				zap.Int("index", idx+1),
				zap.Int("total", len(tiles)),
				zap.String("path", path),
			)
		}
	}

	s.logger.Info("slicing complete",
		zap.Int("tiles_written", len(saved)),
		zap.Int("tiles_requested", len(tiles)),
		zap.String("output_dir", outputDir),
	)

	return saved, nil
}

// Filename returns the export filename for the tile at the given 1-based
// sequence index.
func Filename(prefix string, index int, format Format) string {
	return fmt.Sprintf("%s_%03d.%s", prefix, index, format.Ext())
}

// CheckForOverwrites reports which of the target filenames for a run of count
// tiles already exist in outputDir.
func CheckForOverwrites(outputDir, prefix string, count int, format Format) []string {
	var existing []string
	for i := 1; i <= count; i++ {
		name := Filename(prefix, i, format)
		if _, err := os.Stat(filepath.Join(outputDir, name)); err == nil {
			existing = append(existing, name)
		}
	}
	return existing
}
