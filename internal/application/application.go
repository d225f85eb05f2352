package application

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/HavilandTuff/guillotine-plus/internal/calculator"
	"github.com/HavilandTuff/guillotine-plus/internal/config"
	"github.com/HavilandTuff/guillotine-plus/internal/imageio"
	"github.com/HavilandTuff/guillotine-plus/internal/presets"
	"github.com/HavilandTuff/guillotine-plus/internal/preview"
	"github.com/HavilandTuff/guillotine-plus/internal/slicer"
)

// ErrExistingFiles is returned when target tile files already exist and the
// run was not forced.
var ErrExistingFiles = errors.New("target files already exist")

// App encapsulates the application dependencies and the run pipeline.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	calc    calculator.Calculator
	presets presets.Store
	slicer  *slicer.Slicer
}

// New initializes the application with all dependencies from the provided
// configuration. Presets declared in the configuration are registered on top
// of the built-in set, and a preset selected by name resolves into the tile
// geometry before any slicing parameter is used.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := presets.NewMemoryStore()
	for _, preset := range cfg.Presets {
		if err := store.Put(preset); err != nil {
			return nil, fmt.Errorf("register preset %q: %w", preset.Name, err)
		}
	}

	if cfg.Preset != "" {
		preset, err := store.Get(cfg.Preset)
		if err != nil {
			return nil, fmt.Errorf("resolve preset %q: %w", cfg.Preset, err)
		}
		cfg.TileWidth = preset.TileWidth
		cfg.TileHeight = preset.TileHeight
		cfg.DividerWidth = preset.DividerWidth
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		calc:    calculator.New(),
		presets: store,
		slicer: slicer.New(logger,
			slicer.WithProgressRate(cfg.ProgressLogRPS, cfg.ProgressLogBurst),
		),
	}, nil
}

// Run executes one slicing pass: load the image, compute tile regions for the
// configured method, then either render the cut-line preview or export the
// tiles. An empty region list is not an error; it logs and returns nil.
func (a *App) Run() error {
	img, info, err := imageio.Load(a.cfg.ImagePath)
	if err != nil {
		return err
	}
	a.logger.Info("image loaded",
		zap.String("path", a.cfg.ImagePath),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.String("format", info.Format),
	)

	tiles, meta, vertical, horizontal, err := a.computeRegions(info.Width, info.Height)
	if err != nil {
		return err
	}

	if meta.TotalTiles == 0 {
		a.logger.Info("no tiles fit the requested layout, nothing to do",
			zap.String("method", string(meta.Method)),
		)
		return nil
	}

	a.logger.Info("tile regions computed",
		zap.String("method", string(meta.Method)),
		zap.Int("rows", meta.Rows),
		zap.Int("cols", meta.Cols),
		zap.Int("total_tiles", meta.TotalTiles),
	)

	if a.cfg.Mode == config.ModePreview {
		return a.renderPreview(img, vertical, horizontal)
	}
	return a.exportTiles(img, tiles)
}

// computeRegions runs the configured partitioning strategy and derives the
// cut-line coordinates used by the preview renderer. Only the grid method is
// validated; guide coordinates are tolerated as-is by the partitioner.
func (a *App) computeRegions(imageWidth, imageHeight int) ([]calculator.Rect, calculator.Metadata, []int, []int, error) {
	if a.cfg.Method == calculator.MethodGuides {
		tiles, meta := a.calc.ComputeFromGuides(imageWidth, imageHeight,
			a.cfg.VerticalGuides, a.cfg.HorizontalGuides, a.cfg.MinTileSize)
		vertical := inBoundsGuides(a.cfg.VerticalGuides, imageWidth)
		horizontal := inBoundsGuides(a.cfg.HorizontalGuides, imageHeight)
		return tiles, meta, vertical, horizontal, nil
	}

	if err := a.calc.Validate(imageWidth, imageHeight,
		a.cfg.TileWidth, a.cfg.TileHeight, a.cfg.DividerWidth); err != nil {
		return nil, calculator.Metadata{}, nil, nil, fmt.Errorf("invalid slicing parameters: %w", err)
	}

	tiles, meta := a.calc.ComputeGrid(imageWidth, imageHeight,
		a.cfg.TileWidth, a.cfg.TileHeight, a.cfg.DividerWidth)
	vertical, horizontal := a.calc.ComputeCutLines(imageWidth, imageHeight,
		a.cfg.TileWidth, a.cfg.TileHeight, a.cfg.DividerWidth)
	return tiles, meta, vertical, horizontal, nil
}

// renderPreview writes the cut-line overlay next to the would-be tiles as
// {prefix}_preview.png.
func (a *App) renderPreview(img image.Image, vertical, horizontal []int) error {
	overlay := preview.Render(img, vertical, horizontal, preview.Options{
		LineColor: a.cfg.PreviewLineColor,
		Opacity:   a.cfg.PreviewOpacity,
	})

	path := filepath.Join(a.cfg.OutputDir, a.cfg.OutputPrefix+"_preview.png")
	if err := imaging.Save(overlay, path); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}

	a.logger.Info("preview rendered",
		zap.String("path", path),
		zap.Int("vertical_lines", len(vertical)),
		zap.Int("horizontal_lines", len(horizontal)),
	)
	return nil
}

// exportTiles refuses to clobber existing tile files unless the run is
// forced, then hands the rectangles to the slicer in sequence order.
func (a *App) exportTiles(img image.Image, tiles []calculator.Rect) error {
	if !a.cfg.Force {
		existing := slicer.CheckForOverwrites(a.cfg.OutputDir, a.cfg.OutputPrefix, len(tiles), a.cfg.OutputFormat)
		if len(existing) > 0 {
			return fmt.Errorf("%w in %s: %s (use --force to overwrite)",
				ErrExistingFiles, a.cfg.OutputDir, strings.Join(existing, ", "))
		}
	}

	saved, err := a.slicer.Slice(img, tiles, a.cfg.OutputDir, a.cfg.OutputPrefix, a.cfg.OutputFormat)
	if err != nil {
		return err
	}
	if len(saved) < len(tiles) {
		a.logger.Warn("some tiles failed to export",
			zap.Int("written", len(saved)),
			zap.Int("requested", len(tiles)),
		)
	}
	return nil
}

func inBoundsGuides(guides []int, extent int) []int {
	var lines []int
	for _, g := range guides {
		if g > 0 && g < extent {
			lines = append(lines, g)
		}
	}
	return lines
}
