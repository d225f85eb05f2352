package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/HavilandTuff/guillotine-plus/internal/application"
	"github.com/HavilandTuff/guillotine-plus/internal/config"
	"github.com/HavilandTuff/guillotine-plus/internal/logging"
)

func main() {
	kingpinApp := kingpin.New("guillotine-plus", "Slices a raster image into rectangular tiles by a fixed grid or by guide positions")
	imagePath := kingpinApp.Arg("image", "Path to the source image (png, jpg, gif, webp, tiff, bmp)").Required().String()
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	method := kingpinApp.Flag("method", "Partitioning method: grid or guides").String()
	tileWidth := kingpinApp.Flag("tile-width", "Tile width in pixels (grid method)").Default("-1").Int()
	tileHeight := kingpinApp.Flag("tile-height", "Tile height in pixels (grid method)").Default("-1").Int()
	dividerWidth := kingpinApp.Flag("divider", "Discardable divider width between tiles in pixels").Default("-1").Int()
	verticalGuides := kingpinApp.Flag("guides-vertical", "Comma-separated vertical guide x-positions (guides method)").String()
	horizontalGuides := kingpinApp.Flag("guides-horizontal", "Comma-separated horizontal guide y-positions (guides method)").String()
	minTileSize := kingpinApp.Flag("min-size", "Minimum tile width/height kept by the guides method").Default("-1").Int()
	preset := kingpinApp.Flag("preset", "Named tile geometry preset overriding tile width/height/divider").String()
	outputDir := kingpinApp.Flag("output-dir", "Directory the tiles are written to").String()
	outputPrefix := kingpinApp.Flag("prefix", "Filename prefix for exported tiles").String()
	outputFormat := kingpinApp.Flag("format", "Export format: png, jpg, or tiff").String()
	mode := kingpinApp.Flag("mode", "Run mode: slice exports tiles, preview renders the cut lines").String()
	force := kingpinApp.Flag("force", "Overwrite existing tile files").Bool()
	lineColor := kingpinApp.Flag("line-color", "Preview cut-line color as a hex string").String()
	lineOpacity := kingpinApp.Flag("line-opacity", "Preview overlay opacity between 0 and 1").Default("-1").Float64()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		ImagePath:  *imagePath,
	}

	if *method != "" {
		overrides.Method = method
	}
	if *tileWidth >= 0 {
		overrides.TileWidth = tileWidth
	}
	if *tileHeight >= 0 {
		overrides.TileHeight = tileHeight
	}
	if *dividerWidth >= 0 {
		overrides.DividerWidth = dividerWidth
	}
	if *verticalGuides != "" {
		overrides.VerticalGuides = verticalGuides
	}
	if *horizontalGuides != "" {
		overrides.HorizontalGuides = horizontalGuides
	}
	if *minTileSize >= 0 {
		overrides.MinTileSize = minTileSize
	}
	if *preset != "" {
		overrides.Preset = preset
	}
	if *outputDir != "" {
		overrides.OutputDir = outputDir
	}
	if *outputPrefix != "" {
		overrides.OutputPrefix = outputPrefix
	}
	if *outputFormat != "" {
		overrides.OutputFormat = outputFormat
	}
	if *mode != "" {
		overrides.Mode = mode
	}
	if *force {
		overrides.Force = force
	}
	if *lineColor != "" {
		overrides.PreviewLineColor = lineColor
	}
	if *lineOpacity >= 0 {
		overrides.PreviewOpacity = lineOpacity
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Run(); err != nil {
		if errors.Is(err, application.ErrExistingFiles) {
			logger.Fatal("refusing to overwrite existing files", zap.Error(err))
		}
		logger.Fatal("slicing failed", zap.Error(err))
	}
}
