package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/HavilandTuff/guillotine-plus/internal/calculator"
	"github.com/HavilandTuff/guillotine-plus/internal/presets"
	"github.com/HavilandTuff/guillotine-plus/internal/slicer"
)

// Mode selects what a run does with the computed tile regions.
type Mode string

const (
	// ModePreview renders a cut-line overlay instead of exporting tiles.
	ModePreview Mode = "preview"
	// ModeSlice exports every tile as a separate image file.
	ModeSlice Mode = "slice"
)

const (
	defaultTileWidth     = 256
	defaultTileHeight    = 256
	defaultOutputDir     = "."
	defaultOutputPrefix  = "tile"
	defaultLineColor     = "#ff0000"
	defaultOpacity       = 0.5
	defaultProgressRPS   = 5.0
	defaultProgressBurst = 10
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	ImagePath        string
	TileWidth        int
	TileHeight       int
	DividerWidth     int
	Method           calculator.Method
	VerticalGuides   []int
	HorizontalGuides []int
	MinTileSize      int
	Preset           string
	Presets          []presets.Preset
	OutputDir        string
	OutputPrefix     string
	OutputFormat     slicer.Format
	Mode             Mode
	Force            bool
	PreviewLineColor string
	PreviewOpacity   float64
	ProgressLogRPS   float64
	ProgressLogBurst int
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	TileWidth        int              `yaml:"tile_width"`
	TileHeight       int              `yaml:"tile_height"`
	DividerWidth     *int             `yaml:"divider_width"`
	Method           string           `yaml:"method"`
	VerticalGuides   []int            `yaml:"vertical_guides"`
	HorizontalGuides []int            `yaml:"horizontal_guides"`
	MinTileSize      *int             `yaml:"min_tile_size"`
	Output           yamlOutput       `yaml:"output"`
	Preview          yamlPreview      `yaml:"preview"`
	Progress         yamlProgress     `yaml:"progress"`
	Presets          []presets.Preset `yaml:"presets"`
}

// yamlOutput represents the output section in YAML.
type yamlOutput struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
	Format string `yaml:"format"`
}

// yamlPreview represents the preview section in YAML.
type yamlPreview struct {
	LineColor string   `yaml:"line_color"`
	Opacity   *float64 `yaml:"opacity"`
}

// yamlProgress represents the progress log throttle section in YAML.
type yamlProgress struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile       string
	ImagePath        string
	TileWidth        *int
	TileHeight       *int
	DividerWidth     *int
	Method           *string
	VerticalGuides   *string
	HorizontalGuides *string
	MinTileSize      *int
	Preset           *string
	OutputDir        *string
	OutputPrefix     *string
	OutputFormat     *string
	Mode             *string
	Force            *bool
	PreviewLineColor *string
	PreviewOpacity   *float64
}

// Load resolves configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, err
		}
	}

	applyEnvConfig(&cfg)

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		TileWidth:        defaultTileWidth,
		TileHeight:       defaultTileHeight,
		Method:           calculator.MethodGrid,
		OutputDir:        defaultOutputDir,
		OutputPrefix:     defaultOutputPrefix,
		OutputFormat:     slicer.FormatPNG,
		Mode:             ModeSlice,
		PreviewLineColor: defaultLineColor,
		PreviewOpacity:   defaultOpacity,
		ProgressLogRPS:   defaultProgressRPS,
		ProgressLogBurst: defaultProgressBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.TileWidth > 0 {
		cfg.TileWidth = yamlCfg.TileWidth
	}
	if yamlCfg.TileHeight > 0 {
		cfg.TileHeight = yamlCfg.TileHeight
	}
	if yamlCfg.DividerWidth != nil && *yamlCfg.DividerWidth >= 0 {
		cfg.DividerWidth = *yamlCfg.DividerWidth
	}

	if yamlCfg.Method != "" {
		method, err := parseMethod(yamlCfg.Method)
		if err != nil {
			return err
		}
		cfg.Method = method
	}

	if len(yamlCfg.VerticalGuides) > 0 {
		cfg.VerticalGuides = sortedCopy(yamlCfg.VerticalGuides)
	}
	if len(yamlCfg.HorizontalGuides) > 0 {
		cfg.HorizontalGuides = sortedCopy(yamlCfg.HorizontalGuides)
	}

	if yamlCfg.MinTileSize != nil && *yamlCfg.MinTileSize >= 0 {
		cfg.MinTileSize = *yamlCfg.MinTileSize
	}

	if yamlCfg.Output.Dir != "" {
		cfg.OutputDir = yamlCfg.Output.Dir
	}
	if yamlCfg.Output.Prefix != "" {
		cfg.OutputPrefix = yamlCfg.Output.Prefix
	}
	if yamlCfg.Output.Format != "" {
		format, err := slicer.ParseFormat(yamlCfg.Output.Format)
		if err != nil {
			return err
		}
		cfg.OutputFormat = format
	}

	if yamlCfg.Preview.LineColor != "" {
		cfg.PreviewLineColor = yamlCfg.Preview.LineColor
	}
	if yamlCfg.Preview.Opacity != nil {
		cfg.PreviewOpacity = *yamlCfg.Preview.Opacity
	}

	if yamlCfg.Progress.RPS != nil && *yamlCfg.Progress.RPS >= 0 {
		cfg.ProgressLogRPS = *yamlCfg.Progress.RPS
	}
	if yamlCfg.Progress.Burst != nil && *yamlCfg.Progress.Burst >= 0 {
		cfg.ProgressLogBurst = *yamlCfg.Progress.Burst
	}

	if len(yamlCfg.Presets) > 0 {
		cfg.Presets = yamlCfg.Presets
	}

	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if dir := strings.TrimSpace(os.Getenv("GUILLOTINE_OUTPUT_DIR")); dir != "" {
		cfg.OutputDir = dir
	}

	if prefix := strings.TrimSpace(os.Getenv("GUILLOTINE_OUTPUT_PREFIX")); prefix != "" {
		cfg.OutputPrefix = prefix
	}

	if rawFormat := strings.TrimSpace(os.Getenv("GUILLOTINE_OUTPUT_FORMAT")); rawFormat != "" {
		if format, err := slicer.ParseFormat(rawFormat); err == nil {
			cfg.OutputFormat = format
		}
	}

	if rps := strings.TrimSpace(os.Getenv("GUILLOTINE_PROGRESS_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.ProgressLogRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("GUILLOTINE_PROGRESS_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.ProgressLogBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.ImagePath != "" {
		cfg.ImagePath = overrides.ImagePath
	}

	if overrides.TileWidth != nil && *overrides.TileWidth > 0 {
		cfg.TileWidth = *overrides.TileWidth
	}
	if overrides.TileHeight != nil && *overrides.TileHeight > 0 {
		cfg.TileHeight = *overrides.TileHeight
	}
	if overrides.DividerWidth != nil && *overrides.DividerWidth >= 0 {
		cfg.DividerWidth = *overrides.DividerWidth
	}

	if overrides.Method != nil && *overrides.Method != "" {
		method, err := parseMethod(*overrides.Method)
		if err != nil {
			return err
		}
		cfg.Method = method
	}

	if overrides.VerticalGuides != nil && *overrides.VerticalGuides != "" {
		guides, err := parseGuideList(*overrides.VerticalGuides)
		if err != nil {
			return fmt.Errorf("parse vertical guides: %w", err)
		}
		cfg.VerticalGuides = guides
	}
	if overrides.HorizontalGuides != nil && *overrides.HorizontalGuides != "" {
		guides, err := parseGuideList(*overrides.HorizontalGuides)
		if err != nil {
			return fmt.Errorf("parse horizontal guides: %w", err)
		}
		cfg.HorizontalGuides = guides
	}

	if overrides.MinTileSize != nil && *overrides.MinTileSize >= 0 {
		cfg.MinTileSize = *overrides.MinTileSize
	}

	if overrides.Preset != nil && *overrides.Preset != "" {
		cfg.Preset = *overrides.Preset
	}

	if overrides.OutputDir != nil && *overrides.OutputDir != "" {
		cfg.OutputDir = *overrides.OutputDir
	}
	if overrides.OutputPrefix != nil && *overrides.OutputPrefix != "" {
		cfg.OutputPrefix = *overrides.OutputPrefix
	}
	if overrides.OutputFormat != nil && *overrides.OutputFormat != "" {
		format, err := slicer.ParseFormat(*overrides.OutputFormat)
		if err != nil {
			return err
		}
		cfg.OutputFormat = format
	}

	if overrides.Mode != nil && *overrides.Mode != "" {
		mode, err := parseMode(*overrides.Mode)
		if err != nil {
			return err
		}
		cfg.Mode = mode
	}

	if overrides.Force != nil {
		cfg.Force = *overrides.Force
	}

	if overrides.PreviewLineColor != nil && *overrides.PreviewLineColor != "" {
		cfg.PreviewLineColor = *overrides.PreviewLineColor
	}
	if overrides.PreviewOpacity != nil && *overrides.PreviewOpacity >= 0 {
		cfg.PreviewOpacity = *overrides.PreviewOpacity
	}

	return nil
}

// validateConfig validates the final configuration. Geometric tile
// parameters are deliberately left alone here: the calculator's validator
// owns those rules and reports them with precise reasons.
func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.ImagePath) == "" {
		return fmt.Errorf("image path is required")
	}
	if cfg.Method != calculator.MethodGrid && cfg.Method != calculator.MethodGuides {
		return fmt.Errorf("method must be %q or %q", calculator.MethodGrid, calculator.MethodGuides)
	}
	if cfg.Mode != ModePreview && cfg.Mode != ModeSlice {
		return fmt.Errorf("mode must be %q or %q", ModePreview, ModeSlice)
	}
	if cfg.MinTileSize < 0 {
		return fmt.Errorf("min tile size must be >= 0")
	}
	if strings.TrimSpace(cfg.OutputPrefix) == "" {
		return fmt.Errorf("output prefix cannot be empty")
	}
	if cfg.PreviewOpacity < 0 || cfg.PreviewOpacity > 1 {
		return fmt.Errorf("preview opacity must be between 0 and 1")
	}
	if cfg.ProgressLogRPS < 0 {
		return fmt.Errorf("progress rps must be >= 0")
	}
	if cfg.ProgressLogBurst < 0 {
		return fmt.Errorf("progress burst must be >= 0")
	}
	return nil
}

func parseMethod(raw string) (calculator.Method, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(calculator.MethodGrid):
		return calculator.MethodGrid, nil
	case string(calculator.MethodGuides):
		return calculator.MethodGuides, nil
	default:
		return "", fmt.Errorf("unknown method %q (supported: grid, guides)", raw)
	}
}

func parseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ModePreview):
		return ModePreview, nil
	case string(ModeSlice):
		return ModeSlice, nil
	default:
		return "", fmt.Errorf("unknown mode %q (supported: preview, slice)", raw)
	}
}

// parseGuideList parses a comma-separated string of guide positions into a
// sorted slice of integers. Range checks are left to the guide partitioner,
// which tolerates out-of-range positions.
func parseGuideList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	guides := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		guides = append(guides, value)
	}
	if len(guides) == 0 {
		return nil, fmt.Errorf("no guide positions provided")
	}
	sort.Ints(guides)
	return guides, nil
}

func sortedCopy(src []int) []int {
	out := make([]int, len(src))
	copy(out, src)
	sort.Ints(out)
	return out
}
