// Package config loads board settings from a TOML file.
package config

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"SketchBoard/internal/export"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tool"
)

// Config mirrors the TOML file. Colors are hex strings.
type Config struct {
	Canvas CanvasConfig `toml:"canvas"`
	Style  StyleConfig  `toml:"style"`
	Tool   ToolConfig   `toml:"tool"`
	Export ExportConfig `toml:"export"`
	Log    LogConfig    `toml:"log"`
}

type CanvasConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

type StyleConfig struct {
	StrokeColor string   `toml:"stroke_color"`
	StrokeWidth int      `toml:"stroke_width"`
	FillColor   string   `toml:"fill_color"`
	FillAlpha   float64  `toml:"fill_alpha"`
	Palette     []string `toml:"palette"`
}

type ToolConfig struct {
	Default    string `toml:"default"`
	LiveRedraw bool   `toml:"live_redraw"`
}

type ExportConfig struct {
	Format      string `toml:"format"`
	Trim        bool   `toml:"trim"`
	TrimPadding int    `toml:"trim_padding"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultPalette is used when the file names no palette.
var DefaultPalette = []string{"#000000", "#FF0000", "#00FF00", "#0000FF", "#FFFF00"}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{Width: 800, Height: 600, Background: "#FFFFFF"},
		Style:  StyleConfig{StrokeColor: "#FF0000", StrokeWidth: 5},
		Tool:   ToolConfig{Default: "pen", LiveRedraw: true},
		Export: ExportConfig{Format: "png", TrimPadding: 2},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

// Parse decodes TOML data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	return parse("<data>", data)
}

func parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ParseError{Path: source, Err: err}
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Settings is a validated, typed view of a Config.
type Settings struct {
	Width, Height int
	Background    color.RGBA
	Style         state.Style
	Palette       []color.RGBA
	Tool          state.Tool
	LiveRedraw    bool
	ExportFormat  export.Format
	Trim          bool
	TrimPadding   int
	LogLevel      slog.Level
}

// Resolve validates cfg and converts it into Settings.
func (cfg *Config) Resolve() (*Settings, error) {
	s := &Settings{
		Width:       cfg.Canvas.Width,
		Height:      cfg.Canvas.Height,
		LiveRedraw:  cfg.Tool.LiveRedraw,
		Trim:        cfg.Export.Trim,
		TrimPadding: cfg.Export.TrimPadding,
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, &ValidationError{Key: "canvas", Message: fmt.Sprintf("size %dx%d must be positive", s.Width, s.Height)}
	}
	if s.TrimPadding < 0 {
		return nil, &ValidationError{Key: "export.trim_padding", Message: "must not be negative"}
	}
	if cfg.Style.StrokeWidth < 1 {
		return nil, &ValidationError{Key: "style.stroke_width", Message: "must be at least 1"}
	}

	var err error
	if s.Background, err = ParseColor(cfg.Canvas.Background); err != nil {
		return nil, &ValidationError{Key: "canvas.background", Message: err.Error()}
	}
	if s.Style.StrokeColor, err = ParseColor(cfg.Style.StrokeColor); err != nil {
		return nil, &ValidationError{Key: "style.stroke_color", Message: err.Error()}
	}
	s.Style.StrokeWidth = cfg.Style.StrokeWidth
	if cfg.Style.FillColor != "" {
		if cfg.Style.FillAlpha < 0 || cfg.Style.FillAlpha > 1 {
			return nil, &ValidationError{Key: "style.fill_alpha", Message: "must be within [0, 1]"}
		}
		fill, err := ParseColor(cfg.Style.FillColor)
		if err != nil {
			return nil, &ValidationError{Key: "style.fill_color", Message: err.Error()}
		}
		s.Style.FillColor = WithAlpha(fill, cfg.Style.FillAlpha)
	}
	palette := cfg.Style.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	for i, hex := range palette {
		c, err := ParseColor(hex)
		if err != nil {
			return nil, &ValidationError{Key: fmt.Sprintf("style.palette[%d]", i), Message: err.Error()}
		}
		s.Palette = append(s.Palette, c)
	}

	if s.Tool, err = tool.Parse(cfg.Tool.Default); err != nil {
		return nil, &ValidationError{Key: "tool.default", Message: err.Error()}
	}
	if s.ExportFormat, err = export.ParseFormat(cfg.Export.Format); err != nil {
		return nil, &ValidationError{Key: "export.format", Message: err.Error()}
	}
	if err := s.LogLevel.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, &ValidationError{Key: "log.level", Message: err.Error()}
	}
	return s, nil
}
