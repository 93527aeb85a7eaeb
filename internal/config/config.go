package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultTabWidth     = 4
	DefaultScrollMargin = 2
	DefaultLogLevel     = "info"

	MaxTabWidth = 16
)

// Config holds every setting of the editor.
type Config struct {
	Editor EditorConfig `toml:"editor" yaml:"editor"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// EditorConfig holds the settings of the editing surface.
type EditorConfig struct {
	// TabWidth is the distance between tab stops in cells.
	TabWidth int `toml:"tab_width" yaml:"tab_width"`

	// SoftWrap wraps long lines instead of letting them run off screen.
	SoftWrap bool `toml:"soft_wrap" yaml:"soft_wrap"`

	// WrapWidth is the wrap column. 0 wraps at the window width.
	WrapWidth int `toml:"wrap_width" yaml:"wrap_width"`

	// ScrollMargin is the number of rows kept visible above and below
	// the primary caret.
	ScrollMargin int `toml:"scroll_margin" yaml:"scroll_margin"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`

	// File is the log destination. Empty discards log output, since the
	// terminal belongs to the editor.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabWidth:     DefaultTabWidth,
			SoftWrap:     true,
			ScrollMargin: DefaultScrollMargin,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Format is a configuration file format.
type Format int

const (
	// FormatTOML is TOML, chosen for .toml files.
	FormatTOML Format = iota
	// FormatYAML is YAML, chosen for .yaml and .yml files.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load reads the configuration file at path. A missing file yields the
// defaults; it is not an error.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Decode(bytes.NewReader(data), format, path)
}

// Decode reads a configuration in the given format from r. Settings absent
// from the input keep their defaults. Unknown settings are rejected. source
// names the input in errors.
func Decode(r io.Reader, format Format, source string) (*Config, error) {
	cfg := Default()

	var err error
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, newParseError(source, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

// Validate checks every setting and reports all failures at once. Each
// failure is a *ValidationError matching ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > MaxTabWidth {
		errs = append(errs, &ValidationError{
			Path:    "editor.tab_width",
			Message: fmt.Sprintf("must be between 1 and %d", MaxTabWidth),
			Value:   c.Editor.TabWidth,
		})
	}
	if c.Editor.WrapWidth < 0 {
		errs = append(errs, &ValidationError{
			Path:    "editor.wrap_width",
			Message: "must not be negative",
			Value:   c.Editor.WrapWidth,
		})
	}
	if c.Editor.ScrollMargin < 0 {
		errs = append(errs, &ValidationError{
			Path:    "editor.scroll_margin",
			Message: "must not be negative",
			Value:   c.Editor.ScrollMargin,
		})
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Log.Level,
		})
	}
	return errors.Join(errs...)
}

// WrapColumn returns the wrap width to use in a window of the given width.
// It returns 0 when soft wrap is off.
func (c *Config) WrapColumn(windowWidth int) int {
	switch {
	case !c.Editor.SoftWrap:
		return 0
	case c.Editor.WrapWidth > 0 && c.Editor.WrapWidth < windowWidth:
		return c.Editor.WrapWidth
	default:
		return max(windowWidth, 1)
	}
}
