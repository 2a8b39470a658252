// Package config loads brushwork settings from TOML files.
//
// A file looks like:
//
//	[brush]
//	color = "#1e3a8a"
//	lock_alpha = false
//
//	[brush.settings]
//	radius_logarithmic = 2.5
//	hardness = 0.6
//
//	[undo]
//	description = "Paint"
//	limit = 50
//
//	[postprocess]
//	enabled = true
//	delay_msec = 100
//
//	[log]
//	level = "info"
//
// Missing keys keep their Default values; unknown keys are an error.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/postprocess"
	"github.com/gogpu/brushwork/surface"
)

var (
	// ErrUnknownSetting is returned for a brush setting name that does not
	// exist.
	ErrUnknownSetting = errors.New("config: unknown brush setting")

	// ErrInvalid is returned for a value outside its allowed range.
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the complete file configuration.
type Config struct {
	Brush       Brush       `toml:"brush"`
	Undo        Undo        `toml:"undo"`
	PostProcess PostProcess `toml:"postprocess"`
	Log         Log         `toml:"log"`
}

// Brush configures the standard brush and the stroke defaults.
type Brush struct {
	// Color is the foreground paint color as "#rrggbb".
	Color string `toml:"color"`

	LockAlpha bool `toml:"lock_alpha"`
	Eraser    bool `toml:"eraser"`

	// Settings maps setting names, as returned by brush.Setting.String,
	// to base values.
	Settings map[string]float32 `toml:"settings"`
}

// Undo configures the undo log.
type Undo struct {
	// Description names each paint step.
	Description string `toml:"description"`

	// Limit is the number of steps kept; 0 keeps all.
	Limit int `toml:"limit"`
}

// PostProcess configures stroke refinement.
type PostProcess struct {
	Enabled   bool `toml:"enabled"`
	DelayMSec int  `toml:"delay_msec"`
}

// Log configures the logger.
type Log struct {
	// Level is a slog level name: debug, info, warn or error.
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Brush: Brush{Color: "#000000"},
		Undo:  Undo{Description: surface.DefaultDescription},
		PostProcess: PostProcess{
			Enabled:   true,
			DelayMSec: int(postprocess.DefaultDelay / time.Millisecond),
		},
		Log: Log{Level: "warn"},
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	c, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Read decodes and validates a configuration over Default.
func Read(r io.Reader) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("config: unknown keys:\n%s", strict.String())
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Write encodes c as TOML.
func Write(w io.Writer, c *Config) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

// Validate checks every value.
func (c *Config) Validate() error {
	if _, err := c.Brush.Foreground(); err != nil {
		return err
	}
	for name, v := range c.Brush.Settings {
		s, ok := brush.SettingByName(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
		}
		if info := s.Info(); v < info.Min || v > info.Max {
			return fmt.Errorf("%w: %s = %g, want [%g, %g]", ErrInvalid, name, v, info.Min, info.Max)
		}
	}
	if c.Undo.Limit < 0 {
		return fmt.Errorf("%w: undo.limit = %d", ErrInvalid, c.Undo.Limit)
	}
	if c.PostProcess.DelayMSec < 0 {
		return fmt.Errorf("%w: postprocess.delay_msec = %d", ErrInvalid, c.PostProcess.DelayMSec)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Foreground parses Color. An empty color is black.
func (b Brush) Foreground() (color.NRGBA, error) {
	if b.Color == "" {
		return color.NRGBA{A: 255}, nil
	}
	s := strings.TrimPrefix(b.Color, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: brush.color = %q", ErrInvalid, b.Color)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Apply sets the configured base values on m.
func (b Brush) Apply(m brush.Model) error {
	for name, v := range b.Settings {
		s, ok := brush.SettingByName(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSetting, name)
		}
		m.SetBaseValue(s, v)
	}
	return nil
}

// Delay returns DelayMSec as a duration.
func (p PostProcess) Delay() time.Duration {
	return time.Duration(p.DelayMSec) * time.Millisecond
}

// SlogLevel parses Level. An empty level is slog.LevelInfo.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level = %q", ErrInvalid, l.Level)
	}
	return lvl, nil
}
