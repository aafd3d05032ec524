// Package config loads keyboard settings from a TOML file. Every field in the file is
// optional and overrides the matching default.
//
//	[keyboard]
//	start = "C3"
//	end = "C6"
//	width = 960.0
//
//	[sizing]
//	gutter_ratio = 0.03
//
//	[sizing.accidental]
//	width_ratio = 0.6
//
//	[sizing.offsets]
//	"C#" = 0.6
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rapidmidiex/rmxpiano/layout"
	"github.com/rapidmidiex/rmxpiano/rmxerr"
	"github.com/rapidmidiex/rmxpiano/vpiano"
)

const appName = "rmxpiano"

type (
	Config struct {
		Range layout.Range
		// Fixed width in pixels, 0 for a responsive keyboard.
		Width  float64
		Sizing layout.Config
		// Draw the keyboard without labels and ignore playing keys.
		Disabled bool
	}

	file struct {
		Keyboard keyboardSection `toml:"keyboard"`
		Sizing   sizingSection   `toml:"sizing"`
	}

	keyboardSection struct {
		Start *string  `toml:"start"`
		End   *string  `toml:"end"`
		Width    *float64 `toml:"width"`
		Disabled *bool    `toml:"disabled"`
	}

	sizingSection struct {
		KeyWidthToHeightRatio *float64           `toml:"key_width_to_height_ratio"`
		GutterRatio           *float64           `toml:"gutter_ratio"`
		Natural               keySection         `toml:"natural"`
		Accidental            keySection         `toml:"accidental"`
		Offsets               map[string]float64 `toml:"offsets"`
	}

	keySection struct {
		WidthRatio         *float64 `toml:"width_ratio"`
		HeightRatio        *float64 `toml:"height_ratio"`
		HeightPressedRatio *float64 `toml:"height_pressed_ratio"`
	}
)

// Default is one octave from middle C with the default sizing.
func Default() Config {
	return Config{
		Range:  layout.Range{Start: 60, End: 72},
		Sizing: layout.DefaultConfig(),
	}
}

// Dir returns the config directory, honouring XDG_CONFIG_HOME.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the full path to config.toml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads path over the defaults. An empty path means the default location, where
// a missing file is not an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, rmxerr.Wrap(rmxerr.InvalidConfig, err, "read %s", path)
	}
	return Parse(string(data))
}

// Parse decodes a TOML document over the defaults.
func Parse(doc string) (Config, error) {
	var f file
	meta, err := toml.Decode(doc, &f)
	if err != nil {
		return Config{}, rmxerr.Wrap(rmxerr.InvalidConfig, err, "decode config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, rmxerr.New(rmxerr.InvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}

	cfg := Default()
	if err := f.Keyboard.apply(&cfg); err != nil {
		return Config{}, err
	}
	if err := f.Sizing.apply(&cfg.Sizing); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s keyboardSection) apply(cfg *Config) error {
	if s.Start != nil {
		n, err := vpiano.ParseNote(*s.Start)
		if err != nil {
			return err
		}
		cfg.Range.Start = n
	}
	if s.End != nil {
		n, err := vpiano.ParseNote(*s.End)
		if err != nil {
			return err
		}
		cfg.Range.End = n
	}
	setFloat(&cfg.Width, s.Width)
	if s.Disabled != nil {
		cfg.Disabled = *s.Disabled
	}
	if err := layout.ValidateWidth(cfg.Width); err != nil {
		return err
	}
	return cfg.Range.Validate()
}

func (s sizingSection) apply(cfg *layout.Config) error {
	setFloat(&cfg.KeyWidthToHeightRatio, s.KeyWidthToHeightRatio)
	setFloat(&cfg.GutterRatio, s.GutterRatio)
	s.Natural.apply(&cfg.Natural)
	s.Accidental.apply(&cfg.Accidental)

	for symbol, offset := range s.Offsets {
		name, err := vpiano.Normalize(symbol)
		if err != nil {
			return err
		}
		cfg.NoteOffsets[name] = offset
	}
	return cfg.Validate()
}

func (s keySection) apply(kc *layout.KeyConfig) {
	setFloat(&kc.WidthRatio, s.WidthRatio)
	setFloat(&kc.HeightRatio, s.HeightRatio)
	setFloat(&kc.HeightPressedRatio, s.HeightPressedRatio)
}

func setFloat(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}
