// Package config loads reader configuration from YAML and validates it
// against an embedded CUE schema.
//
// Precedence, lowest first: Defaults(), the YAML file, then whatever the
// caller applies on top (persisted settings, command-line flags).
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Rate bounds applied to every user-facing rate change.
const (
	MinRate     = 100.0
	MaxRate     = 1000.0
	DefaultRate = 300.0
	RateStep    = 25.0
)

// Settings are the reader's display options.
type Settings struct {
	Rate           float64 `yaml:"rate" json:"rate"`
	FontSize       int     `yaml:"font_size" json:"font_size"`
	Highlight      bool    `yaml:"highlight" json:"highlight"`
	FixationMarker bool    `yaml:"fixation_marker" json:"fixation_marker"`
}

// Config is the full configuration file.
type Config struct {
	Settings Settings `yaml:"settings" json:"settings"`
	Database string   `yaml:"database,omitempty" json:"database,omitempty"`
	LogFile  string   `yaml:"log_file,omitempty" json:"log_file,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Settings: DefaultSettings(),
		Database: DefaultDatabasePath(),
	}
}

// DefaultSettings returns the built-in display options.
func DefaultSettings() Settings {
	return Settings{
		Rate:           DefaultRate,
		FontSize:       48,
		Highlight:      true,
		FixationMarker: true,
	}
}

// DefaultDatabasePath returns ~/.rsvp/rsvp.db, or rsvp.db in the working
// directory if the home directory is unknown.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rsvp.db"
	}
	return filepath.Join(home, ".rsvp", "rsvp.db")
}

// ValidationError lists every schema violation found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

// Load reads path over the defaults and validates the result.
// A missing file is not an error; an empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded schema.
func Validate(cfg Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	unified := def.Unify(ctx.Encode(cfg))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var problems []string
		for _, e := range cueerrors.Errors(err) {
			problems = append(problems, e.Error())
		}
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ClampRate limits wpm to [MinRate, MaxRate]. NaN becomes DefaultRate.
func ClampRate(wpm float64) float64 {
	if math.IsNaN(wpm) {
		return DefaultRate
	}
	return math.Min(MaxRate, math.Max(MinRate, wpm))
}
