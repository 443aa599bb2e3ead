// Package config loads swatch's layered configuration: built-in defaults,
// then a YAML file, then SWATCH_* environment variables. Command-line flags
// are applied last by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/swatch/internal/colour"
)

const (
	// DefaultPath is where the config file is looked for when neither a
	// path nor $SWATCH_CONFIG is given.
	DefaultPath = "~/.config/swatch/config.yaml"

	// EnvConfig names the config file.
	EnvConfig = "SWATCH_CONFIG"

	// FormatText and FormatJSON are the output formats.
	FormatText = "text"
	FormatJSON = "json"

	// DefaultSamplerTimeout bounds a single plugin sample.
	DefaultSamplerTimeout = 30 * time.Second
)

// Environment variables applied over the file.
const (
	EnvFormat         = "SWATCH_FORMAT"
	EnvNoPreview      = "SWATCH_NO_PREVIEW"
	EnvScaleMaxL      = "SWATCH_SCALE_MAX_L"
	EnvScaleMinL      = "SWATCH_SCALE_MIN_L"
	EnvSamplerTimeout = "SWATCH_SAMPLER_TIMEOUT"
)

// Config is the effective configuration.
type Config struct {
	// Format is the output format, "text" or "json".
	Format string `yaml:"format"`

	// NoPreview disables ANSI colour swatches in text output.
	NoPreview bool `yaml:"no_preview"`

	Scale   colour.ScaleConfig `yaml:"scale"`
	Palette PaletteConfig      `yaml:"palette"`
	Sampler SamplerConfig      `yaml:"sampler"`

	// Source is the file the configuration was read from, if any.
	Source string `yaml:"-"`
}

// PaletteConfig holds defaults for `swatch palette`.
type PaletteConfig struct {
	// Seed makes palettes reproducible without --seed.
	Seed *uint64 `yaml:"seed,omitempty"`

	// Seeds fixes category seed colours, keyed by category name.
	Seeds map[string]string `yaml:"seeds,omitempty"`

	Custom []colour.CustomCategory `yaml:"custom,omitempty"`
}

// SamplerConfig holds defaults for `swatch sample`.
type SamplerConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	Clusters int           `yaml:"clusters"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format: FormatText,
		Scale:  colour.DefaultScaleConfig(),
		Sampler: SamplerConfig{
			Timeout:  DefaultSamplerTimeout,
			Clusters: 5,
		},
	}
}

// Validate checks the configuration for values no command could use.
func (c *Config) Validate() error {
	if !slices.Contains([]string{FormatText, FormatJSON}, c.Format) {
		return fmt.Errorf("invalid format %q (valid: text, json)", c.Format)
	}
	if err := c.Scale.Validate(); err != nil {
		return fmt.Errorf("invalid scale: %w", err)
	}
	if c.Sampler.Timeout <= 0 {
		return fmt.Errorf("sampler timeout must be positive, got %s", c.Sampler.Timeout)
	}
	if c.Sampler.Clusters < 1 {
		return fmt.Errorf("sampler clusters must be at least 1, got %d", c.Sampler.Clusters)
	}
	for name, seed := range c.Palette.Seeds {
		if !colour.Category(name).IsBuiltin() {
			return fmt.Errorf("unknown palette category %q", name)
		}
		if _, err := colour.NormalizeHex(seed); err != nil {
			return fmt.Errorf("palette seed for %s: %w", name, err)
		}
	}
	for _, custom := range c.Palette.Custom {
		if err := custom.Validate(); err != nil {
			return fmt.Errorf("palette.custom: %w", err)
		}
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Builder provides a fluent interface for loading a Config.
type Builder struct {
	path   string
	useEnv bool
}

// NewBuilder creates a builder that yields the defaults.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithFile reads path over the defaults. An empty path falls back to
// $SWATCH_CONFIG and then DefaultPath; only an explicitly named file
// must exist.
func (b *Builder) WithFile(path string) *Builder {
	b.path = path
	return b
}

// WithEnvConfig applies SWATCH_* environment variables over the file.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// Build loads and validates the configuration.
func (b *Builder) Build() (*Config, error) {
	cfg := Default()

	if path, explicit := b.resolvePath(); path != "" {
		if err := cfg.load(path, explicit); err != nil {
			return nil, err
		}
	}

	if b.useEnv {
		if err := cfg.applyEnv(); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolvePath picks the config file and whether it must exist.
func (b *Builder) resolvePath() (string, bool) {
	path, explicit := b.path, b.path != ""
	if !explicit {
		if env := os.Getenv(EnvConfig); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath
		}
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		// No home directory; a relative-to-home default cannot exist.
		if !explicit {
			return "", false
		}
		return path, explicit
	}
	return expanded, explicit
}

func (c *Config) load(path string, explicit bool) error {
	data, err := os.ReadFile(path) // #nosec G304 -- user-specified config path, intended to be read
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	c.Source = path

	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvNoPreview); v != "" {
		noPreview, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvNoPreview, err)
		}
		c.NoPreview = noPreview
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{EnvScaleMaxL, &c.Scale.MaxLightness},
		{EnvScaleMinL, &c.Scale.MinLightness},
	} {
		v := os.Getenv(f.name)
		if v == "" {
			continue
		}
		l, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.dst = l
	}

	if v := os.Getenv(EnvSamplerTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSamplerTimeout, err)
		}
		c.Sampler.Timeout = d
	}

	return nil
}

// ComposeSeeds converts the configured category seeds for the composer.
// Validate has already checked every entry.
func (p PaletteConfig) ComposeSeeds() map[colour.Category]colour.Hex {
	if len(p.Seeds) == 0 {
		return nil
	}
	out := make(map[colour.Category]colour.Hex, len(p.Seeds))
	for name, seed := range p.Seeds {
		if h, err := colour.NormalizeHex(seed); err == nil {
			out[colour.Category(name)] = h
		}
	}
	return out
}
