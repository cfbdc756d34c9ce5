// Package config loads and saves ~/.shadowops/config.toml and applies
// SHADOWOPS_* environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	EnvPrefix = "SHADOWOPS_"
	EnvConfig = EnvPrefix + "CONFIG"

	ModeAuto   = "auto"
	ModeStyled = "styled"
	ModePlain  = "plain"

	defaultChordTimeoutMS = 250
	maxChordTimeoutMS     = 5000
)

var userHomeDir = os.UserHomeDir

// Config is the on-disk configuration.
type Config struct {
	Reader  ReaderConfig  `toml:"reader"`
	Storage StorageConfig `toml:"storage"`
}

// ReaderConfig holds the e-reader and pager settings.
type ReaderConfig struct {
	Mode           string `toml:"mode"`
	Style          string `toml:"style"`
	SearchWrap     bool   `toml:"search_wrap"`
	ChordTimeoutMS int    `toml:"chord_timeout_ms"`
}

// StorageConfig says where generated files and history live.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Reader: ReaderConfig{
			Mode:           ModeAuto,
			Style:          "auto",
			ChordTimeoutMS: defaultChordTimeoutMS,
		},
		Storage: StorageConfig{
			Dir: "~/.shadowops/cli",
		},
	}
}

// DefaultPath is ~/.shadowops/config.toml.
func DefaultPath() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".shadowops", "config.toml"), nil
}

// ResolvePath picks the config file: the explicit path if set, then
// SHADOWOPS_CONFIG, then DefaultPath.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return expandHome(explicit)
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return expandHome(env)
	}
	return DefaultPath()
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return Default(), perr
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path atomically, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}

// WithEnv returns a copy of c with SHADOWOPS_READER_MODE, _READER_STYLE,
// _READER_SEARCH_WRAP and _STORAGE_DIR applied. lookup is normally
// os.LookupEnv. The copy is for running; Save the original so environment
// values never leak into the file.
func (c Config) WithEnv(lookup func(string) (string, bool)) (Config, error) {
	out := c
	if v, ok := lookup(EnvPrefix + "READER_MODE"); ok && v != "" {
		out.Reader.Mode = v
	}
	if v, ok := lookup(EnvPrefix + "READER_STYLE"); ok && v != "" {
		out.Reader.Style = v
	}
	if v, ok := lookup(EnvPrefix + "READER_SEARCH_WRAP"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%sREADER_SEARCH_WRAP=%q: %w", EnvPrefix, v, ErrInvalidValue)
		}
		out.Reader.SearchWrap = b
	}
	if v, ok := lookup(EnvPrefix + "STORAGE_DIR"); ok && v != "" {
		out.Storage.Dir = v
	}
	out.normalize()
	if err := out.Validate(); err != nil {
		return c, err
	}
	return out, nil
}

// Validate checks the mode and the chord timeout.
func (c Config) Validate() error {
	if !ValidMode(c.Reader.Mode) {
		return fmt.Errorf("reader.mode %q: %w", c.Reader.Mode, ErrInvalidMode)
	}
	if c.Reader.ChordTimeoutMS < 0 || c.Reader.ChordTimeoutMS > maxChordTimeoutMS {
		return fmt.Errorf("reader.chord_timeout_ms %d: %w", c.Reader.ChordTimeoutMS, ErrInvalidValue)
	}
	return nil
}

func (c *Config) normalize() {
	c.Reader.Mode = strings.ToLower(strings.TrimSpace(c.Reader.Mode))
	if c.Reader.Mode == "" {
		c.Reader.Mode = ModeAuto
	}
	if strings.TrimSpace(c.Reader.Style) == "" {
		c.Reader.Style = "auto"
	}
	if c.Reader.ChordTimeoutMS == 0 {
		c.Reader.ChordTimeoutMS = defaultChordTimeoutMS
	}
	if strings.TrimSpace(c.Storage.Dir) == "" {
		c.Storage.Dir = Default().Storage.Dir
	}
}

// ValidMode reports whether mode is auto, styled or plain (any case).
func ValidMode(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeAuto, ModeStyled, ModePlain:
		return true
	}
	return false
}

// ChordTimeout is the gg chord window.
func (c Config) ChordTimeout() time.Duration {
	ms := c.Reader.ChordTimeoutMS
	if ms <= 0 {
		ms = defaultChordTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}

// StorageDir is the storage directory with a leading ~ expanded.
func (c Config) StorageDir() (string, error) {
	return expandHome(c.Storage.Dir)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
