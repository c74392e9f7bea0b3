// Package config loads the optional devserve configuration file.
//
// Running without a config file is the normal case: Default returns the
// built-in settings (current directory, all interfaces, the fixed candidate
// port list). A config file only overrides the keys it names. Three formats
// are accepted, chosen by file extension:
//
//   - .yaml / .yml via gopkg.in/yaml.v3
//   - .json / .jsonc via github.com/tidwall/jsonc + encoding/json, so
//     comments and trailing commas are allowed
//   - .toml via github.com/BurntSushi/toml
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/devserve/internal/model"
	"github.com/shinji-kodama/devserve/internal/port"
)

// Config holds every setting of the server. Field tags are shared by all
// three file formats.
type Config struct {
	// Root is the document root. Defaults to the current directory.
	Root string `yaml:"root" json:"root" toml:"root"`

	// Host is the bind address. Empty binds on all interfaces.
	Host string `yaml:"host" json:"host" toml:"host"`

	// Ports is the ordered candidate list tried at startup.
	Ports []int `yaml:"ports" json:"ports" toml:"ports"`

	// API enables the ISO catalogue under /api. Off by default, so a
	// plain run serves api/ from disk like any other directory.
	API bool `yaml:"api" json:"api" toml:"api"`

	// ShutdownGrace is how long in-flight requests may run after an
	// interrupt. Zero closes connections immediately.
	ShutdownGrace Duration `yaml:"shutdown_grace" json:"shutdown_grace" toml:"shutdown_grace"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" json:"verbose" toml:"verbose"`
}

// Duration is a time.Duration that reads and writes its value as a Go
// duration string ("5s", "250ms") in every supported format.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Root:  ".",
		Host:  "",
		Ports: append([]int(nil), model.DefaultCandidatePorts...),
	}
}

// Load reads the config file at path on top of Default.
//
// Returns a CLIError with ExitGeneralError if the file does not exist, and
// a plain error for unreadable or malformed files and unknown extensions.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// decode dispatches on the file extension. Only keys present in data
// overwrite cfg.
func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil

	case ".json", ".jsonc":
		// Strip comments and trailing commas before handing the bytes to
		// encoding/json.
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)

	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown key %q", undecoded[0].String())
		}
		return nil

	default:
		return fmt.Errorf("unsupported config format %q (valid: .yaml, .yml, .json, .jsonc, .toml)", ext)
	}
}

// Validate checks that the document root is an existing directory, the
// candidate list is usable, and the grace period is not negative.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("document root %q: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("document root %q is not a directory", c.Root)
	}

	if err := port.ValidateCandidates(c.Ports); err != nil {
		return err
	}

	if c.ShutdownGrace < 0 {
		return fmt.Errorf("shutdown_grace must not be negative (got %s)", c.ShutdownGrace.Std())
	}
	return nil
}
