// Package config loads the optional session configuration file
// (zpltool.toml) that defaults cmd/surge's flags: the printer profile
// path, print-client host/retry policy, and output preferences. It is a
// distinct artifact from internal/profile's printer capability profile,
// which stays JSON per spec.md's explicit wire-format requirement.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the conventional config file name searched for by Find.
const FileName = "zpltool.toml"

// PrintConfig defaults the send command's transport settings.
type PrintConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RetryConfig defaults the send command's retry policy.
type RetryConfig struct {
	MaxAttempts    int `toml:"max_attempts"`
	InitialDelayMS int `toml:"initial_delay_ms"`
	MaxDelayMS     int `toml:"max_delay_ms"`
}

// OutputConfig defaults diagnostic rendering for validate.
type OutputConfig struct {
	Format         string `toml:"format"`
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

// Config is the decoded contents of zpltool.toml. Every field is
// optional; a missing [section] simply leaves the corresponding flag
// default untouched.
type Config struct {
	Profile string       `toml:"profile"`
	Print   PrintConfig  `toml:"print"`
	Retry   RetryConfig  `toml:"retry"`
	Output  OutputConfig `toml:"output"`
}

// Load decodes path and validates the fields that carry an enum or
// range constraint. Unlike a project manifest, no section is required —
// zpltool.toml exists purely to supply defaults — but a field that IS
// present must carry a legal value.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("output", "color") {
		switch cfg.Output.Color {
		case "auto", "on", "off":
		default:
			return nil, fmt.Errorf("%s: [output].color must be auto, on or off, got %q", path, cfg.Output.Color)
		}
	}
	if meta.IsDefined("output", "format") {
		switch cfg.Output.Format {
		case "pretty", "json":
		default:
			return nil, fmt.Errorf("%s: [output].format must be pretty or json, got %q", path, cfg.Output.Format)
		}
	}
	if meta.IsDefined("output", "max_diagnostics") && cfg.Output.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [output].max_diagnostics must be >= 0", path)
	}
	if meta.IsDefined("retry", "max_attempts") && cfg.Retry.MaxAttempts < 1 {
		return nil, fmt.Errorf("%s: [retry].max_attempts must be >= 1", path)
	}
	if meta.IsDefined("retry", "initial_delay_ms") && cfg.Retry.InitialDelayMS < 0 {
		return nil, fmt.Errorf("%s: [retry].initial_delay_ms must be >= 0", path)
	}
	if meta.IsDefined("retry", "max_delay_ms") && cfg.Retry.MaxDelayMS < cfg.Retry.InitialDelayMS {
		return nil, fmt.Errorf("%s: [retry].max_delay_ms must be >= initial_delay_ms", path)
	}
	if meta.IsDefined("print", "port") && (cfg.Print.Port < 0 || cfg.Print.Port > 65535) {
		return nil, fmt.Errorf("%s: [print].port must be 0-65535", path)
	}
	return &cfg, nil
}

// Find walks up from dir looking for zpltool.toml, the same upward
// search a project manifest uses to locate its root file.
func Find(dir string) (path string, ok bool, err error) {
	if dir == "" {
		dir = "."
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadNearest finds and loads zpltool.toml starting from dir, returning a
// zero Config (ok=false) when no file exists anywhere up the tree.
func LoadNearest(dir string) (cfg *Config, ok bool, err error) {
	path, found, err := Find(dir)
	if err != nil || !found {
		return &Config{}, false, err
	}
	cfg, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}
