// Package config provides the configuration loader for redo.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvXTrace    = "REDO_XTRACE"
	EnvShell     = "REDO_SHELL"
	EnvTimeout   = "REDO_TIMEOUT"
	EnvLogFormat = "REDO_LOG_FORMAT"
	EnvLogLevel  = "REDO_LOG_LEVEL"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger    ports.Logger
	LookupEnv func(string) (string, bool)
}

// NewLoader creates a new Loader that reads overrides from the process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, LookupEnv: os.LookupEnv}
}

// Load discovers the nearest redo.yaml at or above cwd. Defaults are used
// when none exists; environment overrides apply either way.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path, found, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}
	if !found {
		l.Logger.Debug(fmt.Sprintf("no %s found above %s, using defaults", domain.ConfigFileName, cwd))
		cfg := domain.DefaultConfig()
		if err := l.applyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return l.LoadFile(path)
}

// LoadFile reads the configuration at path and applies environment overrides.
func (l *Loader) LoadFile(path string) (*domain.Config, error) {
	var redofile Redofile
	if err := readAndUnmarshalYAML(path, &redofile); err != nil {
		return nil, err
	}

	cfg, err := toDomain(&redofile)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	cfg.Path = path

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	l.Logger.Debug(fmt.Sprintf("loaded configuration from %s", path))
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool, error) {
	for dir := range domain.Ancestors(filepath.Clean(cwd)) {
		path := filepath.Join(dir, domain.ConfigFileName)
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return path, true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", false, zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "stat failed"), "path", path)
		}
	}
	return "", false, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered or given by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "read failed"), "path", configPath)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, err), "parse failed"), "path", configPath)
	}
	return nil
}

func toDomain(f *Redofile) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if f.Shell != "" {
		cfg.Shell = f.Shell
	}
	cfg.Trace = f.XTrace
	cfg.FailFast = f.FailFast
	cfg.Env = f.Env

	if f.Timeout != "" {
		timeout, err := parseTimeout(f.Timeout)
		if err != nil {
			return nil, err
		}
		cfg.Timeout = timeout
	}
	if f.LogFormat != "" {
		if err := setLogFormat(cfg, f.LogFormat); err != nil {
			return nil, err
		}
	}
	if f.LogLevel != "" {
		if err := setLogLevel(cfg, f.LogLevel); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvShell); ok && v != "" {
		cfg.Shell = v
	}
	if v, ok := lookup(EnvXTrace); ok && v != "" {
		trace, err := strconv.ParseBool(v)
		if err != nil {
			return invalid(EnvXTrace, v)
		}
		cfg.Trace = trace
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		timeout, err := parseTimeout(v)
		if err != nil {
			return zerr.With(err, "variable", EnvTimeout)
		}
		cfg.Timeout = timeout
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		if err := setLogFormat(cfg, v); err != nil {
			return zerr.With(err, "variable", EnvLogFormat)
		}
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if err := setLogLevel(cfg, v); err != nil {
			return zerr.With(err, "variable", EnvLogLevel)
		}
	}
	return nil
}

func parseTimeout(v string) (time.Duration, error) {
	if v == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, invalid("timeout", v)
	}
	return d, nil
}

func setLogFormat(cfg *domain.Config, v string) error {
	switch v {
	case domain.LogFormatPretty, domain.LogFormatJSON:
		cfg.LogFormat = v
		return nil
	default:
		return invalid("log_format", v)
	}
}

func setLogLevel(cfg *domain.Config, v string) error {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "warning", "error":
		cfg.LogLevel = domain.ParseLogLevel(v)
		return nil
	default:
		return invalid("log_level", v)
	}
}

func invalid(field, value string) error {
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "bad value"), "field", field), "value", value)
}
