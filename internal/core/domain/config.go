package domain

import "time"

// Log formats accepted by the logger.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// Config holds the user-tunable settings of a redo run.
type Config struct {
	// Path is the config file the settings were read from, empty when defaults are used.
	Path      string
	Shell     string
	Trace     bool
	FailFast  bool
	Timeout   time.Duration
	Env       map[string]string
	LogFormat string
	LogLevel  LogLevel
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Shell:     DefaultShell,
		LogFormat: LogFormatPretty,
		LogLevel:  LogLevelInfo,
	}
}

// Invocation carries the process-wide state a build depends on. It is
// captured once per run and passed explicitly, so nothing in the core reads
// the working directory or environment on its own.
type Invocation struct {
	// WorkDir is the directory relative target names are resolved against.
	WorkDir string
	// Environ is the base environment for rule scripts, in KEY=VALUE form.
	Environ []string
	// Env holds overrides applied on top of Environ.
	Env map[string]string
	// Shell interprets rule files that are not executable.
	Shell string
	// Trace runs non-executable rules with "sh -x".
	Trace bool
	// Timeout bounds each rule script; zero means no limit.
	Timeout time.Duration
}

// NewInvocation builds an Invocation from a working directory, a base
// environment and the loaded configuration.
func NewInvocation(workDir string, environ []string, cfg *Config) Invocation {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	shell := cfg.Shell
	if shell == "" {
		shell = DefaultShell
	}
	return Invocation{
		WorkDir: workDir,
		Environ: environ,
		Env:     cfg.Env,
		Shell:   shell,
		Trace:   cfg.Trace,
		Timeout: cfg.Timeout,
	}
}
