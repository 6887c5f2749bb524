package domain

import "strings"

// BuildState represents the lifecycle state of a single target build.
type BuildState string

const (
	// BuildStateUnresolved indicates no rule has been searched for yet.
	BuildStateUnresolved BuildState = "unresolved"
	// BuildStateRuleFound indicates a rule file was located for the target.
	BuildStateRuleFound BuildState = "rule-found"
	// BuildStateExecuting indicates the rule script is running.
	BuildStateExecuting BuildState = "executing"
	// BuildStatePromoted indicates the script output was renamed onto the target.
	BuildStatePromoted BuildState = "promoted"
	// BuildStateFailed indicates the build failed. It is terminal; there are no retries.
	BuildStateFailed BuildState = "failed"
	// BuildStateSource indicates the target already existed and was left alone.
	BuildStateSource BuildState = "source"
)

// IsTerminal checks if a state is a terminal state (Promoted, Failed, Source).
func (s BuildState) IsTerminal() bool {
	switch s {
	case BuildStatePromoted, BuildStateFailed, BuildStateSource:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a build may move from s to next.
func (s BuildState) CanTransition(next BuildState) bool {
	switch s {
	case BuildStateUnresolved:
		return next == BuildStateRuleFound || next == BuildStateSource || next == BuildStateFailed
	case BuildStateRuleFound:
		return next == BuildStateExecuting || next == BuildStateFailed
	case BuildStateExecuting:
		return next == BuildStatePromoted || next == BuildStateFailed
	default:
		return false
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a level name to a LogLevel, defaulting to info if unknown.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
