package domain

import "go.trai.ch/zerr"

var (
	// ErrNoTargetsSpecified is returned when a build command receives no targets.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrRuleNotFound is returned when no .do candidate exists anywhere up the ancestor chain.
	ErrRuleNotFound = zerr.New("no rule found for target")

	// ErrRuleSuffixMismatch is returned when a generic rule's suffix does not match the target name.
	ErrRuleSuffixMismatch = zerr.New("generic rule suffix does not match target")

	// ErrPathEncoding is returned when a path component is not valid UTF-8.
	ErrPathEncoding = zerr.New("path is not valid UTF-8")

	// ErrPathNotAbsolute is returned when the relativizer receives a relative path.
	ErrPathNotAbsolute = zerr.New("path is not absolute")

	// ErrPathNotCanonical is returned when a base directory still contains ".." components.
	ErrPathNotCanonical = zerr.New("path is not canonical")

	// ErrInvalidTarget is returned when a target has no usable file name.
	ErrInvalidTarget = zerr.New("invalid target")

	// ErrPathStatFailed is returned when stating a path fails for a reason other than absence.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrCanonicalizeFailed is returned when a path cannot be made absolute or symlinks resolved.
	ErrCanonicalizeFailed = zerr.New("failed to canonicalize path")

	// ErrScriptFailed is returned when a rule script exits with a non-zero status.
	ErrScriptFailed = zerr.New("rule script failed")

	// ErrScriptStartFailed is returned when a rule script cannot be launched.
	ErrScriptStartFailed = zerr.New("failed to start rule script")

	// ErrDualOutput is returned when a script writes to both stdout and its output file.
	ErrDualOutput = zerr.New("rule script wrote to both stdout and $3")

	// ErrLockFailed is returned when the per-directory lock cannot be acquired.
	ErrLockFailed = zerr.New("failed to lock directory")

	// ErrScratchCreateFailed is returned when a scratch file cannot be created.
	ErrScratchCreateFailed = zerr.New("failed to create scratch file")

	// ErrScratchExhausted is returned when no unused scratch name could be found.
	ErrScratchExhausted = zerr.New("could not allocate a unique scratch file name")

	// ErrPromoteFailed is returned when a scratch file cannot be renamed onto the target.
	ErrPromoteFailed = zerr.New("failed to promote build output")

	// ErrBuildFailed is returned when at least one target failed to build.
	ErrBuildFailed = zerr.New("build failed")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrCleanFailed is returned when removing a leftover file fails.
	ErrCleanFailed = zerr.New("failed to remove file")
)
