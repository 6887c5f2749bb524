package domain

const (
	// RuleExt is the extension every rule file carries.
	RuleExt = ".do"

	// DefaultRulePrefix is the prefix of generic rule file names.
	DefaultRulePrefix = "default"

	// RecordPrefix is prepended to a target's file name to form its build record name.
	RecordPrefix = ".redo."

	// ScratchPrefix marks scratch files; anything matching it may be garbage-collected.
	ScratchPrefix = ".redo-tmp-"

	// ScratchStdoutSuffix marks the scratch file capturing the script's stdout.
	ScratchStdoutSuffix = ".stdout"

	// ScratchOutputSuffix marks the scratch file handed to the script as $3.
	ScratchOutputSuffix = ".out"

	// LockFileName is the per-directory advisory lock guarding scratch allocation.
	LockFileName = ".redo-lock"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "redo.yaml"

	// BuiltEnvVar marks rule scripts as running under redo.
	BuiltEnvVar = "DO_BUILT"

	// DefaultShell interprets rule files that are not executable.
	DefaultShell = "sh"

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// RecordFileName returns the build record file name for a target file name.
func RecordFileName(targetFileName string) string {
	return RecordPrefix + targetFileName
}
