package config

// Redofile represents the structure of the redo.yaml configuration file.
type Redofile struct {
	Shell     string            `yaml:"shell"`
	XTrace    bool              `yaml:"xtrace"`
	FailFast  bool              `yaml:"fail_fast"`
	Timeout   string            `yaml:"timeout"`
	Env       map[string]string `yaml:"env"`
	LogFormat string            `yaml:"log_format"`
	LogLevel  string            `yaml:"log_level"`
}
