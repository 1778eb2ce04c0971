/*
File    : treewalk/internal/replkit/config.go
Author  : amaji
*/

package replkit

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional per-user REPL customization file,
// `.treewalkrc.yaml` in the current directory ($HOME is not searched).
// None of its fields are required — LoadConfig returns the zero Config (every field
// empty) when the file is absent, and Repl.Start falls back to its
// built-in defaults for anything left unset.
type Config struct {
	Prompt      string `yaml:"prompt"`
	DisableColor bool  `yaml:"disable_color"`
	HistoryFile string `yaml:"history_file"`
}

// LoadConfig reads and parses path, returning a zero Config (not an
// error) if the file does not exist — the REPL works with no config
// file at all.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the conventional location for a REPL
// config file relative to the current working directory.
func DefaultConfigPath() string {
	return ".treewalkrc.yaml"
}
