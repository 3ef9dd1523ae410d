package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML keys.
type FileConfig struct {
	Candidates  []string `toml:"candidates"`
	Storage     string   `toml:"storage"`
	StoragePath string   `toml:"storage_path"`
	Language    string   `toml:"language"`
	LogLevel    string   `toml:"log_level"`
	ListenAddr  string   `toml:"listen_addr"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.votebox/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".votebox", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to cfg, skipping every
// value whose flag is in changed.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setStrings("candidates", fc.Candidates, &cfg.Candidates)
	s.setString("storage", fc.Storage, &cfg.Storage)
	s.setString("storage-path", fc.StoragePath, &cfg.StoragePath)
	s.setString("lang", fc.Language, &cfg.Language)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
