package cliconfig

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bft-labs/votebox/internal/domain"
)

// Storage kinds accepted by --storage.
const (
	StorageVolatile = "volatile"
	StorageDurable  = "durable"
)

// Languages accepted by --lang.
const (
	LanguageEnglish = "en"
	LanguageFrench  = "fr"
)

// DefaultStoragePath is the tally file used by durable storage.
const DefaultStoragePath = "machine.json"

// DefaultListenAddr is the address `votebox serve` binds to.
const DefaultListenAddr = ":8080"

// Config holds CLI configuration for votebox.
type Config struct {
	Candidates []string

	Storage     string
	StoragePath string

	Language string
	LogLevel string

	ListenAddr string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Storage:     StorageVolatile,
		StoragePath: DefaultStoragePath,
		Language:    LanguageEnglish,
		LogLevel:    "info",
		ListenAddr:  DefaultListenAddr,
	}
}

// Validate checks the configuration and normalizes it: candidate names are
// trimmed and must not be empty, an empty storage path falls back to
// DefaultStoragePath.
func (c *Config) Validate() error {
	candidates := make([]string, 0, len(c.Candidates))
	seen := make(map[string]bool, len(c.Candidates))
	for _, name := range c.Candidates {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("%w: empty candidate name", domain.ErrInvalidConfig)
		}
		if seen[name] {
			return fmt.Errorf("%w: candidate %q listed twice", domain.ErrInvalidConfig, name)
		}
		seen[name] = true
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("%w: at least one candidate is required", domain.ErrInvalidConfig)
	}
	c.Candidates = candidates

	switch c.Storage {
	case StorageVolatile, StorageDurable:
	default:
		return fmt.Errorf("%w: storage must be %q or %q, got %q",
			domain.ErrInvalidConfig, StorageVolatile, StorageDurable, c.Storage)
	}
	if c.StoragePath == "" {
		c.StoragePath = DefaultStoragePath
	}

	switch c.Language {
	case LanguageEnglish, LanguageFrench:
	default:
		return fmt.Errorf("%w: language must be %q or %q, got %q",
			domain.ErrInvalidConfig, LanguageEnglish, LanguageFrench, c.Language)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", domain.ErrInvalidConfig, err)
	}

	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	return nil
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings sets a list if it has elements and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setCSV splits a comma-separated environment value into a list.
func (s *configSetter) setCSV(flag, value string, dst *[]string) {
	if value == "" {
		return
	}
	s.setStrings(flag, strings.Split(value, ","), dst)
}
