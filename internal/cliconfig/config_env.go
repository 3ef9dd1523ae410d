package cliconfig

import "os"

// ApplyEnvConfig applies configuration from VOTEBOX_* environment variables,
// skipping every value whose flag is in changed. VOTEBOX_CANDIDATES is a
// comma-separated list.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setCSV("candidates", os.Getenv("VOTEBOX_CANDIDATES"), &cfg.Candidates)
	s.setString("storage", os.Getenv("VOTEBOX_STORAGE"), &cfg.Storage)
	s.setString("storage-path", os.Getenv("VOTEBOX_STORAGE_PATH"), &cfg.StoragePath)
	s.setString("lang", os.Getenv("VOTEBOX_LANG"), &cfg.Language)
	s.setString("log-level", os.Getenv("VOTEBOX_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("listen", os.Getenv("VOTEBOX_LISTEN"), &cfg.ListenAddr)
}
