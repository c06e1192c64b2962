package debpatch

import (
	"bufio"
	"os"
	"strings"
)

// Config holds everything loaded from /etc/debpatch.conf, constructed
// once at startup and passed explicitly into the pipeline. Stages never
// read configuration ambiently.
type Config struct {
	Values map[string]string

	SourcesDir string // workspace root for fetched source trees
	BinDir     string // output root for built artifacts
	Suite      string // target distribution for new changelog entries
	MaintName  string // maintainer identity for new changelog entries
	MaintEmail string
}

// loadConfig reads a key=value configuration file and applies
// DEBPATCH_* environment overrides.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{Values: make(map[string]string)}

	// Attempt to read the file
	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}
			key := strings.TrimSpace(parts[0])
			val := strings.TrimSpace(parts[1])
			val = strings.Trim(val, `"'`)
			cfg.Values[key] = val
		}
		if err := scanner.Err(); err != nil {
			return cfg, err
		}
	}

	mergeEnvOverrides(cfg)

	return cfg, nil
}

// Merge DEBPATCH_* env overrides
func mergeEnvOverrides(cfg *Config) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DEBPATCH_") {
			parts := strings.SplitN(env, "=", 2)
			if len(parts) == 2 {
				cfg.Values[parts[0]] = parts[1]
			}
		}
	}
}

// requiredKeys are fatal when absent; the pipeline cannot invent a
// maintainer identity or guess where the operator wants artifacts.
var requiredKeys = []string{
	"DEBPATCH_SOURCES_DIR",
	"DEBPATCH_BIN_DIR",
	"DEBPATCH_SUITE",
	"DEBPATCH_MAINTAINER",
	"DEBPATCH_EMAIL",
}

// initConfig validates the loaded values and fills in the typed fields.
func initConfig(cfg *Config) error {
	for _, key := range requiredKeys {
		if cfg.Values[key] == "" {
			return &ConfigError{Key: key}
		}
	}

	cfg.SourcesDir = cfg.Values["DEBPATCH_SOURCES_DIR"]
	cfg.BinDir = cfg.Values["DEBPATCH_BIN_DIR"]
	cfg.Suite = cfg.Values["DEBPATCH_SUITE"]
	cfg.MaintName = cfg.Values["DEBPATCH_MAINTAINER"]
	cfg.MaintEmail = cfg.Values["DEBPATCH_EMAIL"]

	if !strings.Contains(cfg.MaintEmail, "@") {
		return &ConfigError{Key: "DEBPATCH_EMAIL", Reason: "not an email address"}
	}

	Debug = cfg.Values["DEBPATCH_DEBUG"] == "1"

	return nil
}
