// Package config loads server configuration from the environment.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"
)

func init() {
	// Auto-load .env file if present (don't override existing env vars)
	loadDotEnv(".env")
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		// Remove surrounding quotes
		if len(val) >= 2 && ((val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'')) {
			val = val[1 : len(val)-1]
		}
		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

const (
	defaultPort         = "4200"
	defaultOpenClawBin  = "openclaw"
	defaultCLITimeout   = 10 * time.Second
	defaultSyncInterval = time.Minute
)

// Config holds everything the server needs at startup.
type Config struct {
	Port        string
	DatabaseURL string

	WorkspaceRoot string
	OpenClawBin   string
	CLITimeout    time.Duration

	SyncEnabled  bool
	SyncInterval time.Duration
}

// Load reads configuration from the environment, applying defaults.
func Load() (Config, error) {
	syncEnabled, err := parseBool("SYNC_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	syncInterval, err := parseDuration("SYNC_INTERVAL", defaultSyncInterval)
	if err != nil {
		return Config{}, err
	}
	cliTimeout, err := parseDuration("OPENCLAW_CLI_TIMEOUT", defaultCLITimeout)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:          firstNonEmpty(strings.TrimSpace(os.Getenv("PORT")), defaultPort),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		WorkspaceRoot: strings.TrimSpace(os.Getenv("OPENCLAW_WORKSPACE")),
		OpenClawBin:   firstNonEmpty(strings.TrimSpace(os.Getenv("OPENCLAW_BIN")), defaultOpenClawBin),
		CLITimeout:    cliTimeout,
		SyncEnabled:   syncEnabled,
		SyncInterval:  syncInterval,
	}, nil
}

func parseBool(name string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return defaultValue, nil
	}

	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s must be a boolean value", name)
	}
}

func parseDuration(name string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return defaultValue, nil
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", name, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than zero", name)
	}

	return parsed, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
