package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override configuration values.
const (
	EnvVersion   = "RF24DOCS_VERSION"
	EnvRelease   = "RF24DOCS_RELEASE"
	EnvStyle     = "RF24DOCS_STYLE"
	EnvOutputDir = "RF24DOCS_OUTPUT_DIR"
	EnvLogLevel  = "RF24DOCS_LOG_LEVEL"
)

// loadEnvFile loads environment variables from the first .env file found.
func loadEnvFile() error {
	for _, envPath := range []string{".env", ".env.local"} {
		if err := loadSingleEnvFile(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			return nil
		}
	}
	return fmt.Errorf("no .env file found")
}

// loadSingleEnvFile loads a single file without overriding variables that are already set.
func loadSingleEnvFile(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return err
	}
	return godotenv.Load(filename)
}

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvVersion, &cfg.Project.Version},
		{EnvRelease, &cfg.Project.Release},
		{EnvStyle, &cfg.Highlight.Style},
		{EnvOutputDir, &cfg.Output.Directory},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			slog.Debug("Configuration value overridden from environment", "env", o.env)
			*o.target = v
		}
	}
}
