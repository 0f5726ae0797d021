package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// loadEnvFiles pulls KEY=VALUE pairs from .env/.env.local into the process
// environment before the YAML is expanded. Existing variables win. A missing
// file is the normal case and logged at debug only.
func loadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if err := godotenv.Load(path); err != nil {
			slog.Debug("No env file loaded", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
		return
	}
}
