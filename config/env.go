package config

import (
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/yllada/opencami-desktop/common"
)

// LoadEnv reads .env files into the process environment without overriding
// variables that are already set. The working directory file wins over the
// one in the config directory. It returns the files that were loaded.
func LoadEnv(configDir string) []string {
	candidates := []string{common.EnvFileName}
	if configDir != "" {
		candidates = append(candidates, filepath.Join(configDir, common.EnvFileName))
	}

	var loaded []string
	for _, path := range candidates {
		if !common.FileExists(path) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			common.LogWarn("Ignoring %s: %v", path, err)
			continue
		}
		loaded = append(loaded, path)
	}
	return loaded
}
