package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var errNoEnvFile = errors.New("no .env file found")

// loadEnvFile loads variables from the first of .env and .env.local found in
// dir. Variables already set in the process environment are never overridden.
func loadEnvFile(dir string) (string, error) {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return path, err
		}
		return path, nil
	}
	return "", errNoEnvFile
}
