package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Names of the environment variables that the corsprobe command reads.
const (
	EnvConfigPath = "CORSPROBE_CONFIG"
	EnvLogLevel   = "CORSPROBE_LOG_LEVEL"
)

// DefaultPath is the path of the probe file used when none is specified.
const DefaultPath = "corsprobe.yaml"

// Env holds the settings that the environment provides.
type Env struct {
	ConfigPath string // never empty
	LogLevel   string // empty => use the probe file's
}

// LoadEnv reads the environment, after loading files (".env" if none are
// specified) into it. Missing files are ignored, and variables already set
// in the environment take precedence over those found in files.
func LoadEnv(files ...string) Env {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f) // non-fatal
	}
	env := Env{
		ConfigPath: os.Getenv(EnvConfigPath),
		LogLevel:   os.Getenv(EnvLogLevel),
	}
	if env.ConfigPath == "" {
		env.ConfigPath = DefaultPath
	}
	return env
}
