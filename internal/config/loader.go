package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Environment variables naming the config file. FMS_CONFIG wins over the
// generic CONFIG_PATH.
const (
	envConfig     = "FMS_CONFIG"
	envConfigPath = "CONFIG_PATH"
)

// searchPaths are tried in order when no path is given.
var searchPaths = []string{"./config.yaml", "./configs/fms.yaml"}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in increasing priority. A path named in the environment
// must exist; otherwise the first of searchPaths that exists is used, and
// with none the environment and defaults alone apply.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", describe(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func configPath() (string, error) {
	for _, env := range []string{envConfig, envConfigPath} {
		path := os.Getenv(env)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config: %s=%s: %w", env, path, err)
		}
		return path, nil
	}

	for _, path := range searchPaths {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: %s: %w", path, err)
		}
	}
	return "", nil
}

func describe(path string) string {
	if path == "" {
		return "env"
	}
	return path
}
