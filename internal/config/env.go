package config

import (
	"os"
	"path/filepath"

	"github.com/ricat/ricat/internal/errors"
)

// EnvPrefix is the prefix of all environment variables read by ricat.
const EnvPrefix = "RICAT"

// EnvConfigDir overrides the directory holding the profile.
const EnvConfigDir = EnvPrefix + "_CONFIG_DIR"

// Env returns true when a given environment variable is set to "yes".
func Env(env string) bool {
	return "yes" == os.Getenv(env)
}

// ConfigDir returns the directory of the profile. It can be overriden with
// the RICAT_CONFIG_DIR environment variable.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.Classify(errors.ErrInvalidConfig, err),
			"locating home directory")
	}
	return filepath.Join(home, ".config", "ricat"), nil
}

// ProfilePath returns the default location of the profile.
func ProfilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProfileFileName), nil
}
