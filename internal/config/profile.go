package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ricat/ricat/internal/errors"
)

// ProfileFileName is the file name of the profile.
const ProfileFileName = "ricat_cfg.toml"

// DefaultLogLevel specifies the default log level.
const DefaultLogLevel = "warn"

// Profile keys.
const (
	KeyNumber        = "number_feature"
	KeyDollarSign    = "dollar_sign_feature"
	KeyTabs          = "tabs_feature"
	KeyCompressEmpty = "compress_empty_line_feature"
	KeyPagination    = "pagination_feature"
	KeyLogLevel      = "log_level"
)

// Profile holds the persisted feature defaults.
type Profile struct {
	NumberFeature            bool   `mapstructure:"number_feature" toml:"number_feature"`
	DollarSignFeature        bool   `mapstructure:"dollar_sign_feature" toml:"dollar_sign_feature"`
	TabsFeature              bool   `mapstructure:"tabs_feature" toml:"tabs_feature"`
	CompressEmptyLineFeature bool   `mapstructure:"compress_empty_line_feature" toml:"compress_empty_line_feature"`
	PaginationFeature        bool   `mapstructure:"pagination_feature" toml:"pagination_feature"`
	LogLevel                 string `mapstructure:"log_level" toml:"log_level"`
}

// DefaultProfile returns the profile used when no file exists.
func DefaultProfile() Profile {
	return Profile{LogLevel: DefaultLogLevel}
}

// WriteDefaultProfile creates the default profile at path, including its
// directory. An existing file is left untouched and false is returned.
func WriteDefaultProfile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, errors.Wrapf(errors.Classify(errors.ErrIO, err), "checking %s", path)
	}

	data, err := toml.Marshal(DefaultProfile())
	if err != nil {
		return false, errors.Wrap(errors.Classify(errors.ErrInvalidConfig, err), "encoding profile")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, errors.Wrapf(errors.Classify(errors.ErrIO, err), "creating %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, errors.Wrapf(errors.Classify(errors.ErrIO, err), "writing %s", path)
	}
	return true, nil
}
