// Package config provides configuration management for ricat. It merges the
// command line, the environment and the profile file into a single Config.
//
// Configuration precedence (highest to lowest):
// 1. Command-line arguments
// 2. Environment variables (RICAT_ prefix)
// 3. Profile file (TOML)
// 4. Default values
package config

import (
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/feature"
	"github.com/ricat/ricat/internal/io/dlog"
)

// Config is the resolved configuration of a run.
type Config struct {
	Profile

	// ProfilePath is the profile file consulted, whether it exists or not.
	ProfilePath   string
	ProfileLoaded bool

	// Files to read, standard input if empty.
	Files []string

	Search     bool
	SearchText string
	IgnoreCase bool

	EncodeBase64 bool
	DecodeBase64 bool
}

// profileFlags maps profile keys to the flags overriding them.
var profileFlags = map[string]string{
	KeyNumber:        FlagNumbers,
	KeyDollarSign:    FlagDollar,
	KeyTabs:          FlagTabs,
	KeyCompressEmpty: FlagSqueezeBlank,
	KeyPagination:    FlagPages,
	KeyLogLevel:      FlagLogLevel,
}

// Setup resolves the configuration from the parsed flag set, its arguments,
// the environment and the profile.
func Setup(flags *pflag.FlagSet, args *Args) (*Config, error) {
	if err := validateArgs(flags, args); err != nil {
		return nil, err
	}

	path := args.ConfigFile
	if path == "" {
		var err error
		if path, err = ProfilePath(); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	defaults := DefaultProfile()
	v.SetDefault(KeyNumber, defaults.NumberFeature)
	v.SetDefault(KeyDollarSign, defaults.DollarSignFeature)
	v.SetDefault(KeyTabs, defaults.TabsFeature)
	v.SetDefault(KeyCompressEmpty, defaults.CompressEmptyLineFeature)
	v.SetDefault(KeyPagination, defaults.PaginationFeature)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)

	loaded, err := readProfile(v, path)
	if err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for key, name := range profileFlags {
		if flag := flags.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, errors.Wrapf(errors.Classify(errors.ErrInvalidConfig, err), "binding flag %s", name)
			}
		}
	}

	cfg := &Config{
		ProfilePath:   path,
		ProfileLoaded: loaded,
		Files:         flags.Args(),
		Search:        args.Search,
		SearchText:    args.Text,
		IgnoreCase:    args.IgnoreCase,
		EncodeBase64:  args.EncodeBase64,
		DecodeBase64:  args.DecodeBase64,
	}
	if err := v.Unmarshal(&cfg.Profile); err != nil {
		return nil, errors.Wrap(errors.Classify(errors.ErrInvalidConfig, err), "decoding configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readProfile merges the profile at path into v. A missing profile is not
// an error.
func readProfile(v *viper.Viper, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(errors.Classify(errors.ErrInvalidConfig, err), "reading %s", path)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return false, errors.Wrapf(errors.Classify(errors.ErrInvalidConfig, err), "reading %s", path)
	}
	return true, nil
}

func validateArgs(flags *pflag.FlagSet, args *Args) error {
	switch {
	case args.Search && !flags.Changed(FlagText):
		return errors.Wrap(errors.ErrUsage, "--search requires --text")
	case flags.Changed(FlagText) && !args.Search:
		return errors.Wrap(errors.ErrUsage, "--text requires --search")
	}
	return nil
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"log level must be one of [trace debug info warn error] (got: %q)", c.LogLevel)
	}
	return c.FeatureConfig().Validate()
}

// FeatureConfig returns the feature selection of the run.
func (c *Config) FeatureConfig() feature.Config {
	return feature.Config{
		LineNumbers:   c.NumberFeature,
		DollarSign:    c.DollarSignFeature,
		TabExpand:     c.TabsFeature,
		CompressEmpty: c.CompressEmptyLineFeature,
		Search:        c.Search,
		SearchText:    c.SearchText,
		IgnoreCase:    c.IgnoreCase,
		Encode:        c.EncodeBase64,
		Decode:        c.DecodeBase64,
	}
}

// LogConfig returns the logger configuration of the run.
func (c *Config) LogConfig() dlog.Config {
	return dlog.Config{Level: c.LogLevel}
}

// Log writes the resolved configuration at debug level.
func (c *Config) Log(log *dlog.Logger) {
	log.WithComponent("config").Debug("Configuration resolved", dlog.Fields(
		"profile", c.ProfilePath,
		"profileLoaded", c.ProfileLoaded,
		"files", len(c.Files),
		KeyNumber, c.NumberFeature,
		KeyDollarSign, c.DollarSignFeature,
		KeyTabs, c.TabsFeature,
		KeyCompressEmpty, c.CompressEmptyLineFeature,
		KeyPagination, c.PaginationFeature,
		KeyLogLevel, c.LogLevel,
	))
}
