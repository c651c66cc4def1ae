package config

import (
	"github.com/spf13/pflag"

	"github.com/ricat/ricat/internal/profiling"
)

// Flag names bound to profile keys.
const (
	FlagNumbers      = "numbers"
	FlagDollar       = "dollar"
	FlagTabs         = "tabs"
	FlagSqueezeBlank = "squeeze-blank"
	FlagPages        = "pages"
	FlagLogLevel     = "logLevel"
	FlagSearch       = "search"
	FlagText         = "text"
)

// Args is a helper struct to summarize common command line arguments.
type Args struct {
	ConfigFile string
	InitConfig bool
	Version    bool

	Numbers      bool
	Dollar       bool
	Tabs         bool
	SqueezeBlank bool
	Pages        bool
	LogLevel     string

	Search     bool
	Text       string
	IgnoreCase bool

	EncodeBase64 bool
	DecodeBase64 bool

	Profile profiling.Flags
}

// AddFlags registers all command line flags on fs.
func AddFlags(fs *pflag.FlagSet, args *Args) {
	fs.BoolVarP(&args.Numbers, FlagNumbers, "n", false, "Number all output lines")
	fs.BoolVarP(&args.Dollar, FlagDollar, "d", false, "Display $ at the end of each line")
	fs.BoolVarP(&args.Tabs, FlagTabs, "t", false, "Display TAB characters as ^I")
	fs.BoolVarP(&args.SqueezeBlank, FlagSqueezeBlank, "s", false, "Suppress repeated empty output lines")
	fs.BoolVar(&args.Pages, FlagPages, false, "Pause after every terminal page")

	fs.BoolVar(&args.Search, FlagSearch, false, "Only output lines matching --text")
	fs.StringVar(&args.Text, FlagText, "", "Search text, prefix with 'reg:' for a regular expression")
	fs.BoolVarP(&args.IgnoreCase, "ignore-case", "i", false, "Search case insensitive")

	fs.BoolVar(&args.EncodeBase64, "encode-base64", false, "Encode every line as Base64")
	fs.BoolVar(&args.DecodeBase64, "decode-base64", false, "Decode every line from Base64")

	fs.StringVar(&args.ConfigFile, "cfg", "", "Profile file path")
	fs.BoolVar(&args.InitConfig, "init-config", false, "Write the default profile and exit")
	fs.StringVar(&args.LogLevel, FlagLogLevel, DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	fs.BoolVar(&args.Version, "version", false, "Display version")

	profiling.AddFlags(fs, &args.Profile)
}
