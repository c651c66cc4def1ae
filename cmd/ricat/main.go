// Package main provides the ricat command-line tool. ricat concatenates files,
// or standard input, to standard output like cat and optionally numbers,
// decorates, filters, Base64 encodes or decodes and paginates the lines.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/ricat/ricat/internal/config"
	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/io/dlog"
	"github.com/ricat/ricat/internal/io/fs"
	"github.com/ricat/ricat/internal/io/line"
	"github.com/ricat/ricat/internal/io/signal"
	"github.com/ricat/ricat/internal/io/sink"
	"github.com/ricat/ricat/internal/pager"
	"github.com/ricat/ricat/internal/pipeline"
	"github.com/ricat/ricat/internal/profiling"
	"github.com/ricat/ricat/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes ricat with the given command line and returns the exit code.
func run(cmdline []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var args config.Args

	flags := pflag.NewFlagSet(version.Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	config.AddFlags(flags, &args)

	if err := flags.Parse(cmdline); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			usage(stdout, flags)
			return errors.ExitOK
		}
		return report(stderr, errors.Wrap(errors.ErrUsage, err.Error()))
	}

	switch {
	case args.Version:
		version.Print(stdout)
		return errors.ExitOK
	case args.InitConfig:
		return report(stderr, initConfig(stdout, args.ConfigFile))
	}

	cfg, err := config.Setup(flags, &args)
	if err != nil {
		return report(stderr, err)
	}

	logCfg := cfg.LogConfig()
	logCfg.Out = stderr
	log := dlog.Start(logCfg)
	cfg.Log(log)

	profCfg := args.Profile.ToConfig(version.Name)
	profCfg.Logger = log
	profiler := profiling.NewProfiler(profCfg)
	defer profiler.Stop()

	err = cat(cfg, stdin, stdout, log)
	profiler.LogMetrics(version.Name)
	return report(stderr, err)
}

// cat runs the pipeline from the configured input to stdout.
func cat(cfg *config.Config, stdin io.Reader, stdout io.Writer, log *dlog.Logger) error {
	// Conflicts and bad patterns fail here, before any input is opened
	pipe, err := pipeline.New(cfg.FeatureConfig(), log)
	if err != nil {
		return err
	}

	var src fs.Source
	if len(cfg.Files) > 0 {
		src = fs.NewFiles(cfg.Files, log)
	} else {
		src = fs.NewReader(stdin, fs.StdinID)
	}

	var out line.Processor = sink.New(stdout)
	if cfg.PaginationFeature {
		out = pager.Open(out, stdout, log)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := signal.Cancel(ctx, cancel, log)
	defer stop()

	err = pipe.Run(ctx, src, out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

func initConfig(stdout io.Writer, path string) error {
	if path == "" {
		var err error
		if path, err = config.ProfilePath(); err != nil {
			return err
		}
	}
	written, err := config.WriteDefaultProfile(path)
	if err != nil {
		return err
	}
	if written {
		fmt.Fprintf(stdout, "Wrote default profile to %s\n", path)
	} else {
		fmt.Fprintf(stdout, "Profile %s already exists\n", path)
	}
	return nil
}

// report prints err to stderr unless it is nil or a user quit and returns
// the matching exit code.
func report(stderr io.Writer, err error) int {
	if err != nil && !errors.Is(err, errors.ErrUserQuit) {
		fmt.Fprintf(stderr, "%s: %v\n", version.Name, err)
	}
	return errors.ExitCode(err)
}

func usage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [flags] [files...]\n\n", version.Name)
	fmt.Fprintf(w, "Concatenates the files, or standard input, to standard output.\n\n")
	fmt.Fprint(w, flags.FlagUsages())
}
