// Package pipeline applies the enabled features to every input line and
// streams the surviving lines to the output.
package pipeline

import (
	"context"
	"io"

	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/feature"
	"github.com/ricat/ricat/internal/io/dlog"
	"github.com/ricat/ricat/internal/io/fs"
	"github.com/ricat/ricat/internal/io/line"
)

// Stats counts the lines seen by a pipeline.
type Stats struct {
	Read    uint64
	Emitted uint64
	Dropped uint64
}

// Pipeline is the ordered composition of the enabled features together with
// their state. It is not safe for concurrent use.
type Pipeline struct {
	features []feature.Feature
	state    feature.State
	stats    Stats
	log      *dlog.Logger
}

// New builds the pipeline for cfg. Conflicting features and search
// patterns which do not compile are reported before any input is read.
func New(cfg feature.Config, log *dlog.Logger) (*Pipeline, error) {
	log = log.WithComponent("pipeline")

	features, err := feature.Build(cfg)
	if err != nil {
		return nil, err
	}
	if ignored := cfg.Ignored(); len(ignored) > 0 {
		log.Warn("Features have no effect together with Base64 encoding",
			dlog.Fields("ignored", ignored))
	}

	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.Name())
	}
	log.Debug("Pipeline built", dlog.Fields("features", names))

	return &Pipeline{features: features, log: log}, nil
}

// Process folds l through all features in order. It returns false if a
// feature dropped the line.
func (p *Pipeline) Process(l line.Line) (line.Line, bool, error) {
	p.stats.Read++
	for _, f := range p.features {
		var (
			res feature.Result
			err error
		)
		l, res, err = f.Apply(l, &p.state)
		if err != nil {
			return l, false, err
		}
		if res == feature.Dropped {
			p.stats.Dropped++
			return l, false, nil
		}
	}
	p.stats.Emitted++
	return l, true, nil
}

// Run pulls every line from src, processes it and hands the survivors to
// out. out is flushed on every return path, so whatever was produced before
// a failure is written. The context is checked between lines.
func (p *Pipeline) Run(ctx context.Context, src fs.Source, out line.Processor) error {
	err := p.run(ctx, src, out)

	multi := errors.NewMultiError()
	multi.Add(err)
	multi.Add(out.Flush())
	if closeErr := src.Close(); closeErr != nil {
		multi.Add(errors.Wrap(errors.Classify(errors.ErrIO, closeErr), "closing input"))
	}

	p.log.Debug("Pipeline finished", dlog.Fields(
		"read", p.stats.Read, "emitted", p.stats.Emitted, "dropped", p.stats.Dropped))

	if errs := multi.Errors(); len(errs) > 0 {
		// The first error decides the exit status
		return errs[0]
	}
	return nil
}

func (p *Pipeline) run(ctx context.Context, src fs.Source, out line.Processor) error {
	blocking, _ := src.(fs.Blocking)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Show everything produced so far before waiting for more input
		if blocking != nil && blocking.WouldBlock() {
			if err := out.Flush(); err != nil {
				return err
			}
		}

		l, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		l, keep, err := p.Process(l)
		if err != nil {
			return err
		}
		if !keep {
			continue
		}
		if err := out.ProcessLine(l); err != nil {
			return err
		}
	}
}

// Stats returns the line counters.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Features returns the enabled features in application order.
func (p *Pipeline) Features() []feature.Feature {
	return p.features
}
