// Package pager splits the output into pages fitting the terminal and waits
// for a key press after each of them.
package pager

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ricat/ricat/internal/constants"
	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/io/dlog"
	"github.com/ricat/ricat/internal/io/line"
)

// Ctrl+C arrives as a plain byte while the terminal is in raw mode.
const keyInterrupt = 3

// Pager forwards lines to the next processor and pauses whenever the next
// line would not fit on the current page any more. Pressing q ends the run
// with errors.ErrUserQuit.
type Pager struct {
	out  line.Processor
	term Terminal
	log  *dlog.Logger

	cols     int
	capacity int // Rows available for lines on the current page
	used     int // Rows used on the current page
	pages    int
}

var _ line.Processor = (*Pager)(nil)

// New returns a pager writing to out and interacting with term.
func New(out line.Processor, t Terminal, log *dlog.Logger) *Pager {
	return &Pager{
		out:  out,
		term: t,
		log:  log.WithComponent("pager"),
	}
}

// Open wraps out in a pager if stdout is a terminal. Otherwise out is
// returned as it is.
func Open(out line.Processor, stdout io.Writer, log *dlog.Logger) line.Processor {
	f, ok := stdout.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		log.Debug("Output is not a terminal, pagination disabled")
		return out
	}
	return New(out, newTTYTerminal(f), log)
}

// ProcessLine implements line.Processor.
func (p *Pager) ProcessLine(l line.Line) error {
	if p.capacity == 0 {
		p.startPage()
	}

	cost := Rows(DisplayWidth(l.Content), p.cols)
	if p.used > 0 && p.used+cost > p.capacity {
		if err := p.pause(); err != nil {
			return err
		}
		p.startPage()
	}

	p.used += cost
	return p.out.ProcessLine(l)
}

// startPage re-reads the terminal size, it may have been resized.
func (p *Pager) startPage() {
	cols, rows, err := p.term.Size()
	if err != nil {
		p.log.Debug("Unable to get terminal size, using defaults",
			dlog.Fields(dlog.FieldError, err.Error()))
		cols, rows = constants.DefaultTerminalColumns, constants.DefaultTerminalRows
	}
	if cols < 1 {
		cols = constants.DefaultTerminalColumns
	}
	p.cols = cols
	p.capacity = max(rows-constants.ReservedPromptRows, 1)
	p.used = 0
}

// pause shows the current page and waits for the operator.
func (p *Pager) pause() error {
	if err := p.out.Flush(); err != nil {
		return err
	}
	p.pages++

	if err := p.term.Prompt(); err != nil {
		return errors.Wrap(errors.Classify(errors.ErrIO, err), "writing prompt")
	}
	key, err := p.term.ReadKey()
	if clearErr := p.term.ClearPrompt(); clearErr != nil && err == nil {
		err = errors.Wrap(errors.Classify(errors.ErrIO, clearErr), "clearing prompt")
	}
	if err != nil {
		return err
	}

	switch key {
	case 'q', 'Q', keyInterrupt:
		p.log.Debug("Quit requested", dlog.Fields("pages", p.pages))
		return errors.ErrUserQuit
	}
	return nil
}

// Flush emits the lines of the current page without prompting.
func (p *Pager) Flush() error {
	return p.out.Flush()
}

// Close flushes the remaining lines and releases the terminal.
func (p *Pager) Close() error {
	multi := errors.NewMultiError()
	multi.Add(p.out.Close())
	multi.Add(p.term.Close())
	return multi.ErrorOrNil()
}

// Pages returns the number of pages completed with a prompt.
func (p *Pager) Pages() int {
	return p.pages
}
