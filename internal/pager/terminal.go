package pager

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ricat/ricat/internal/constants"
	"github.com/ricat/ricat/internal/errors"
)

const (
	// Prompt is shown after every page.
	Prompt      = "--More--"
	clearPrompt = "\r\033[K"
	ttyPath     = "/dev/tty"
)

// Terminal is the interactive side of the pager.
type Terminal interface {
	// Size returns the number of columns and rows.
	Size() (cols, rows int, err error)
	// ReadKey blocks until a single key was pressed.
	ReadKey() (byte, error)
	// Prompt shows the continuation prompt.
	Prompt() error
	// ClearPrompt removes the prompt again.
	ClearPrompt() error
	Close() error
}

// ttyTerminal pages on the terminal behind standard output. Keys are read
// in raw mode from the controlling terminal, as standard input may carry
// the data being paged.
type ttyTerminal struct {
	out *os.File
	in  *os.File
}

func newTTYTerminal(out *os.File) *ttyTerminal {
	return &ttyTerminal{out: out}
}

func (t *ttyTerminal) Size() (int, int, error) {
	cols, rows, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return constants.DefaultTerminalColumns, constants.DefaultTerminalRows, err
	}
	return cols, rows, nil
}

func (t *ttyTerminal) ReadKey() (byte, error) {
	if t.in == nil {
		in, err := os.OpenFile(ttyPath, os.O_RDONLY, 0)
		if err != nil {
			return 0, errors.Wrapf(errors.Classify(errors.ErrIO, err), "opening %s", ttyPath)
		}
		t.in = in
	}

	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, errors.Wrap(errors.Classify(errors.ErrIO, err), "entering raw mode")
	}
	defer term.Restore(fd, state)

	var key [1]byte
	if _, err := io.ReadFull(t.in, key[:]); err != nil {
		return 0, errors.Wrap(errors.Classify(errors.ErrIO, err), "reading key")
	}
	return key[0], nil
}

func (t *ttyTerminal) Prompt() error {
	_, err := io.WriteString(t.out, Prompt)
	return err
}

func (t *ttyTerminal) ClearPrompt() error {
	_, err := io.WriteString(t.out, clearPrompt)
	return err
}

func (t *ttyTerminal) Close() error {
	if t.in == nil {
		return nil
	}
	in := t.in
	t.in = nil
	return in.Close()
}
