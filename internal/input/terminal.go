package input

import (
	"bytes"
	"errors"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when raw mode is requested on a non-terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Terminal holds a terminal in raw mode until Restore is called
type Terminal struct {
	in    *os.File
	out   *os.File
	state *term.State
}

// MakeRaw puts in into raw mode. out is used for size queries.
func MakeRaw(in, out *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Terminal{in: in, out: out, state: state}, nil
}

// Restore returns the terminal to the mode it had before MakeRaw
func (t *Terminal) Restore() error {
	if t == nil || t.state == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.state)
	t.state = nil
	return err
}

// Size returns the output width and height, or zeros when unknown.
func (t *Terminal) Size() (int, int) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0
	}
	return w, h
}

// Raw mode turns off output post-processing, so a bare newline no longer
// returns the carriage.
type crlfWriter struct {
	w io.Writer
}

// CRLF wraps w so every "\n" is written as "\r\n".
func CRLF(w io.Writer) io.Writer {
	return crlfWriter{w: w}
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
