// Package promptio implements the terminal prompt collaborator: reading
// a visible line or a hidden (no-echo) password from the controlling
// terminal.
package promptio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Prompter collects strings from the operator.
type Prompter interface {
	Line(label string) (string, error)
	Hidden(label string) ([]byte, error)
}

// Terminal is a Prompter backed by the process's stdin/stdout.
type Terminal struct {
	In  *os.File
	Out io.Writer
}

// NewTerminal returns a Terminal wired to the process's real stdin and
// stdout.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stdout}
}

// IsInteractive reports whether In is attached to a real terminal.
func (t *Terminal) IsInteractive() bool {
	return isatty.IsTerminal(t.In.Fd()) || isatty.IsCygwinTerminal(t.In.Fd())
}

// Line prints label and reads a single line from In, trimming the
// trailing newline.
func (t *Terminal) Line(label string) (string, error) {
	fmt.Fprint(t.Out, label)
	reader := bufio.NewReader(t.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Hidden prints label and reads a password without echoing it to the
// terminal, via golang.org/x/term.ReadPassword.
func (t *Terminal) Hidden(label string) ([]byte, error) {
	fmt.Fprint(t.Out, label)
	pw, err := term.ReadPassword(int(t.In.Fd()))
	fmt.Fprintln(t.Out)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
