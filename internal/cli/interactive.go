package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
)

// ErrUserCancelled is returned when the user cancels an interactive prompt (Ctrl-C or Escape)
var ErrUserCancelled = errors.New("cancelled by user")

// ErrNoTerminal is returned when a prompt is needed but no terminal is attached.
var ErrNoTerminal = errors.New("no terminal available for confirmation")

// PromptConfirm asks the user for a y/n confirmation.
// Returns true if confirmed, false if declined, or an error on cancellation.
// Opens /dev/tty directly to work even when stdin is piped.
func PromptConfirm(prompt string, stderr io.Writer) (bool, *output.Error) {
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return false, output.NewError(output.CodeUsageError, ErrNoTerminal.Error()).WithCause(ErrNoTerminal)
	}
	defer func() { _ = tty.Close() }()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return false, output.NewError(output.CodeUsageError, ErrNoTerminal.Error()).WithCause(ErrNoTerminal)
	}

	_, _ = fmt.Fprintf(stderr, "%s [y/N]: ", prompt)

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return false, output.NewErrorf(output.CodeGeneralError, "failed to set raw mode: %v", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	return readConfirm(tty, stderr)
}

// readConfirm reads single keystrokes from r until it sees an answer.
func readConfirm(r io.Reader, stderr io.Writer) (bool, *output.Error) {
	buf := make([]byte, 1)
	for {
		_, err := r.Read(buf)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "\r\n")
			return false, output.NewErrorf(output.CodeGeneralError, "failed to read input: %v", err)
		}

		switch buf[0] {
		case 'y', 'Y':
			_, _ = fmt.Fprintf(stderr, "y\r\n")
			return true, nil
		case 'n', 'N', '\r', '\n':
			_, _ = fmt.Fprintf(stderr, "n\r\n")
			return false, nil
		case 3, 27: // Ctrl-C or Escape
			_, _ = fmt.Fprintf(stderr, "\r\nCancelled.\r\n")
			return false, output.NewError(output.CodeGeneralError, ErrUserCancelled.Error()).WithCause(ErrUserCancelled)
		}
	}
}
