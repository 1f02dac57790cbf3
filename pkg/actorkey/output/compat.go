package output

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// PrintError writes an error message to the given writer and returns the exit code.
func PrintError(w io.Writer, err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}

	var outErr *Error
	if errors.As(err, &outErr) {
		_, _ = fmt.Fprintf(w, "error: %s\n", outErr.Message)
		return outErr.ExitCode()
	}

	_, _ = fmt.Fprintf(w, "error: %v\n", err)
	return ExitGeneralError
}

// ExitWithError prints an error and exits with the appropriate code.
func ExitWithError(err error) {
	code := PrintError(os.Stderr, err)
	os.Exit(code.Int())
}

// PrintWarning writes a warning message to the given writer.
func PrintWarning(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "warning: %s\n", message)
}
