package cli

import (
	"errors"
	"io/fs"

	"github.com/dotsecenv/actorkey/pkg/actorkey/config"
	"github.com/dotsecenv/actorkey/pkg/actorkey/fingerprint"
	"github.com/dotsecenv/actorkey/pkg/actorkey/key"
	"github.com/dotsecenv/actorkey/pkg/actorkey/keyfile"
	"github.com/dotsecenv/actorkey/pkg/actorkey/output"
)

// ExitCode represents the exit code for an error.
// This is an alias to the output package.
type ExitCode = output.ExitCode

// Exit code constants - aliases to output package.
const (
	ExitSuccess         = output.ExitSuccess
	ExitGeneralError    = output.ExitGeneralError
	ExitConfigError     = output.ExitConfigError
	ExitFileError       = output.ExitFileError
	ExitKeyParseError   = output.ExitKeyParseError
	ExitParseError      = output.ExitParseError
	ExitValidationError = output.ExitValidationError
	ExitKeyPolicyError  = output.ExitKeyPolicyError
)

// ClassifyError maps an error returned by the library packages onto a
// structured output error. fallback is used for filesystem and unknown
// errors, so callers pick between FILE_READ_ERROR and FILE_WRITE_ERROR.
func ClassifyError(err error, fallback output.Code) *output.Error {
	if err == nil {
		return nil
	}

	var outErr *output.Error
	if errors.As(err, &outErr) {
		return outErr
	}

	code := fallback
	var validationErr *key.ValidationError
	switch {
	case errors.Is(err, key.ErrAmbiguousActor):
		code = output.CodeAmbiguousActor
	case errors.Is(err, key.ErrIncomplete):
		code = output.CodeIncompleteRecord
	case errors.As(err, &validationErr):
		return output.Wrap(output.CodeValidationError, err).WithDetail("field", validationErr.Field)
	case errors.Is(err, key.ErrParse):
		code = output.CodeParseError
	case errors.Is(err, fingerprint.ErrKeyParse):
		code = output.CodeKeyParseError
	case errors.Is(err, key.ErrInvalidArgument):
		code = output.CodeInvalidArgument
	case errors.Is(err, keyfile.ErrLocked):
		code = output.CodeFileLocked
	case errors.Is(err, keyfile.ErrUnknownFormat):
		code = output.CodeUsageError
	case errors.Is(err, config.ErrInvalid):
		code = output.CodeConfigInvalid
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		if fallback == "" || fallback == output.CodeGeneralError {
			code = output.CodeFileReadError
		}
	}
	if code == "" {
		code = output.CodeGeneralError
	}

	return output.Wrap(code, err)
}
