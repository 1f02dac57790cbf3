package output

// ExitCode represents numeric process exit codes.
type ExitCode int

const (
	ExitSuccess         ExitCode = 0
	ExitGeneralError    ExitCode = 1
	ExitConfigError     ExitCode = 2
	ExitFileError       ExitCode = 3
	ExitKeyParseError   ExitCode = 4
	ExitParseError      ExitCode = 5
	ExitValidationError ExitCode = 6
	ExitKeyPolicyError  ExitCode = 9
)

// codeToExitCode maps structured codes to numeric exit codes.
var codeToExitCode = map[Code]ExitCode{
	// General errors (exit code 1)
	CodeGeneralError:    ExitGeneralError,
	CodeUsageError:      ExitGeneralError,
	CodeInvalidArgument: ExitGeneralError,

	// Config errors (exit code 2)
	CodeConfigNotFound:   ExitConfigError,
	CodeConfigInvalid:    ExitConfigError,
	CodeConfigParseError: ExitConfigError,
	CodeConfigSaveError:  ExitConfigError,

	// Record file errors (exit code 3)
	CodeFileReadError:  ExitFileError,
	CodeFileWriteError: ExitFileError,
	CodeFileLocked:     ExitFileError,

	// Key material errors (exit code 4)
	CodeKeyParseError: ExitKeyParseError,

	// Document errors (exit code 5)
	CodeParseError: ExitParseError,

	// Validation errors (exit code 6)
	CodeValidationError:  ExitValidationError,
	CodeAmbiguousActor:   ExitValidationError,
	CodeIncompleteRecord: ExitValidationError,

	// Key policy errors (exit code 9)
	CodeKeyTooWeak: ExitKeyPolicyError,
}

// GetExitCode returns the numeric exit code for a structured code.
func (c Code) GetExitCode() ExitCode {
	if exit, ok := codeToExitCode[c]; ok {
		return exit
	}
	return ExitGeneralError
}

// Int returns the integer value of the exit code.
func (e ExitCode) Int() int {
	return int(e)
}
