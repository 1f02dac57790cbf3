package output

// Code represents a structured error or warning code.
// These are stable string identifiers for machine-readable error handling.
type Code string

// Error codes - grouped by category
const (
	// General errors (exit code 1)
	CodeGeneralError    Code = "GENERAL_ERROR"
	CodeUsageError      Code = "USAGE_ERROR"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Config errors (exit code 2)
	CodeConfigNotFound   Code = "CONFIG_NOT_FOUND"
	CodeConfigInvalid    Code = "CONFIG_INVALID"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeConfigSaveError  Code = "CONFIG_SAVE_ERROR"

	// Record file errors (exit code 3)
	CodeFileReadError  Code = "FILE_READ_ERROR"
	CodeFileWriteError Code = "FILE_WRITE_ERROR"
	CodeFileLocked     Code = "FILE_LOCKED"

	// Key material errors (exit code 4)
	CodeKeyParseError Code = "KEY_PARSE_ERROR"

	// Document errors (exit code 5)
	CodeParseError Code = "PARSE_ERROR"

	// Validation errors (exit code 6)
	CodeValidationError  Code = "VALIDATION_ERROR"
	CodeAmbiguousActor   Code = "AMBIGUOUS_ACTOR"
	CodeIncompleteRecord Code = "INCOMPLETE_RECORD"

	// Key policy errors (exit code 9)
	CodeKeyTooWeak Code = "KEY_TOO_WEAK"
)

// Warning codes
const (
	CodeWarnGeneric         Code = "WARN_GENERIC"
	CodeWarnKeyExpired      Code = "WARN_KEY_EXPIRED"
	CodeWarnKeyNormalized   Code = "WARN_KEY_NORMALIZED"
	CodeWarnDefaultName     Code = "WARN_DEFAULT_NAME"
	CodeWarnConfigNotFound  Code = "WARN_CONFIG_NOT_FOUND"
	CodeWarnFlagIgnored     Code = "WARN_FLAG_IGNORED"
	CodeWarnExpirationUnset Code = "WARN_EXPIRATION_UNSET"
)

// IsWarning returns true if the code is a warning code.
func (c Code) IsWarning() bool {
	switch c {
	case CodeWarnGeneric, CodeWarnKeyExpired, CodeWarnKeyNormalized,
		CodeWarnDefaultName, CodeWarnConfigNotFound, CodeWarnFlagIgnored,
		CodeWarnExpirationUnset:
		return true
	default:
		return false
	}
}

// String returns the string representation of the code.
func (c Code) String() string {
	return string(c)
}
