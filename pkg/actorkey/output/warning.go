package output

import (
	"fmt"
	"time"
)

// Warning represents a structured warning with code, message, and optional metadata.
type Warning struct {
	Code      Code                   `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewWarning creates a new structured warning with the given code and message.
func NewWarning(code Code, message string) *Warning {
	return &Warning{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewWarningf creates a new warning with a formatted message.
func NewWarningf(code Code, format string, args ...interface{}) *Warning {
	return NewWarning(code, fmt.Sprintf(format, args...))
}

// WithDetail adds a metadata field to the warning and returns it for chaining.
func (w *Warning) WithDetail(key string, value interface{}) *Warning {
	if w.Details == nil {
		w.Details = make(map[string]interface{})
	}
	w.Details[key] = value
	return w
}

// strictCodes maps warnings to the error they become in strict mode.
var strictCodes = map[Code]Code{
	CodeWarnKeyExpired:      CodeValidationError,
	CodeWarnExpirationUnset: CodeIncompleteRecord,
	CodeWarnConfigNotFound:  CodeConfigNotFound,
	CodeWarnFlagIgnored:     CodeUsageError,
}

// ToError converts the warning into the error reported in strict mode.
func (w *Warning) ToError() *Error {
	code, ok := strictCodes[w.Code]
	if !ok {
		code = CodeGeneralError
	}
	e := NewError(code, "strict mode: "+w.Message)
	for k, v := range w.Details {
		e.WithDetail(k, v)
	}
	return e.WithDetail("warning_code", w.Code.String())
}

// String returns a human-readable representation of the warning.
func (w *Warning) String() string {
	return fmt.Sprintf("warning: %s", w.Message)
}
