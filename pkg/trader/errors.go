package trader

import "fmt"

// ValidationError rejects a malformed request locally, before any network
// call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func validationErrorf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// ExchangeError wraps an API or transport failure surfaced by the exchange
// client. The caller decides whether to retry with a fresh run.
type ExchangeError struct {
	Op  string
	Err error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("exchange %s error: %v", e.Op, e.Err)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}
