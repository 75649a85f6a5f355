package main

// Exit codes for the fatal error classes. Recoverable conditions are
// absorbed into report lines and never change the exit status.
const (
	exitCodeUsage = 2 // missing or malformed rule identifier, bad flags
	exitCodeLint  = 3 // oxlint invocation produced no usable payload
)

// exitError wraps an error with the process exit code it should produce.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func usageErr(err error) error {
	return &exitError{code: exitCodeUsage, err: err}
}

func lintErr(err error) error {
	return &exitError{code: exitCodeLint, err: err}
}
