package clierr

import (
	"errors"
	"fmt"
)

// Kind classifies why a command failed.
type Kind string

const (
	// InvalidContext means the CI environment or merge request data is
	// missing or malformed. Nothing was linted.
	InvalidContext Kind = "invalid context"
	// CollaboratorFailure means git, the GitLab API or a file read failed.
	CollaboratorFailure Kind = "collaborator failure"
	// LintViolation means messages were linted and violations were found.
	LintViolation Kind = "lint violation"
)

type ExitCoder interface {
	error
	ExitCode() int
}

// ExitError is an error that carries a failure kind and an explicit process
// exit code. It supports wrapping via Unwrap so errors.Is/As work as expected.
type ExitError struct {
	kind   Kind
	code   int
	msg    string
	cause  error
	hint   string
	silent bool
}

func (e *ExitError) Error() string {
	// Keep this stable and user-facing; don't include code or hint here.
	if e.cause == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

// Unwrap enables errors.Is/As to traverse the underlying cause.
func (e *ExitError) Unwrap() error { return e.cause }

func (e *ExitError) Kind() Kind { return e.kind }

// New creates an ExitError with exit code 1.
func New(kind Kind, msg string) error {
	return &ExitError{kind: kind, code: 1, msg: msg}
}

// Wrap creates an ExitError with exit code 1 that wraps an underlying cause.
func Wrap(kind Kind, msg string, cause error) error {
	if cause == nil {
		return New(kind, msg)
	}
	return &ExitError{kind: kind, code: 1, msg: msg, cause: cause}
}

// Wrapf is a formatted variant of Wrap.
func Wrapf(kind Kind, cause error, format string, args ...any) error {
	return Wrap(kind, fmt.Sprintf(format, args...), cause)
}

// Silent marks a failure whose details were already written to the user.
// main only sets the exit code for it.
func Silent(kind Kind, cause error) error {
	return &ExitError{kind: kind, code: 1, cause: cause, silent: true}
}

// WithHint attaches a follow-up line printed after the error message.
// Errors that are not ExitErrors are classified as collaborator failures.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		cp := *ee
		cp.hint = hint
		return &cp
	}
	return &ExitError{kind: CollaboratorFailure, code: 1, cause: err, hint: hint}
}

// ExitCodeOf extracts an exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return normalize(ec.ExitCode())
	}
	return 1
}

// KindOf returns the failure kind of err, or CollaboratorFailure when err
// carries none.
func KindOf(err error) Kind {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.kind
	}
	return CollaboratorFailure
}

// HintOf returns the hint attached to err, if any.
func HintOf(err error) string {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.hint
	}
	return ""
}

// IsSilent reports whether main should skip printing err.
func IsSilent(err error) bool {
	var ee *ExitError
	return errors.As(err, &ee) && ee.silent
}

func normalize(code int) int {
	// Exit code 0 means success; errors should never be 0.
	if code <= 0 {
		return 1
	}
	return code
}
