package userconfig

import (
	j "github.com/goccy/go-json"
)

// Result is either a validated value or a failure carrying one Issue.
// Exactly one case holds; the zero Result is a failure with an empty message
// and should not be used.
type Result[T any] struct {
	value T
	issue Issue
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] { return Result[T]{value: v, ok: true} }

// Fail wraps a failure.
func Fail[T any](iss Issue) Result[T] { return Result[T]{issue: iss} }

// ResultOf folds a (value, error) pair into a Result. Errors that are not
// Issues become a parse_error issue carrying the error text.
func ResultOf[T any](v T, err error) Result[T] {
	if err == nil {
		return Ok(v)
	}
	if iss, ok := AsIssues(err); ok {
		if first, found := iss.First(); found {
			return Fail[T](first)
		}
	}
	return Fail[T](Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
}

// OK reports whether r holds a value.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the value and true on success, the zero T and false otherwise.
func (r Result[T]) Value() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Message returns the error text, or "" on success.
func (r Result[T]) Message() string {
	if r.ok {
		return ""
	}
	return r.issue.Message
}

// Issue returns the failure details and true on failure.
func (r Result[T]) Issue() (Issue, bool) { return r.issue, !r.ok }

// Err returns nil on success and the failure as Issues otherwise.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return singleIssue(r.issue)
}

// Unwrap converts r back to Go's (value, error) convention.
func (r Result[T]) Unwrap() (T, error) { return r.value, r.Err() }

type okWire[T any] struct {
	OK    bool `json:"ok"`
	Value T    `json:"value"`
}

type failWire struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// MarshalJSON emits {"ok":true,"value":...} or {"ok":false,"error":"..."}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return j.Marshal(okWire[T]{OK: true, Value: r.value})
	}
	return j.Marshal(failWire{OK: false, Error: r.issue.Message})
}
