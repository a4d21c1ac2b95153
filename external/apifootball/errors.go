package apifootball

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// Failure kinds. Every error returned by Client.Get is a *CallError whose
// Kind is one of these, so callers can branch with errors.Is.
var (
	ErrTimeout          = crerr.New("request timed out")
	ErrRateLimited      = crerr.New("rate limited")
	ErrUnauthorized     = crerr.New("authentication failed")
	ErrUnexpectedStatus = crerr.New("unexpected http status")
	ErrAPIReported      = crerr.New("api reported errors")
	ErrTransport        = crerr.New("transport failure")
	ErrMalformed        = crerr.New("malformed response")
	ErrRetriesExhausted = crerr.New("retries exhausted")
)

// CallError describes why one provider call failed.
type CallError struct {
	Endpoint    string
	Status      int
	Attempt     int
	MaxAttempts int
	Kind        error
	Detail      string
	Cause       error
}

func (e *CallError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	fmt.Fprintf(&b, " endpoint=%s", e.Endpoint)
	if e.MaxAttempts > 0 {
		fmt.Fprintf(&b, " attempt=%d/%d", e.Attempt, e.MaxAttempts)
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " status=%d", e.Status)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *CallError) Is(target error) bool {
	return e.Kind == target
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether another attempt may succeed.
func (e *CallError) Retryable() bool {
	return e.Kind == ErrRateLimited || e.Kind == ErrTimeout
}

// FieldError marks a source item that lacks a required field or carries it
// with an unusable type. The item is skipped; extraction continues.
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Path, e.Reason)
}

func malformed(endpoint, detail string) error {
	return &CallError{Endpoint: endpoint, Kind: ErrMalformed, Detail: detail}
}
