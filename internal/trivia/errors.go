package trivia

import (
	"errors"
	"fmt"
)

// Kind identifies the failure category of a trivia API error. Callers are
// expected to branch on kinds, never on message text.
type Kind int

const (
	// KindGeneric covers transport and protocol failures: connection
	// errors, timeouts, malformed bodies, unexpected HTTP statuses and
	// unknown response codes.
	KindGeneric Kind = iota
	// KindNoResults means the API has too few questions for the query.
	KindNoResults
	// KindInvalidParameter means the request arguments were rejected,
	// either by the API or by client-side validation.
	KindInvalidParameter
	// KindTokenNotFound means the session token is unknown to the server.
	KindTokenNotFound
	// KindTokenEmpty means the session token has already served every
	// question matching the query. This is the only kind that triggers
	// the automatic reset-and-retry protocol.
	KindTokenEmpty
	// KindToken covers the remaining token failures: blank tokens in
	// responses and reset attempts without an active token.
	KindToken
	// KindRateLimit means the API rejected the request for rate limiting.
	KindRateLimit
	// KindCategory wraps failures of the category fetch.
	KindCategory
)

// Error is the error type surfaced by the trivia API client.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is a trivia Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsTokenError reports whether err is any session-token failure.
func IsTokenError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindToken || e.Kind == KindTokenNotFound || e.Kind == KindTokenEmpty
}
