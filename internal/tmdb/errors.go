package tmdb

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the client can return.
type ErrorKind int

const (
	// KindInvalidRequest means the input was malformed or disallowed
	// (empty search query, unbuildable URL). No network I/O was attempted.
	KindInvalidRequest ErrorKind = iota

	// KindNoData means the transfer succeeded but the body was empty.
	KindNoData

	// KindDecodingFailed means a body was present but did not match the
	// expected schema.
	KindDecodingFailed

	// KindNetwork wraps an underlying transport failure (DNS, timeout,
	// connection reset, or a server error that survived retries).
	KindNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid request"
	case KindNoData:
		return "no data"
	case KindDecodingFailed:
		return "decoding failed"
	case KindNetwork:
		return "network error"
	default:
		return "unknown"
	}
}

// Error is the only error type returned across the client's public boundary.
type Error struct {
	Kind ErrorKind
	Op   string // logical operation, e.g. "search"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tmdb: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("tmdb: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a client Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == kind
}

func invalidRequest(op string, cause error) *Error {
	return &Error{Kind: KindInvalidRequest, Op: op, Err: cause}
}

func noData(op string) *Error {
	return &Error{Kind: KindNoData, Op: op}
}

func decodingFailed(op string, cause error) *Error {
	return &Error{Kind: KindDecodingFailed, Op: op, Err: cause}
}

func networkError(op string, cause error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Err: cause}
}
