package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidURL indicates an input that is neither a user nor a repository URL.
	ErrInvalidURL = errors.New("invalid GitHub URL")

	// ErrScanFailed indicates the repository tree could not be scanned.
	ErrScanFailed = errors.New("failed to process repo data")

	// ErrEmptyRecord indicates a record with no data was about to reach a sink.
	ErrEmptyRecord = errors.New("empty record")

	// ErrMissingCommit indicates the commit payload lacks required fields.
	ErrMissingCommit = errors.New("commit payload incomplete")

	// ErrConfigInvalid indicates the configuration is missing required values.
	ErrConfigInvalid = errors.New("invalid configuration")
)

// ErrorKind classifies a failure of an external call.
type ErrorKind int

// Error kinds.
const (
	// KindUnknown is an error that carries no classification.
	KindUnknown ErrorKind = iota

	// KindTransport is a network error or an unsuccessful HTTP status.
	KindTransport

	// KindDecode is a malformed payload.
	KindDecode

	// KindInvalidInput is an unroutable or malformed input.
	KindInvalidInput

	// KindNotFound is a missing remote resource.
	KindNotFound
)

// String returns the string representation.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// OpError is a classified failure of one operation.
type OpError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

// NewOpError wraps err as a failure of op.
func NewOpError(op string, kind ErrorKind, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Err: err}
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first OpError in err's chain.
func KindOf(err error) ErrorKind {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidURL) {
		return KindInvalidInput
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindUnknown
}
