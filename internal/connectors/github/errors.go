package github

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// GitHub-specific errors.
var (
	// ErrNotAFile indicates a contents lookup resolved to a directory.
	ErrNotAFile = errors.New("github: path is a directory, not a file")

	// ErrNoDefaultBranch indicates the repository payload lacks a default branch.
	ErrNoDefaultBranch = errors.New("github: repository has no default branch")
)

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return domain.KindOf(err) == domain.KindNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// wrapError converts go-github errors into classified domain errors.
func wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		kind := domain.KindTransport
		if apiErr.StatusCode == http.StatusNotFound {
			kind = domain.KindNotFound
		}
		return domain.NewOpError(operation, kind, apiErr)
	}

	if isDecodeError(err) {
		return domain.NewOpError(operation, domain.KindDecode, err)
	}

	return domain.NewOpError(operation, domain.KindTransport, err)
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var b64Err base64.CorruptInputError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &b64Err) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
