package google

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// Sheets API failures that callers may want to tell apart.
var (
	ErrUnauthorized = errors.New("sheets: credentials rejected")
	ErrForbidden    = errors.New("sheets: service account has no access to the spreadsheet")
	ErrNotFound     = errors.New("sheets: spreadsheet or range not found")
	ErrRateLimited  = errors.New("sheets: quota exceeded")
)

type statusClass struct {
	sentinel error
	kind     domain.ErrorKind
}

var statusClasses = map[int]statusClass{
	http.StatusUnauthorized:    {ErrUnauthorized, domain.KindTransport},
	http.StatusForbidden:       {ErrForbidden, domain.KindTransport},
	http.StatusNotFound:        {ErrNotFound, domain.KindNotFound},
	http.StatusTooManyRequests: {ErrRateLimited, domain.KindTransport},
}

// WrapError converts a Sheets API error into a domain.OpError. Known
// statuses also match their sentinel through errors.Is.
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if class, ok := statusClasses[statusCode(err)]; ok {
		return domain.NewOpError(operation, class.kind, errors.Join(class.sentinel, err))
	}
	return domain.NewOpError(operation, domain.KindTransport, err)
}

// IsNotFound reports whether err is a missing spreadsheet, sheet or range.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || statusCode(err) == http.StatusNotFound
}

// IsRateLimited reports whether err is a quota rejection.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited) || statusCode(err) == http.StatusTooManyRequests
}

func statusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// retryAfter returns the Retry-After delay of a quota rejection, or zero
// when the response carried none.
func retryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
