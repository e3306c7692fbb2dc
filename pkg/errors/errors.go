// ================== pkg/errors/errors.go =================
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDestinationUnknown = errors.New("destination not recognized")
	ErrUpstreamDown       = errors.New("upstream service unavailable")
	ErrJobNotFound        = errors.New("job not found")
	ErrBadRequest         = errors.New("bad request")
	ErrInternal           = errors.New("internal server error")
)

// AggregateError reports one or more failed fan-out branches.
// Branches maps a branch name ("profile", "candidates") to its failure reason.
type AggregateError struct {
	Branches map[string]string
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Branches))
	for branch, reason := range e.Branches {
		parts = append(parts, fmt.Sprintf("%s: %s", branch, reason))
	}
	sort.Strings(parts)
	return "aggregation failed: " + strings.Join(parts, "; ")
}

// NewAggregateError builds an AggregateError from branch failures, skipping
// branches that succeeded. Returns nil when every branch succeeded.
func NewAggregateError(branches map[string]error) *AggregateError {
	out := make(map[string]string)
	for branch, err := range branches {
		if err != nil {
			out[branch] = err.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return &AggregateError{Branches: out}
}

// AsAggregate extracts an *AggregateError from err, if present.
func AsAggregate(err error) (*AggregateError, bool) {
	var agg *AggregateError
	if errors.As(err, &agg) {
		return agg, true
	}
	return nil, false
}
