// Package reports implements the asset-management reporting operations built
// on top of the Table API client. Each operation validates its parameters,
// builds a filter expression, fetches records, normalizes them, and computes
// a small derived metric.
//
// Operations return (payload, error). The error is either a *ValidationError
// or a typed *snow.Error; FailureFrom converts any of them into the stable
// {"error","error_code"} envelope that callers and integrations depend on.
// This package is the boundary where a remote-API failure stops propagating:
// nothing here panics or lets an error escape untyped.
package reports

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/opsforge/snowassets/pkg/snow"
)

// Stable error codes other tools and integrations branch on.
const (
	CodeValidation = "SN_VALIDATION_ERROR"
	CodeAuth       = "SN_AUTH_ERROR"
	CodeRateLimit  = "SN_RATE_LIMIT"
	CodeNotFound   = "SN_NOT_FOUND"
	CodeQuery      = "SN_QUERY_ERROR"
)

// Failure is the error envelope a reporting operation produces instead of a
// success payload.
type Failure struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

// ValidationError marks a rejected input parameter, before any remote call
// is made.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// ErrorCode maps an operation error to its stable code. Anything that is
// neither a validation failure nor a specifically-coded client error kind
// falls through to SN_QUERY_ERROR.
func ErrorCode(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return CodeValidation
	}

	var snowErr *snow.Error
	if errors.As(err, &snowErr) {
		switch snowErr.Kind {
		case snow.KindAuth:
			return CodeAuth
		case snow.KindRateLimit:
			return CodeRateLimit
		case snow.KindNotFound:
			return CodeNotFound
		}
	}
	return CodeQuery
}

// FailureFrom wraps an operation error in the stable envelope.
func FailureFrom(err error) Failure {
	return Failure{Error: err.Error(), ErrorCode: ErrorCode(err)}
}

func validateLimit(limit int) error {
	if err := validation.Validate(limit, validation.Min(1)); err != nil {
		return &ValidationError{msg: "limit must be >= 1"}
	}
	return nil
}

func validateMin(name string, value int) error {
	if err := validation.Validate(value, validation.Min(1)); err != nil {
		return &ValidationError{msg: fmt.Sprintf("%s must be >= 1", name)}
	}
	return nil
}

// joinQuery builds a ^-joined filter expression, skipping empty segments.
func joinQuery(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "^")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// daysSince returns whole days between a date field and today, or nil when
// the field does not parse.
func daysSince(f snow.Field, today time.Time) *int {
	d := snow.ParseDate(f)
	if d == nil {
		return nil
	}
	days := int(startOfDay(today).Sub(d.Time).Hours() / 24)
	return &days
}

// startOfDay truncates a timestamp to its calendar day in UTC so day counts
// do not wobble with the time of day the report runs.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}
