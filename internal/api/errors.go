package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	// Op is the operation being performed, e.g. "list branches".
	Op         string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	switch e.StatusCode {
	case http.StatusNotFound:
		return fmt.Sprintf("%s: %s not found", e.Op, e.URL)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Sprintf("%s: access to %s denied (status %d), check the configured credentials", e.Op, e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("%s: unexpected status code %d from %s", e.Op, e.StatusCode, e.URL)
	}
}

// IntegrityError is returned when a record from the API lacks a field
// required to build a revision. The record is unusable.
type IntegrityError struct {
	// Record describes the record, e.g. "branch main" or "pull request #4".
	Record string
	Field  string
	// Value is set when the field is present but malformed.
	Value string
}

func (e *IntegrityError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: malformed %s %q", e.Record, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: missing %s", e.Record, e.Field)
}

// IsNotFound returns true if the error indicates the requested record does not exist.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsUnauthorized returns true if the error indicates missing or rejected credentials.
func IsUnauthorized(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden
	}
	return false
}

// IsIntegrity returns true if the error is caused by an incomplete record.
func IsIntegrity(err error) bool {
	var integrityErr *IntegrityError
	return errors.As(err, &integrityErr)
}
