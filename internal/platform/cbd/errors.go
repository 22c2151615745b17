package cbd

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a structured error returned by the control-plane API.
type Error struct {
	Code    int // HTTP status code reported by the API
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("cbd: %s (code %d)", e.Message, e.Code)
}

// Kind classifies an API error for retry-vs-abort decisions.
type Kind int

const (
	// KindProtocol is any provider fault without a more specific
	// classification. Fatal, propagated verbatim.
	KindProtocol Kind = iota
	// KindTransient means the provider is temporarily unable to serve the
	// request. Safe to retry by re-polling; never surfaced as a failure.
	KindTransient
	// KindNotFound means the referenced entity does not exist. Fatal when
	// the entity is expected to exist, benign on delete.
	KindNotFound
	// KindAuth means the credentials were rejected. Fatal, no retry.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindNotFound:
		return "not-found"
	case KindAuth:
		return "auth"
	default:
		return "protocol"
	}
}

// Classify maps an API status code to its error kind. 503 is the only
// transient signal the control plane emits; 404 marks a missing entity;
// 401 and 403 mark rejected credentials. Everything else is an
// unclassified provider fault.
func Classify(code int) Kind {
	switch code {
	case http.StatusServiceUnavailable:
		return KindTransient
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	default:
		return KindProtocol
	}
}

// ClassifyError classifies err if it is (or wraps) an API Error.
// Non-API errors, such as transport failures, classify as KindProtocol.
func ClassifyError(err error) Kind {
	var apiErr Error
	if errors.As(err, &apiErr) {
		return Classify(apiErr.Code)
	}
	return KindProtocol
}

// isAPIErrorCode checks if the error is an API error with one of the given
// status codes.
func isAPIErrorCode(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var apiErr Error
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates the entity was not found.
func IsNotFound(err error) bool {
	return isAPIErrorCode(err, http.StatusNotFound)
}

// IsTransient checks if an error indicates a temporary provider outage.
func IsTransient(err error) bool {
	return isAPIErrorCode(err, http.StatusServiceUnavailable)
}

// IsAuthFailure checks if an error indicates rejected credentials.
func IsAuthFailure(err error) bool {
	return isAPIErrorCode(err, http.StatusUnauthorized, http.StatusForbidden)
}

// IsConflict checks if an error indicates the entity already exists.
func IsConflict(err error) bool {
	return isAPIErrorCode(err, http.StatusConflict)
}

// EntityNotFoundError reports that a named entity could not be resolved
// against the provider's catalog.
type EntityNotFoundError struct {
	Entity string
	Name   string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Name)
}

// IsEntityNotFound checks if an error is an EntityNotFoundError.
func IsEntityNotFound(err error) bool {
	var enf *EntityNotFoundError
	return errors.As(err, &enf)
}
