package cbd

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected Kind
	}{
		{
			name:     "service unavailable is transient",
			code:     http.StatusServiceUnavailable,
			expected: KindTransient,
		},
		{
			name:     "not found",
			code:     http.StatusNotFound,
			expected: KindNotFound,
		},
		{
			name:     "unauthorized is auth",
			code:     http.StatusUnauthorized,
			expected: KindAuth,
		},
		{
			name:     "forbidden is auth",
			code:     http.StatusForbidden,
			expected: KindAuth,
		},
		{
			name:     "bad request is protocol",
			code:     http.StatusBadRequest,
			expected: KindProtocol,
		},
		{
			name:     "conflict is protocol",
			code:     http.StatusConflict,
			expected: KindProtocol,
		},
		{
			name:     "internal server error is protocol",
			code:     http.StatusInternalServerError,
			expected: KindProtocol,
		},
		{
			name:     "bad gateway is protocol",
			code:     http.StatusBadGateway,
			expected: KindProtocol,
		},
		{
			name:     "gateway timeout is protocol",
			code:     http.StatusGatewayTimeout,
			expected: KindProtocol,
		},
		{
			name:     "too many requests is protocol",
			code:     http.StatusTooManyRequests,
			expected: KindProtocol,
		},
		{
			name:     "zero code is protocol",
			code:     0,
			expected: KindProtocol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.code)
			if result != tt.expected {
				t.Errorf("Classify(%d) = %v, want %v", tt.code, result, tt.expected)
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "plain transport error",
			err:      errors.New("connection refused"),
			expected: KindProtocol,
		},
		{
			name:     "api error 503",
			err:      Error{Code: http.StatusServiceUnavailable, Message: "region partitioned"},
			expected: KindTransient,
		},
		{
			name:     "wrapped api error 404",
			err:      fmt.Errorf("failed to get cluster: %w", Error{Code: http.StatusNotFound, Message: "no such cluster"}),
			expected: KindNotFound,
		},
		{
			name:     "wrapped api error 401",
			err:      fmt.Errorf("failed to list flavors: %w", Error{Code: http.StatusUnauthorized, Message: "token expired"}),
			expected: KindAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyError(tt.err)
			if result != tt.expected {
				t.Errorf("ClassifyError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("something went wrong"),
			expected: false,
		},
		{
			name:     "api 503",
			err:      Error{Code: http.StatusServiceUnavailable, Message: "region partitioned"},
			expected: true,
		},
		{
			name:     "api 500 (not transient)",
			err:      Error{Code: http.StatusInternalServerError, Message: "boom"},
			expected: false,
		},
		{
			name:     "wrapped api 503",
			err:      fmt.Errorf("failed to get cluster: %w", Error{Code: http.StatusServiceUnavailable, Message: "partitioned"}),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsTransient(tt.err)
			if result != tt.expected {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "api 404",
			err:      Error{Code: http.StatusNotFound, Message: "no such cluster"},
			expected: true,
		},
		{
			name:     "api other error",
			err:      Error{Code: http.StatusServiceUnavailable, Message: "partitioned"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsNotFound(tt.err)
			if result != tt.expected {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestIsAuthFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "api 401",
			err:      Error{Code: http.StatusUnauthorized, Message: "token expired"},
			expected: true,
		},
		{
			name:     "api 403",
			err:      Error{Code: http.StatusForbidden, Message: "wrong tenant"},
			expected: true,
		},
		{
			name:     "api other error",
			err:      Error{Code: http.StatusNotFound, Message: "not found"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsAuthFailure(tt.err)
			if result != tt.expected {
				t.Errorf("IsAuthFailure(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestIsConflict(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "api 409",
			err:      Error{Code: http.StatusConflict, Message: `ssh key "cbd-key" already exists`},
			expected: true,
		},
		{
			name:     "api other error",
			err:      Error{Code: http.StatusNotFound, Message: "not found"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsConflict(tt.err)
			if result != tt.expected {
				t.Errorf("IsConflict(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestIsEntityNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "entity not found",
			err:      &EntityNotFoundError{Entity: "flavor", Name: "Giant Hadoop Instance"},
			expected: true,
		},
		{
			name:     "wrapped entity not found",
			err:      fmt.Errorf("failed to resolve flavor: %w", &EntityNotFoundError{Entity: "flavor", Name: "x"}),
			expected: true,
		},
		{
			name:     "api 404 is not an entity error",
			err:      Error{Code: http.StatusNotFound, Message: "not found"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsEntityNotFound(tt.err)
			if result != tt.expected {
				t.Errorf("IsEntityNotFound(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}
