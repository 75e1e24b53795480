package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed API call so callers can react without
// inspecting status codes themselves.
type Kind int

const (
	// KindNetwork means no response reached the client at all.
	KindNetwork Kind = iota
	// KindAuth is a 401: the credential is missing, invalid or expired.
	KindAuth
	// KindNotFound is a 404 for a concrete resource.
	KindNotFound
	// KindValidation is any other 4xx carrying a server message,
	// e.g. a duplicate email on registration.
	KindValidation
	// KindServer is a 5xx.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is the uniform shape every failed API call is normalized into.
// StatusCode is zero for network failures.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsAuth reports whether err is an authorization failure. The session
// bootstrapper uses this to decide on an automatic logout.
func IsAuth(err error) bool { return IsKind(err, KindAuth) }

// IsNetwork reports whether err is a transport-level failure with no response.
func IsNetwork(err error) bool { return IsKind(err, KindNetwork) }

func kindFromStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized:
		return KindAuth
	case code == http.StatusNotFound:
		return KindNotFound
	case code >= 500:
		return KindServer
	default:
		return KindValidation
	}
}
