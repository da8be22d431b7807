package github

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind classifies a GitHub API failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindPermission
	KindNotFound
	KindValidation
	KindRateLimit
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "Authentication"
	case KindPermission:
		return "Permission"
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "Validation"
	case KindRateLimit:
		return "RateLimit"
	case KindConflict:
		return "Conflict"
	default:
		return "Unknown"
	}
}

// Sentinel errors surfaced through Error.Unwrap so callers can use errors.Is.
var (
	// ErrRetryLimitExceeded is returned when a backoff delay is requested
	// past the configured attempt budget.
	ErrRetryLimitExceeded = errors.New("maximum retry attempts exceeded")

	// ErrInvalidParameter is returned for pagination parameters outside the
	// range the GitHub API accepts.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Error is the domain error produced by this package. It replaces raw
// transport failures with a kind, a human-readable message, and the raw
// response body for diagnostics. ResetAt is set only for KindRateLimit.
type Error struct {
	Kind    Kind
	Message string
	Data    map[string]any
	ResetAt *time.Time

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates a domain error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// IsNotFound reports whether err is a NotFound domain error.
func IsNotFound(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindNotFound
}

// IsRateLimit reports whether err is a RateLimit domain error.
func IsRateLimit(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindRateLimit
}

// FormatError renders an error for the tool response boundary. Domain errors
// render as "<Kind>: <message>", with validation details and rate limit reset
// times appended when present. Other errors render through Error().
func FormatError(err error) string {
	var de *Error
	if !errors.As(err, &de) {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(de.Kind.String())
	b.WriteString(": ")
	b.WriteString(de.Message)

	if de.Kind == KindValidation {
		if details := validationDetails(de.Data); details != "" && !strings.Contains(de.Message, details) {
			b.WriteString("\n")
			b.WriteString(details)
		}
	}
	if de.Kind == KindRateLimit && de.ResetAt != nil {
		fmt.Fprintf(&b, " (resets at %s)", de.ResetAt.UTC().Format(time.RFC3339))
	}
	return b.String()
}

// validationDetails extracts "- field: message (code)" bullets from the raw
// error body, if structured errors were present.
func validationDetails(data map[string]any) string {
	if data == nil {
		return ""
	}
	raw, ok := data["errors"].([]map[string]any)
	if !ok {
		return ""
	}
	var lines []string
	for _, e := range raw {
		field, _ := e["field"].(string)
		if field == "" {
			continue
		}
		code, _ := e["code"].(string)
		if code == "" {
			code = "invalid"
		}
		message, _ := e["message"].(string)
		if message == "" {
			message = "is invalid"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", field, message, code))
	}
	return strings.Join(lines, "\n")
}
