package github

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v74/github"
)

// Resource hints recognized by Map. Callers inside this repo always pass an
// explicit hint; the keyword fallback below only fires for untagged call sites.
const (
	HintIssue       = "issue"
	HintRepository  = "repository"
	HintComment     = "comment"
	HintLabel       = "label"
	HintBranch      = "branch"
	HintContentFile = "content_file"
	HintMilestone   = "milestone"
)

// keywordHints is the fallback search order when neither the caller nor the
// response body names a resource. Order matters: "issue comment not found"
// resolves to issue, not comment.
var keywordHints = []string{HintIssue, HintRepository, HintComment, HintLabel}

// Map converts a go-github error into a domain *Error. hint optionally names
// the resource type involved in the failing call and sharpens NotFound
// messages. Map never returns nil.
func Map(err error, hint string) *Error {
	switch e := err.(type) {
	case *gh.RateLimitError:
		return mapRateLimit(e)
	case *gh.AbuseRateLimitError:
		return mapAbuseRateLimit(e)
	case *gh.ErrorResponse:
		return mapErrorResponse(e, hint)
	case *Error:
		return e
	}
	slog.Error("unexpected GitHub error", "error", err)
	return &Error{Kind: KindUnknown, Message: err.Error(), cause: err}
}

func mapRateLimit(e *gh.RateLimitError) *Error {
	reset := e.Rate.Reset.Time
	slog.Error("GitHub rate limit exceeded",
		"remaining", e.Rate.Remaining, "limit", e.Rate.Limit, "reset", reset)

	msg := fmt.Sprintf("API rate limit exceeded (%d/%d calls remaining). Reset at %s",
		e.Rate.Remaining, e.Rate.Limit, reset.UTC().Format("2006-01-02 15:04:05 UTC"))
	return &Error{
		Kind:    KindRateLimit,
		Message: msg,
		Data:    map[string]any{"message": e.Message},
		ResetAt: &reset,
		cause:   e,
	}
}

func mapAbuseRateLimit(e *gh.AbuseRateLimitError) *Error {
	slog.Error("GitHub secondary rate limit hit", "retry_after", e.RetryAfter)

	msg := "API rate limit exceeded"
	var resetAt *time.Time
	if e.RetryAfter != nil {
		t := time.Now().Add(*e.RetryAfter)
		resetAt = &t
		msg = fmt.Sprintf("%s. Reset at %s", msg, t.UTC().Format("2006-01-02 15:04:05 UTC"))
	} else {
		t := time.Now().Add(time.Minute)
		resetAt = &t
	}
	return &Error{
		Kind:    KindRateLimit,
		Message: msg,
		Data:    map[string]any{"message": e.Message},
		ResetAt: resetAt,
		cause:   e,
	}
}

func mapErrorResponse(e *gh.ErrorResponse, hint string) *Error {
	status := 0
	if e.Response != nil {
		status = e.Response.StatusCode
	}
	msg := e.Message
	if msg == "" {
		msg = e.Error()
	}
	data := errorData(e)

	slog.Error("GitHub API error", "status", status, "message", msg, "errors", len(e.Errors))

	resource := resolveResource(e, hint, msg)

	switch status {
	case http.StatusUnauthorized:
		return &Error{
			Kind:    KindAuthentication,
			Message: "Authentication failed. Please verify your GitHub token.",
			Data:    data,
			cause:   e,
		}
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(msg), "rate limit") {
			return forbiddenRateLimit(e, data)
		}
		return &Error{
			Kind:    KindPermission,
			Message: "Permission denied: Resource not accessible by integration",
			Data:    data,
			cause:   e,
		}
	case http.StatusNotFound:
		notFound := "Not Found"
		if resource != "" {
			notFound = titleCase(resource) + " not found"
		}
		return &Error{Kind: KindNotFound, Message: notFound, Data: data, cause: e}
	case http.StatusConflict:
		return &Error{Kind: KindConflict, Message: msg, Data: data, cause: e}
	case http.StatusUnprocessableEntity:
		return &Error{
			Kind:    KindValidation,
			Message: formatValidationMessage(msg, e.Errors),
			Data:    data,
			cause:   e,
		}
	default:
		return &Error{
			Kind:    KindUnknown,
			Message: fmt.Sprintf("GitHub API Error (%d): %s", status, msg),
			Data:    data,
			cause:   e,
		}
	}
}

// forbiddenRateLimit handles 403 responses whose message mentions the rate
// limit but that go-github did not surface as *RateLimitError. The reset
// header may be absent.
func forbiddenRateLimit(e *gh.ErrorResponse, data map[string]any) *Error {
	msg := "API rate limit exceeded"
	var resetAt *time.Time
	if e.Response != nil {
		if raw := e.Response.Header.Get("X-RateLimit-Reset"); raw != "" {
			if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
				t := time.Unix(secs, 0)
				resetAt = &t
				msg = fmt.Sprintf("%s. Reset at %s", msg, t.UTC().Format("2006-01-02 15:04:05 UTC"))
			}
		}
	}
	return &Error{Kind: KindRateLimit, Message: msg, Data: data, ResetAt: resetAt, cause: e}
}

// resolveResource picks the resource type for messaging: the caller hint wins,
// then the structured body, then a keyword scan over the message text.
func resolveResource(e *gh.ErrorResponse, hint, msg string) string {
	if hint != "" {
		return hint
	}
	for _, ge := range e.Errors {
		if ge.Resource != "" {
			return strings.ToLower(ge.Resource)
		}
	}
	lower := strings.ToLower(msg)
	for _, kw := range keywordHints {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

func errorData(e *gh.ErrorResponse) map[string]any {
	data := map[string]any{"message": e.Message}
	if len(e.Errors) > 0 {
		var errs []map[string]any
		for _, ge := range e.Errors {
			errs = append(errs, map[string]any{
				"resource": ge.Resource,
				"field":    ge.Field,
				"code":     ge.Code,
				"message":  ge.Message,
			})
		}
		data["errors"] = errs
	}
	if e.DocumentationURL != "" {
		data["documentation_url"] = e.DocumentationURL
	}
	return data
}

// formatValidationMessage turns structured 422 errors into one bullet per
// field; without structured errors the raw message passes through.
func formatValidationMessage(msg string, errs []gh.Error) string {
	var lines []string
	for _, ge := range errs {
		if ge.Field == "" {
			continue
		}
		code := ge.Code
		if code == "" {
			code = "invalid"
		}
		message := ge.Message
		if message == "" {
			message = "is invalid"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", ge.Field, message, code))
	}
	if len(lines) == 0 {
		return msg
	}
	return "Validation failed:\n" + strings.Join(lines, "\n")
}

// titleCase capitalizes each underscore- or space-separated word, so a
// content_file hint renders as "Content File not found".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
