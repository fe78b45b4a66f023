package link

import (
	"fmt"
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
)

// ParseError is the terminal decode failure: no canonical record is produced
// alongside it. Code is stable per failure class so callers can branch on it.
type ParseError struct {
	AppError model.AppError
	Cause    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// Failure codes. Each scheme gets its own invalid-link code so the UI can
// say exactly which format was being decoded when it broke.
const (
	CodeEmptyInput        = "LINK_EMPTY"
	CodeUnsupportedScheme = "LINK_UNSUPPORTED_SCHEME"
)

func invalidCode(scheme string) string {
	return strings.ToUpper(scheme) + "_LINK_INVALID"
}

func newParseError(scheme, code, message, snippet, hint string, cause error) error {
	return &ParseError{
		AppError: model.AppError{
			Code:    code,
			Message: message,
			Stage:   "parse_link",
			Scheme:  scheme,
			Snippet: truncateSnippet(snippet, 200),
			Hint:    hint,
		},
		Cause: cause,
	}
}

func invalidLink(scheme, message, snippet string, cause error) error {
	return newParseError(scheme, invalidCode(scheme), message, snippet, "", cause)
}

func truncateSnippet(s string, max int) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max]
}
