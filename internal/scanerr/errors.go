// Package scanerr defines the error markers shared by the scan pipeline.
//
// Components wrap failures with Wrap so callers can classify them with
// errors.Is while still seeing the underlying cause.
package scanerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrVocabularyLoad = errors.New("vocabulary load error")
	ErrDocumentRead   = errors.New("document read error")
	ErrDecode         = errors.New("document decode error")
	ErrReportWrite    = errors.New("report write error")
	ErrRootMissing    = errors.New("corpus root unavailable")
	ErrConfiguration  = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrDocumentRead
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short classification for err suitable for persistence.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrDocumentRead):
		return "read"
	case errors.Is(err, ErrVocabularyLoad):
		return "vocabulary"
	case errors.Is(err, ErrReportWrite):
		return "report"
	case errors.Is(err, ErrRootMissing):
		return "root"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return "internal"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "scan failure"
	}
	return strings.Join(parts, ": ")
}
