// Package report renders a finished BatchResult as text or JSON.
package report

import (
	"fmt"
	"strings"

	"github.com/five82/audioprobe/internal/batch"
)

// Format selects the report representation.
type Format string

const (
	// FormatText is the human-readable report.
	FormatText Format = "text"
	// FormatJSON is the structured report.
	FormatJSON Format = "json"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown report format %q, valid options: text, json", s)
	}
}

// Render produces the report bytes for result. It does not modify result
// and returns identical bytes for identical input; callers that need a
// stable file order should call result.SortByPath first.
func Render(result *batch.BatchResult, format Format) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("render: nil result")
	}
	switch format {
	case FormatText:
		return renderText(result), nil
	case FormatJSON:
		return renderJSON(result)
	default:
		return nil, fmt.Errorf("render: unknown format %q", format)
	}
}
