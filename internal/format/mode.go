// Package format implements the output-format-set subsystem: a registry of
// per-kind column declarations, a selector that resolves a (kind, mode) pair
// to a concrete column set, a projector that extracts column values from raw
// metadata elements, and renderers for each output mode.
package format

import (
	"fmt"
	"strings"
)

// OutputMode represents the requested rendering style for metadata elements.
type OutputMode string

const (
	// ModeJSON returns projected rows marshaled as a JSON array.
	ModeJSON OutputMode = "JSON"

	// ModeDict returns projected rows as plain column/value mappings.
	ModeDict OutputMode = "DICT"

	// ModeList renders one compact row per element under a header line.
	ModeList OutputMode = "LIST"

	// ModeMD renders a bare block of bullet lines per element.
	ModeMD OutputMode = "MD"

	// ModeForm renders a titled form block per element.
	ModeForm OutputMode = "FORM"

	// ModeReport renders a titled report block with narrative framing.
	ModeReport OutputMode = "REPORT"

	// ModeMermaid extracts only the embedded diagram text.
	ModeMermaid OutputMode = "MERMAID"

	// ModeAll is the wildcard used in Format declarations. It is never a
	// valid requested mode; a Format declaring it supports every mode.
	ModeAll OutputMode = "ALL"
)

// requestableModes lists the modes a caller may ask for, in documentation order.
var requestableModes = []OutputMode{
	ModeJSON, ModeDict, ModeList, ModeMD, ModeForm, ModeReport, ModeMermaid,
}

// ParseOutputMode parses a mode string into an OutputMode value.
// Matching is case-insensitive; ALL is rejected because it is only
// meaningful inside a Format declaration.
func ParseOutputMode(s string) (OutputMode, error) {
	mode := OutputMode(strings.ToUpper(strings.TrimSpace(s)))
	for _, m := range requestableModes {
		if mode == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid output mode: %q (expected one of %s)", s, modeList())
}

// String returns the string representation of the mode.
func (m OutputMode) String() string {
	return string(m)
}

// IsText reports whether the mode produces a human-oriented text block
// rather than structured data.
func (m OutputMode) IsText() bool {
	switch m {
	case ModeList, ModeMD, ModeForm, ModeReport:
		return true
	default:
		return false
	}
}

// modeList returns the requestable modes joined for error messages.
func modeList() string {
	parts := make([]string, len(requestableModes))
	for i, m := range requestableModes {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// DefaultMode is the output mode used when none is specified.
const DefaultMode = ModeList
