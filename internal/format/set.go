package format

import (
	"errors"
	"fmt"
)

// Column declares one displayed field: a label, the source key used to pull
// the value out of a flattened element, and whether the value is long-form
// text that should render as a wrapped block rather than a short field.
type Column struct {
	Name string `json:"name" yaml:"name"`
	Key  string `json:"key" yaml:"key"`
	Long bool   `json:"format,omitempty" yaml:"format,omitempty"`
}

// Format binds an ordered column list to the output modes it supports.
// Column order is display order and is preserved through projection and
// rendering. A Modes entry of ALL matches every requested mode.
type Format struct {
	Modes   []OutputMode `json:"types" yaml:"types"`
	Columns []Column     `json:"columns" yaml:"columns"`
}

// Supports reports whether this Format covers the requested mode.
func (f *Format) Supports(mode OutputMode) bool {
	for _, m := range f.Modes {
		if m == ModeAll || m == mode {
			return true
		}
	}
	return false
}

// ActionSpec describes which search function and parameters apply when a
// format set is used to drive a find operation.
type ActionSpec struct {
	Function       string            `json:"function" yaml:"function"`
	RequiredParams []string          `json:"required_params,omitempty" yaml:"required_params,omitempty"`
	OptionalParams []string          `json:"optional_params,omitempty" yaml:"optional_params,omitempty"`
	SpecParams     map[string]string `json:"spec_params,omitempty" yaml:"spec_params,omitempty"`
}

// FormatSet is the full display declaration for one entity kind: a heading
// and description for titled output modes, alternate kind names that resolve
// to this set, free-form annotations, the Format list, and an optional
// search action.
type FormatSet struct {
	Heading     string              `json:"heading" yaml:"heading"`
	Description string              `json:"description" yaml:"description"`
	Aliases     []string            `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Annotations map[string][]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Formats     []Format            `json:"formats" yaml:"formats"`
	Action      *ActionSpec         `json:"action,omitempty" yaml:"action,omitempty"`
}

// ErrInvalidFormatSet is returned when a format set fails validation.
var ErrInvalidFormatSet = errors.New("invalid format set")

// Validate checks the invariants a format set must satisfy before it may be
// registered: a non-empty Formats list, and every Format carrying at least
// one mode and one column. The original data tables were never validated,
// which surfaced as a confusing "no match" deep in rendering; rejecting bad
// entries at load time keeps the failure at the source.
func (fs *FormatSet) Validate() error {
	if len(fs.Formats) == 0 {
		return fmt.Errorf("%w: formats list is empty", ErrInvalidFormatSet)
	}
	for i, f := range fs.Formats {
		if len(f.Modes) == 0 {
			return fmt.Errorf("%w: format %d declares no output modes", ErrInvalidFormatSet, i)
		}
		if len(f.Columns) == 0 {
			return fmt.Errorf("%w: format %d declares no columns", ErrInvalidFormatSet, i)
		}
		for j, c := range f.Columns {
			if c.Name == "" || c.Key == "" {
				return fmt.Errorf("%w: format %d column %d missing name or key", ErrInvalidFormatSet, i, j)
			}
		}
	}
	return nil
}

// FormatFor returns the first declared Format supporting the requested mode.
// Declaration order is the tie-break: the earliest matching Format wins,
// preserving author intent deterministically.
func (fs *FormatSet) FormatFor(mode OutputMode) (*Format, bool) {
	for i := range fs.Formats {
		if fs.Formats[i].Supports(mode) {
			return &fs.Formats[i], true
		}
	}
	return nil, false
}
