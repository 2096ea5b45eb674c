package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Document is the uniform rendering input: the projected rows plus the
// heading and description of the format set they were projected with.
type Document struct {
	Heading     string
	Description string
	Rows        []Row
}

// Renderer turns a Document into one output representation. Rendering is a
// pure, synchronous, in-memory transform; the only failure mode in the
// subsystem is an unmatched Selection, which never reaches a renderer.
type Renderer interface {
	// Render writes the representation of doc to w.
	Render(w io.Writer, doc *Document) error
}

// RenderToString is a convenience wrapper around Renderer.Render.
func RenderToString(r Renderer, doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Dict converts projected rows to plain column/value mappings, one per
// element. This is the DICT mode result and the payload JSON mode marshals.
func Dict(rows []Row) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]string, len(row))
		for _, c := range row {
			m[c.Name] = c.Value
		}
		out = append(out, m)
	}
	return out
}

// GetRenderer returns the renderer for a requested mode. DICT has no text
// renderer; callers wanting structured data use Dict directly, and the DICT
// renderer here prints the same mappings as indented JSON for CLI use.
func GetRenderer(mode OutputMode) (Renderer, error) {
	switch mode {
	case ModeJSON, ModeDict:
		return &JSONRenderer{}, nil
	case ModeList:
		return &ListRenderer{}, nil
	case ModeMD:
		return &MarkdownRenderer{}, nil
	case ModeForm:
		return &FormRenderer{}, nil
	case ModeReport:
		return &ReportRenderer{}, nil
	case ModeMermaid:
		return &MermaidRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output mode: %s", mode)
	}
}

// JSONRenderer marshals the Dict form of the rows as an indented JSON array.
type JSONRenderer struct{}

// Render writes the rows as JSON.
func (r *JSONRenderer) Render(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Dict(doc.Rows))
}

// ListRenderer prints a compact one-line-per-element table: a header line of
// column names, a separator, then the values. Long values are truncated so
// rows stay scannable.
type ListRenderer struct{}

// listValueLimit caps cell width in LIST mode.
const listValueLimit = 60

// Render writes the compact list representation.
func (r *ListRenderer) Render(w io.Writer, doc *Document) error {
	if len(doc.Rows) == 0 {
		fmt.Fprintf(w, "%s: no elements\n", doc.Heading)
		return nil
	}

	names := make([]string, len(doc.Rows[0]))
	for i, c := range doc.Rows[0] {
		names[i] = c.Name
	}
	header := strings.Join(names, " | ")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, row := range doc.Rows {
		values := make([]string, len(row))
		for i, c := range row {
			values[i] = truncate(flattenWhitespace(c.Value), listValueLimit)
		}
		fmt.Fprintln(w, strings.Join(values, " | "))
	}
	return nil
}

// MarkdownRenderer prints a bare block of bullet lines per element, with no
// title framing.
type MarkdownRenderer struct{}

// Render writes the markdown bullet representation.
func (r *MarkdownRenderer) Render(w io.Writer, doc *Document) error {
	for i, row := range doc.Rows {
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, c := range row {
			writeField(w, "* ", c)
		}
	}
	return nil
}

// FormRenderer prints a titled form block per element, suitable for editing
// and resubmission through the markdown-command pipeline.
type FormRenderer struct{}

// Render writes the form representation.
func (r *FormRenderer) Render(w io.Writer, doc *Document) error {
	fmt.Fprintf(w, "# Form: %s\n", doc.Heading)
	if doc.Description != "" {
		fmt.Fprintf(w, "%s\n", doc.Description)
	}
	for _, row := range doc.Rows {
		fmt.Fprintf(w, "\n## %s\n", rowTitle(row))
		for _, c := range row {
			writeField(w, "", c)
		}
	}
	return nil
}

// ReportRenderer prints a titled report block with narrative framing around
// the same field lines as FORM.
type ReportRenderer struct{}

// Render writes the report representation.
func (r *ReportRenderer) Render(w io.Writer, doc *Document) error {
	fmt.Fprintf(w, "# Report: %s\n", doc.Heading)
	if doc.Description != "" {
		fmt.Fprintf(w, "\n%s\n", doc.Description)
	}
	fmt.Fprintf(w, "\nThis report covers %d element(s).\n", len(doc.Rows))
	for _, row := range doc.Rows {
		fmt.Fprintf(w, "\n## %s\n", rowTitle(row))
		for _, c := range row {
			writeField(w, "**", c)
		}
	}
	return nil
}

// MermaidRenderer extracts and returns only the diagram-text cells,
// ignoring all other columns.
type MermaidRenderer struct{}

// Render writes the concatenated mermaid graphs.
func (r *MermaidRenderer) Render(w io.Writer, doc *Document) error {
	wrote := false
	for _, row := range doc.Rows {
		for _, c := range row {
			if c.Key == keyMermaid && c.Value != "" {
				if wrote {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, c.Value)
				wrote = true
			}
		}
	}
	if !wrote {
		fmt.Fprintln(w, "No mermaid graph available")
	}
	return nil
}

// writeField prints one labeled field line. Long values go on their own
// indented block; marker "**" requests bold labels (REPORT style).
func writeField(w io.Writer, marker string, c Cell) {
	label := c.Name
	prefix := marker
	if marker == "**" {
		label = "**" + c.Name + "**"
		prefix = ""
	}
	if c.Long && strings.Contains(c.Value, "\n") {
		fmt.Fprintf(w, "%s%s:\n", prefix, label)
		for _, line := range strings.Split(c.Value, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		return
	}
	fmt.Fprintf(w, "%s%s: %s\n", prefix, label, c.Value)
}

// rowTitle picks the first non-empty short cell value as the element title.
func rowTitle(row Row) string {
	for _, c := range row {
		if !c.Long && c.Value != "" {
			return c.Value
		}
	}
	return "(unnamed element)"
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// flattenWhitespace collapses newlines and tabs so LIST rows stay one line.
func flattenWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
