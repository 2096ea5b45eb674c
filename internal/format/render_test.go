package format

import (
	"encoding/json"
	"strings"
	"testing"
)

// sampleDoc builds a two-element document for renderer tests.
func sampleDoc() *Document {
	return &Document{
		Heading:     "Widgets",
		Description: "Test widgets.",
		Rows: []Row{
			{
				{Name: "Name", Key: "display_name", Value: "Widget One"},
				{Name: "GUID", Key: "guid", Value: "abc-123"},
				{Name: "Description", Key: "description", Value: "line one\nline two", Long: true},
			},
			{
				{Name: "Name", Key: "display_name", Value: "Widget Two"},
				{Name: "GUID", Key: "guid", Value: "def-456"},
				{Name: "Description", Key: "description", Value: "short", Long: true},
			},
		},
	}
}

// TestGetRenderer tests renderer dispatch for every requestable mode.
func TestGetRenderer(t *testing.T) {
	for _, mode := range []OutputMode{ModeJSON, ModeDict, ModeList, ModeMD, ModeForm, ModeReport, ModeMermaid} {
		if _, err := GetRenderer(mode); err != nil {
			t.Errorf("GetRenderer(%s) failed: %v", mode, err)
		}
	}
	if _, err := GetRenderer(ModeAll); err == nil {
		t.Error("GetRenderer(ALL) should return error")
	}
}

// TestDict tests the structured DICT conversion.
func TestDict(t *testing.T) {
	dicts := Dict(sampleDoc().Rows)
	if len(dicts) != 2 {
		t.Fatalf("expected 2 dicts, got %d", len(dicts))
	}
	if dicts[0]["Name"] != "Widget One" || dicts[1]["GUID"] != "def-456" {
		t.Errorf("unexpected dicts: %v", dicts)
	}
}

// TestJSONRenderer tests that JSON output parses back to the Dict form.
func TestJSONRenderer(t *testing.T) {
	out, err := RenderToString(&JSONRenderer{}, sampleDoc())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var parsed []map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(parsed) != 2 || parsed[0]["GUID"] != "abc-123" {
		t.Errorf("unexpected JSON payload: %v", parsed)
	}
}

// TestListRenderer tests the compact one-line-per-element layout: header
// line, separator, flattened multi-line values.
func TestListRenderer(t *testing.T) {
	out, err := RenderToString(&ListRenderer{}, sampleDoc())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header, separator, 2 rows), got %d:\n%s", len(lines), out)
	}
	if lines[0] != "Name | GUID | Description" {
		t.Errorf("unexpected header line %q", lines[0])
	}
	if !strings.Contains(lines[2], "line one line two") {
		t.Errorf("multi-line value should be flattened in LIST mode, got %q", lines[2])
	}
}

// TestListRendererEmpty tests the empty-document message.
func TestListRendererEmpty(t *testing.T) {
	out, err := RenderToString(&ListRenderer{}, &Document{Heading: "Widgets"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "no elements") {
		t.Errorf("expected empty message, got %q", out)
	}
}

// TestMarkdownRenderer tests bare bullet lines without title framing.
func TestMarkdownRenderer(t *testing.T) {
	out, err := RenderToString(&MarkdownRenderer{}, sampleDoc())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out, "# ") {
		t.Error("MD mode should not emit a title")
	}
	if !strings.Contains(out, "* Name: Widget One") {
		t.Errorf("expected bullet field line, got:\n%s", out)
	}
	// Long multi-line values become indented blocks.
	if !strings.Contains(out, "* Description:\n    line one\n    line two") {
		t.Errorf("long value should render as indented block, got:\n%s", out)
	}
}

// TestFormRenderer tests the titled form block framing.
func TestFormRenderer(t *testing.T) {
	out, err := RenderToString(&FormRenderer{}, sampleDoc())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.HasPrefix(out, "# Form: Widgets\n") {
		t.Errorf("expected form title, got:\n%s", out)
	}
	if !strings.Contains(out, "## Widget One") || !strings.Contains(out, "## Widget Two") {
		t.Errorf("expected per-element sections, got:\n%s", out)
	}
}

// TestReportRenderer tests the report framing and bold field labels.
func TestReportRenderer(t *testing.T) {
	out, err := RenderToString(&ReportRenderer{}, sampleDoc())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.HasPrefix(out, "# Report: Widgets\n") {
		t.Errorf("expected report title, got:\n%s", out)
	}
	if !strings.Contains(out, "This report covers 2 element(s).") {
		t.Errorf("expected narrative framing, got:\n%s", out)
	}
	if !strings.Contains(out, "**Name**: Widget One") {
		t.Errorf("expected bold labels, got:\n%s", out)
	}
}

// TestMermaidRenderer tests diagram extraction and the no-graph fallback.
func TestMermaidRenderer(t *testing.T) {
	doc := &Document{
		Heading: "Widgets",
		Rows: []Row{
			{
				{Name: "Name", Key: "display_name", Value: "Widget One"},
				{Name: "Mermaid Graph", Key: "mermaid", Value: "graph TD;\nA-->B", Long: true},
			},
		},
	}

	out, err := RenderToString(&MermaidRenderer{}, doc)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "graph TD;") {
		t.Errorf("expected diagram text, got %q", out)
	}
	if strings.Contains(out, "Widget One") {
		t.Error("MERMAID mode must ignore non-diagram columns")
	}

	empty, err := RenderToString(&MermaidRenderer{}, sampleDoc())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(empty, "No mermaid graph available") {
		t.Errorf("expected fallback message, got %q", empty)
	}
}

// TestTruncate tests rune-safe truncation for LIST cells.
func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 80)
	got := truncate(long, 60)
	if len([]rune(got)) != 60 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate result %q has wrong shape", got)
	}
}
