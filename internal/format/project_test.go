package format

import (
	"reflect"
	"testing"
)

// fakeSource is a test double for one metadata element.
type fakeSource struct {
	props   map[string]string
	header  map[string]string
	class   []string
	subject string
	mermaid string
	related map[string][]string
}

func (f *fakeSource) Property(key string) (string, bool) {
	v, ok := f.props[key]
	return v, ok
}

func (f *fakeSource) HeaderField(key string) (string, bool) {
	v, ok := f.header[key]
	return v, ok
}

func (f *fakeSource) Classifications() []string          { return f.class }
func (f *fakeSource) SubjectArea() string                { return f.subject }
func (f *fakeSource) MermaidGraph() string               { return f.mermaid }
func (f *fakeSource) RelatedSummaries(r string) []string { return f.related[r] }

// TestProjectRoundTrip tests the Widgets round-trip: a format with a
// properties column and a header column projects the expected values.
func TestProjectRoundTrip(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("Widgets", widgetsSet()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	sel := r.Select("Widgets", ModeDict)
	if !sel.Matched {
		t.Fatalf("Select(Widgets, DICT) should match, got %q", sel.Diagnostic)
	}

	src := &fakeSource{
		props:  map[string]string{"display_name": "Widget One"},
		header: map[string]string{"guid": "abc-123"},
	}

	row := NewProjector().Project("Widgets", src, sel.Format)
	got := Dict([]Row{row})[0]
	want := map[string]string{"Name": "Widget One", "GUID": "abc-123"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("projected dict = %v, want %v", got, want)
	}
}

// TestProjectIdempotentAndOrdered tests that projecting twice yields
// identical ordered output, and reordering columns changes only the order.
func TestProjectIdempotentAndOrdered(t *testing.T) {
	src := &fakeSource{
		props:  map[string]string{"display_name": "A", "description": "B"},
		header: map[string]string{"guid": "g-1"},
	}

	f := &Format{
		Modes: []OutputMode{ModeAll},
		Columns: []Column{
			{Name: "Name", Key: "display_name"},
			{Name: "Description", Key: "description"},
			{Name: "GUID", Key: "guid"},
		},
	}

	p := NewProjector()
	first := p.Project("Widgets", src, f)
	second := p.Project("Widgets", src, f)
	if !reflect.DeepEqual(first, second) {
		t.Error("projection should be idempotent")
	}

	names := []string{first[0].Name, first[1].Name, first[2].Name}
	if !reflect.DeepEqual(names, []string{"Name", "Description", "GUID"}) {
		t.Errorf("column order not preserved: %v", names)
	}

	reversed := &Format{
		Modes:   f.Modes,
		Columns: []Column{f.Columns[2], f.Columns[1], f.Columns[0]},
	}
	rev := p.Project("Widgets", src, reversed)
	if rev[0].Value != first[2].Value || rev[2].Value != first[0].Value {
		t.Error("reordering columns should change only the output order, not values")
	}
}

// TestProjectHeaderPrecedence tests the reserved-key policy: the header wins
// for reserved keys even when the properties map carries the same key, and
// properties win for everything else.
func TestProjectHeaderPrecedence(t *testing.T) {
	src := &fakeSource{
		props: map[string]string{
			"guid":         "from-properties",
			"display_name": "from-properties",
		},
		header: map[string]string{
			"guid": "from-header",
		},
	}

	f := &Format{
		Modes: []OutputMode{ModeAll},
		Columns: []Column{
			{Name: "GUID", Key: "guid"},
			{Name: "Name", Key: "display_name"},
		},
	}

	row := NewProjector().Project("Any", src, f)
	if row.Get("GUID") != "from-header" {
		t.Errorf("reserved key guid should resolve from header, got %q", row.Get("GUID"))
	}
	if row.Get("Name") != "from-properties" {
		t.Errorf("non-reserved key should resolve from properties, got %q", row.Get("Name"))
	}
}

// TestProjectDerivedFields tests classifications join, subject area and
// mermaid extraction.
func TestProjectDerivedFields(t *testing.T) {
	src := &fakeSource{
		class:   []string{"Confidential", "SubjectArea"},
		subject: "Clinical Trials",
		mermaid: "graph TD;\nA-->B",
	}

	f := &Format{
		Modes: []OutputMode{ModeAll},
		Columns: []Column{
			{Name: "Classifications", Key: "classifications"},
			{Name: "Subject Area", Key: "subject_area"},
			{Name: "Mermaid Graph", Key: "mermaid", Long: true},
		},
	}

	row := NewProjector().Project("Any", src, f)
	if row.Get("Classifications") != "Confidential, SubjectArea" {
		t.Errorf("classification join = %q", row.Get("Classifications"))
	}
	if row.Get("Subject Area") != "Clinical Trials" {
		t.Errorf("subject area = %q", row.Get("Subject Area"))
	}
	if row.Get("Mermaid Graph") != "graph TD;\nA-->B" {
		t.Errorf("mermaid = %q", row.Get("Mermaid Graph"))
	}
}

// TestProjectRelationshipRollup tests that a column keyed by a relationship
// role joins the related-element summaries.
func TestProjectRelationshipRollup(t *testing.T) {
	src := &fakeSource{
		related: map[string][]string{
			"members": {"Set A", "Set B", "Set C"},
		},
	}

	f := &Format{
		Modes:   []OutputMode{ModeAll},
		Columns: []Column{{Name: "Members", Key: "members"}},
	}

	row := NewProjector().Project("Collections", src, f)
	if row.Get("Members") != "Set A, Set B, Set C" {
		t.Errorf("rollup = %q", row.Get("Members"))
	}
}

// TestProjectMissingKeysEmpty tests that unresolved keys produce empty cells
// rather than omissions, keeping row shapes uniform.
func TestProjectMissingKeysEmpty(t *testing.T) {
	f := &Format{
		Modes: []OutputMode{ModeAll},
		Columns: []Column{
			{Name: "Name", Key: "display_name"},
			{Name: "Nothing", Key: "not_a_key"},
		},
	}

	row := NewProjector().Project("Any", &fakeSource{}, f)
	if len(row) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(row))
	}
	if row[1].Name != "Nothing" || row[1].Value != "" {
		t.Errorf("missing key should yield an empty cell, got %+v", row[1])
	}
}

// upperProvider is a test AdditionalPropsProvider.
type upperProvider struct{}

func (upperProvider) AdditionalProps(src Source) map[string]string {
	v, _ := src.Property("display_name")
	return map[string]string{"shout": v + "!"}
}

// TestProjectAdditionalPropsProvider tests the per-kind provider hook, and
// that a real property still wins over a provider entry with the same key.
func TestProjectAdditionalPropsProvider(t *testing.T) {
	src := &fakeSource{props: map[string]string{"display_name": "Widget"}}

	f := &Format{
		Modes: []OutputMode{ModeAll},
		Columns: []Column{
			{Name: "Shout", Key: "shout"},
			{Name: "Name", Key: "display_name"},
		},
	}

	p := NewProjector()
	p.RegisterProvider("Widgets", upperProvider{})

	row := p.Project("Widgets", src, f)
	if row.Get("Shout") != "Widget!" {
		t.Errorf("provider value = %q", row.Get("Shout"))
	}

	// Another kind without the provider gets an empty cell.
	other := p.Project("Sprockets", src, f)
	if other.Get("Shout") != "" {
		t.Errorf("provider should be scoped to its kind, got %q", other.Get("Shout"))
	}
}
