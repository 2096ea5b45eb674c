package cmd

import (
	"testing"

	"github.com/egeria-tools/egc/internal/format"
)

// memberSource is a minimal format.Source with related members.
type memberSource struct {
	members []string
}

func (s memberSource) Property(string) (string, bool)    { return "", false }
func (s memberSource) HeaderField(string) (string, bool) { return "", false }
func (s memberSource) Classifications() []string         { return nil }
func (s memberSource) SubjectArea() string               { return "" }
func (s memberSource) MermaidGraph() string              { return "" }
func (s memberSource) RelatedSummaries(role string) []string {
	if role == "members" {
		return s.members
	}
	return nil
}

func TestCollectionPropsMemberCount(t *testing.T) {
	tests := []struct {
		members []string
		want    string
	}{
		{nil, "0"},
		{[]string{"a"}, "1"},
		{[]string{"a", "b", "c"}, "3"},
	}

	for _, tt := range tests {
		props := collectionProps{}.AdditionalProps(memberSource{members: tt.members})
		if props["member_count"] != tt.want {
			t.Errorf("member_count with %d members = %q, want %q",
				len(tt.members), props["member_count"], tt.want)
		}
	}
}

// TestProjectorWiresCollectionProvider tests that the CLI projector resolves
// the derived member_count column for collections.
func TestProjectorWiresCollectionProvider(t *testing.T) {
	p := newProjector()
	f := &format.Format{
		Modes: []format.OutputMode{format.ModeAll},
		Columns: []format.Column{
			{Name: "Member Count", Key: "member_count"},
		},
	}

	row := p.Project("Collections", memberSource{members: []string{"a", "b"}}, f)
	if got := row.Get("Member Count"); got != "2" {
		t.Errorf("Member Count = %q, want %q", got, "2")
	}

	// The provider is scoped to Collections; other kinds get an empty cell.
	row = p.Project("Projects", memberSource{members: []string{"a", "b"}}, f)
	if got := row.Get("Member Count"); got != "" {
		t.Errorf("Member Count for unscoped kind = %q, want empty", got)
	}
}
