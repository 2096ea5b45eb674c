package format

import "strings"

// Source is the read-only view of one metadata element the projector pulls
// column values from. The client's element types implement it; tests use a
// small fake.
type Source interface {
	// Property returns a flattened properties-map value by exact key.
	Property(key string) (string, bool)

	// HeaderField returns a header-derived value (type name, GUID,
	// provenance) by reserved key.
	HeaderField(key string) (string, bool)

	// Classifications lists the names of the element's classifications.
	Classifications() []string

	// SubjectArea returns the subject-area label from the element's
	// SubjectArea classification properties, or "".
	SubjectArea() string

	// MermaidGraph returns the embedded diagram text, or "".
	MermaidGraph() string

	// RelatedSummaries returns display summaries of the elements related
	// under the named relationship role.
	RelatedSummaries(role string) []string
}

// Cell is one projected column value. Key is the originating column key, so
// renderers can find cross-cutting cells (e.g. the diagram text) regardless
// of display name; Long mirrors the Column flag so renderers can treat the
// value as a wrapped text block.
type Cell struct {
	Name  string
	Key   string
	Value string
	Long  bool
}

// Row is the ordered projection of one element against one Format.
type Row []Cell

// Get returns the value of the named cell, or "" when absent.
func (r Row) Get(name string) string {
	for _, c := range r {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// reservedHeaderKeys enumerates the column keys that always resolve from the
// element header, taking precedence over a properties-map entry with the
// same key. The original special-cased "guid" and a couple of others ad hoc;
// the policy here is uniform: header wins for exactly these keys, properties
// win for everything else.
var reservedHeaderKeys = map[string]bool{
	"guid":                     true,
	"type_name":                true,
	"origin_category":          true,
	"metadata_collection_name": true,
	"created_by":               true,
	"create_time":              true,
	"updated_by":               true,
	"update_time":              true,
	"version":                  true,
}

// Derived column keys served by cross-cutting element accessors rather than
// the properties map.
const (
	keyClassifications = "classifications"
	keySubjectArea     = "subject_area"
	keyMermaid         = "mermaid"
)

// AdditionalPropsProvider supplies derived properties for one entity kind.
// It replaces the original's dynamic dispatch to a method looked up by
// string name: concrete kind handlers implement this interface and are
// registered on the projector under their kind name.
type AdditionalPropsProvider interface {
	AdditionalProps(src Source) map[string]string
}

// Projector extracts column values from elements. The zero Projector is
// usable; providers are optional per-kind extensions.
type Projector struct {
	providers map[string]AdditionalPropsProvider
}

// NewProjector returns a projector with no providers registered.
func NewProjector() *Projector {
	return &Projector{providers: make(map[string]AdditionalPropsProvider)}
}

// RegisterProvider attaches an AdditionalPropsProvider for a kind name.
// Last registration wins.
func (p *Projector) RegisterProvider(kind string, prov AdditionalPropsProvider) {
	if p.providers == nil {
		p.providers = make(map[string]AdditionalPropsProvider)
	}
	p.providers[kind] = prov
}

// Project produces the ordered (column, value) row for one element. Key
// resolution order per column:
//
//  1. derived keys (classifications, subject_area, mermaid)
//  2. reserved header keys (header wins over a same-named property)
//  3. the flattened properties map (case-sensitive exact key)
//  4. the kind's AdditionalPropsProvider, if registered
//  5. relationship roll-up: related-element summaries joined into one string
//
// A key that resolves to nothing yields an empty cell, never an omission, so
// row shapes stay uniform across elements of the same kind. Projection is
// pure: the same element and Format always yield the same row.
func (p *Projector) Project(kind string, src Source, f *Format) Row {
	var extras map[string]string
	if prov, ok := p.providers[kind]; ok {
		extras = prov.AdditionalProps(src)
	}

	row := make(Row, 0, len(f.Columns))
	for _, col := range f.Columns {
		row = append(row, Cell{
			Name:  col.Name,
			Key:   col.Key,
			Value: p.resolve(src, extras, col.Key),
			Long:  col.Long,
		})
	}
	return row
}

// resolve applies the documented key resolution order for one column key.
func (p *Projector) resolve(src Source, extras map[string]string, key string) string {
	switch key {
	case keyClassifications:
		return strings.Join(src.Classifications(), ", ")
	case keySubjectArea:
		return src.SubjectArea()
	case keyMermaid:
		return src.MermaidGraph()
	}

	if reservedHeaderKeys[key] {
		if v, ok := src.HeaderField(key); ok {
			return v
		}
		return ""
	}

	if v, ok := src.Property(key); ok {
		return v
	}

	if v, ok := extras[key]; ok {
		return v
	}

	if related := src.RelatedSummaries(key); len(related) > 0 {
		return strings.Join(related, ", ")
	}

	return ""
}
