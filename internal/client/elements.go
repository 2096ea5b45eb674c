package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// ElementType is the type section of an element header.
type ElementType struct {
	TypeName       string   `json:"typeName"`
	SuperTypeNames []string `json:"superTypeNames,omitempty"`
}

// ElementOrigin records where the element is homed.
type ElementOrigin struct {
	OriginCategory             string `json:"originCategory,omitempty"`
	HomeMetadataCollectionName string `json:"homeMetadataCollectionName,omitempty"`
}

// ElementVersions carries the element's provenance metadata.
type ElementVersions struct {
	CreatedBy  string `json:"createdBy,omitempty"`
	UpdatedBy  string `json:"updatedBy,omitempty"`
	CreateTime string `json:"createTime,omitempty"`
	UpdateTime string `json:"updateTime,omitempty"`
	Version    int64  `json:"version,omitempty"`
}

// Classification is one classification attached to an element.
type Classification struct {
	ClassificationName       string         `json:"classificationName"`
	ClassificationProperties map[string]any `json:"classificationProperties,omitempty"`
}

// ElementHeader is the header sub-object every element carries: type name,
// GUID, classifications and provenance. It is read, never written; the
// server owns this structure.
type ElementHeader struct {
	GUID            string           `json:"guid"`
	Type            ElementType      `json:"type"`
	Origin          ElementOrigin    `json:"origin"`
	Versions        ElementVersions  `json:"versions"`
	Classifications []Classification `json:"classifications,omitempty"`
}

// ElementSummary is the compact description of a related element.
type ElementSummary struct {
	GUID          string `json:"guid"`
	QualifiedName string `json:"qualifiedName,omitempty"`
	DisplayName   string `json:"displayName,omitempty"`
}

// display returns the best human label for the summary.
func (s ElementSummary) display() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	if s.QualifiedName != "" {
		return s.QualifiedName
	}
	return s.GUID
}

// Element is one metadata item returned by the server: a header, a
// domain-specific properties object, optional relationship-shaped
// sub-objects keyed by role name, and optional embedded diagram text.
// Elements are transient: fetched, projected, rendered, discarded.
type Element struct {
	Header       ElementHeader               `json:"elementHeader"`
	Properties   map[string]any              `json:"properties,omitempty"`
	Related      map[string][]ElementSummary `json:"relatedElements,omitempty"`
	MermaidText  string                      `json:"mermaidGraph,omitempty"`
	flattened    map[string]string
}

// subjectAreaClassification is the classification carrying the subject-area
// label in its properties.
const subjectAreaClassification = "SubjectArea"

// Flatten returns the properties map with camelCase keys converted to the
// snake_case keys the format-set columns use, and all values stringified.
// The result is computed once per element and cached.
func (e *Element) Flatten() map[string]string {
	if e.flattened != nil {
		return e.flattened
	}
	flat := make(map[string]string, len(e.Properties))
	for k, v := range e.Properties {
		flat[camelToSnake(k)] = stringify(v)
	}
	e.flattened = flat
	return flat
}

// Property implements format.Source.
func (e *Element) Property(key string) (string, bool) {
	v, ok := e.Flatten()[key]
	return v, ok
}

// HeaderField implements format.Source for the reserved header keys.
func (e *Element) HeaderField(key string) (string, bool) {
	switch key {
	case "guid":
		return e.Header.GUID, true
	case "type_name":
		return e.Header.Type.TypeName, true
	case "origin_category":
		return e.Header.Origin.OriginCategory, true
	case "metadata_collection_name":
		return e.Header.Origin.HomeMetadataCollectionName, true
	case "created_by":
		return e.Header.Versions.CreatedBy, true
	case "updated_by":
		return e.Header.Versions.UpdatedBy, true
	case "create_time":
		return e.Header.Versions.CreateTime, true
	case "update_time":
		return e.Header.Versions.UpdateTime, true
	case "version":
		return strconv.FormatInt(e.Header.Versions.Version, 10), true
	default:
		return "", false
	}
}

// Classifications implements format.Source.
func (e *Element) Classifications() []string {
	names := make([]string, 0, len(e.Header.Classifications))
	for _, c := range e.Header.Classifications {
		names = append(names, c.ClassificationName)
	}
	return names
}

// SubjectArea implements format.Source: the subject-area label lives in the
// properties of the SubjectArea classification.
func (e *Element) SubjectArea() string {
	for _, c := range e.Header.Classifications {
		if c.ClassificationName != subjectAreaClassification {
			continue
		}
		for _, key := range []string{"subjectAreaName", "name", "displayName"} {
			if v, ok := c.ClassificationProperties[key]; ok {
				return stringify(v)
			}
		}
	}
	return ""
}

// MermaidGraph implements format.Source.
func (e *Element) MermaidGraph() string {
	return e.MermaidText
}

// RelatedSummaries implements format.Source: the display labels of the
// elements related under the named role.
func (e *Element) RelatedSummaries(role string) []string {
	summaries := e.Related[role]
	if len(summaries) == 0 {
		return nil
	}
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.display()
	}
	return out
}

// stringify renders a decoded JSON value for display. Lists are joined,
// nested objects fall back to compact JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		// JSON numbers decode as float64; print integers without a fraction.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		// Deterministic key order keeps projection idempotent.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		ordered := make([]string, len(keys))
		for i, k := range keys {
			ordered[i] = fmt.Sprintf("%s=%s", k, stringify(t[k]))
		}
		return strings.Join(ordered, ", ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// camelToSnake converts the server's camelCase property names to the
// snake_case keys used in format-set columns.
func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Insert an underscore at a lower-to-upper boundary and before
			// the last capital of an acronym run (GUIDValue -> guid_value).
			if i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
