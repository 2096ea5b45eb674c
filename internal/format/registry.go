package format

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultKind is the registry entry used when a requested kind is unknown.
// Its generic columns keep unknown element types renderable.
const DefaultKind = "Default"

// Registry holds the mapping from entity-kind name to FormatSet, including
// alias resolution. Entries are registered at startup and optionally merged
// from a user-supplied file; after that the registry is effectively
// read-only, but all access is guarded by a mutex so a future caller merging
// from another goroutine stays safe.
type Registry struct {
	mu      sync.RWMutex
	sets    map[string]*FormatSet
	aliases map[string]string // alias -> canonical kind, rebuilt on register
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sets:    make(map[string]*FormatSet),
		aliases: make(map[string]string),
	}
}

// Register validates the set and inserts it under kind, overwriting any
// previous entry. Last write wins; aliases of the new set shadow earlier
// alias claims. The reverse alias index is maintained here so Lookup never
// scans the whole table.
func (r *Registry) Register(kind string, set *FormatSet) error {
	if kind == "" {
		return fmt.Errorf("%w: empty kind name", ErrInvalidFormatSet)
	}
	if err := set.Validate(); err != nil {
		return fmt.Errorf("format set %q: %w", kind, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Drop alias claims of the entry being replaced.
	if old, ok := r.sets[kind]; ok {
		for _, a := range old.Aliases {
			if r.aliases[a] == kind {
				delete(r.aliases, a)
			}
		}
	}

	r.sets[kind] = set
	for _, a := range set.Aliases {
		r.aliases[a] = kind
	}
	return nil
}

// Lookup returns the FormatSet for kind, resolving aliases after an exact
// key match fails. The boolean is false when neither matches; absence is not
// an error.
func (r *Registry) Lookup(kind string) (*FormatSet, bool) {
	_, set, ok := r.Resolve(kind)
	return set, ok
}

// Resolve is Lookup plus the canonical kind name the match landed on, which
// differs from the argument when an alias matched.
func (r *Registry) Resolve(kind string) (string, *FormatSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if set, ok := r.sets[kind]; ok {
		return kind, set, true
	}
	if canonical, ok := r.aliases[kind]; ok {
		if set, ok := r.sets[canonical]; ok {
			return canonical, set, true
		}
	}
	return "", nil, false
}

// Names returns the registered kind names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sets))
	for k := range r.sets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered format sets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sets)
}

// setDecl is the on-disk declaration for one format set. It accepts either
// the general formats list or the shorthand columns form, which implies a
// single Format valid for every output mode.
type setDecl struct {
	FormatSet `yaml:",inline"`
	Columns   []Column `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// resolve converts a declaration into a FormatSet, expanding the columns
// shorthand when no explicit formats are given.
func (d *setDecl) resolve() *FormatSet {
	set := d.FormatSet
	if len(set.Formats) == 0 && len(d.Columns) > 0 {
		set.Formats = []Format{{Modes: []OutputMode{ModeAll}, Columns: d.Columns}}
	}
	return &set
}

// MergeFromFile reads a JSON or YAML file mapping kind names to format-set
// declarations and unions its entries into the registry, overwriting
// existing entries by kind name. The file format is detected from the
// extension; anything that is not .yaml/.yml is parsed as JSON.
func (r *Registry) MergeFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading format set file: %w", err)
	}

	decls := make(map[string]*setDecl)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &decls); err != nil {
			return fmt.Errorf("parsing format set file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &decls); err != nil {
			return fmt.Errorf("parsing format set file %s: %w", path, err)
		}
	}

	// Deterministic merge order so a bad entry is reported stably.
	kinds := make([]string, 0, len(decls))
	for k := range decls {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		if err := r.Register(kind, decls[kind].resolve()); err != nil {
			return err
		}
	}
	return nil
}
