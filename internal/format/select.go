package format

import "fmt"

// Selection is the tagged result of resolving a (kind, mode) pair. The
// original implementation returned a diagnostic string in place of data on
// failure; callers here check Matched instead, and Diagnostic carries the
// short human-readable explanation for display.
type Selection struct {
	// Kind is the canonical kind name the selection resolved to. It differs
	// from the requested kind when an alias or the Default fallback matched.
	Kind string

	// Set is the matched format set; nil when Matched is false.
	Set *FormatSet

	// Format is the matched Format within Set; nil when Matched is false.
	Format *Format

	// Matched reports whether a Format was found for the requested mode.
	Matched bool

	// Diagnostic is a short explanation filled in when Matched is false.
	Diagnostic string
}

// Select resolves kind and mode to a concrete Format. Resolution order:
// exact kind match, alias match, then the Default entry. Within the matched
// set the first declared Format supporting the mode (or declaring ALL) wins.
//
// An unknown kind with a registered Default entry still renders, using the
// Default set's generic columns; that is graceful degradation, not an error.
// Neither an unknown kind nor an unsupported mode raises: both produce an
// unmatched Selection with a diagnostic.
func (r *Registry) Select(kind string, mode OutputMode) Selection {
	resolved, set, ok := r.Resolve(kind)
	if !ok {
		resolved, set, ok = r.Resolve(DefaultKind)
		if !ok {
			return Selection{
				Diagnostic: fmt.Sprintf("No matching column set found for kind %q and no Default entry is registered", kind),
			}
		}
	}

	f, ok := set.FormatFor(mode)
	if !ok {
		target := fmt.Sprintf("kind %q", kind)
		if resolved != kind {
			target = fmt.Sprintf("the %q entry used for kind %q", resolved, kind)
		}
		return Selection{
			Diagnostic: fmt.Sprintf("No matching column set found: %s does not support output mode %s", target, mode),
		}
	}

	return Selection{Kind: resolved, Set: set, Format: f, Matched: true}
}
