package diag

import "zplforge/internal/source"

// ContextEntry is one key-value pair in a diagnostic's context map. Order is
// preserved exactly as appended (spec.md §3: "an ordered key-value context map
// whose keys are serialized in a deterministic order").
type ContextEntry struct {
	Key   string
	Value string
}

// Note provides auxiliary context for a diagnostic message, anchored at a
// secondary span (e.g. "state set here" for ZPL2305).
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic captures a single issue: severity, stable code, message, the
// span it anchors to, an ordered context map, and optional notes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Context  []ContextEntry
	Notes    []Note
}

// WithContext appends a key/value pair to the diagnostic's context map,
// preserving insertion order.
func (d Diagnostic) WithContext(key, value string) Diagnostic {
	d.Context = append(d.Context, ContextEntry{Key: key, Value: value})
	return d
}

// WithNote appends a secondary note anchored at another span.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// ContextValue returns the value of the first context entry with the given
// key, or "" if absent.
func (d Diagnostic) ContextValue(key string) string {
	for _, e := range d.Context {
		if e.Key == key {
			return e.Value
		}
	}
	return ""
}
