package auction

import (
	"errors"
	"fmt"
	"sort"

	"subastas-ingest/lib/textutil"
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidProvince = errors.New("invalid province")
	ErrUnknownConcept  = errors.New("unknown concept")
)

// LabelError is returned when a label does not match any value of a closed
// taxonomy. It unwraps to one of the Err* sentinels above.
type LabelError struct {
	Taxonomy   string
	Label      string
	Suggestion string
	kind       error
}

func (e *LabelError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s %q (did you mean %q?)", e.kind, e.Taxonomy, e.Label, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s %q", e.kind, e.Taxonomy, e.Label)
}

func (e *LabelError) Unwrap() error {
	return e.kind
}

type entry[T ~int] struct {
	value   T
	label   string
	display string
}

// taxonomy is an immutable bidirectional table between enum values and
// their normalized labels.
type taxonomy[T ~int] struct {
	name    string
	kind    error
	byLabel map[string]T
	byValue map[T]entry[T]
	labels  []string
}

func newTaxonomy[T ~int](name string, kind error, entries []entry[T], aliases map[string]T) taxonomy[T] {
	t := taxonomy[T]{
		name:    name,
		kind:    kind,
		byLabel: make(map[string]T, len(entries)+len(aliases)),
		byValue: make(map[T]entry[T], len(entries)),
	}
	for _, e := range entries {
		key := textutil.NormalizeLabel(e.label)
		t.byLabel[key] = e.value
		t.byValue[e.value] = e
		t.labels = append(t.labels, key)
	}
	for alias, value := range aliases {
		key := textutil.NormalizeLabel(alias)
		t.byLabel[key] = value
		t.labels = append(t.labels, key)
	}
	sort.Strings(t.labels)
	return t
}

func (t taxonomy[T]) parse(label string) (T, error) {
	key := textutil.NormalizeLabel(label)
	value, ok := t.byLabel[key]
	if ok {
		return value, nil
	}
	return value, &LabelError{
		Taxonomy:   t.name,
		Label:      label,
		Suggestion: textutil.Closest(key, t.labels),
		kind:       t.kind,
	}
}

func (t taxonomy[T]) label(value T) string {
	e, ok := t.byValue[value]
	if !ok {
		return "UNKNOWN"
	}
	return textutil.NormalizeLabel(e.label)
}

func (t taxonomy[T]) display(value T) string {
	e, ok := t.byValue[value]
	if !ok {
		return "Unknown"
	}
	if e.display == "" {
		return e.label
	}
	return e.display
}

func (t taxonomy[T]) values() []T {
	out := make([]T, 0, len(t.byValue))
	for v := range t.byValue {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
