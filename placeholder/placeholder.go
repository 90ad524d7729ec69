// Package placeholder provides the text transformations applied to migration
// descriptions.
package placeholder

import (
	"maps"
	"slices"
	"strings"
)

// Default placeholder delimiters.
const (
	DefaultPrefix = "${"
	DefaultSuffix = "}"
)

// Transformer transforms text, e.g. by substituting placeholders.
type Transformer interface {
	Transform(text string) string
}

// TransformFunc is an adapter that allows using ordinary functions as
// Transformers.
type TransformFunc func(text string) string

// Transform implements the Transformer interface.
func (f TransformFunc) Transform(text string) string {
	return f(text)
}

// None returns text unchanged.
var None Transformer = TransformFunc(func(text string) string { return text })

// Replacer substitutes placeholders in the form <Prefix><key><Suffix> with
// their configured values. Unknown placeholders are left intact.
type Replacer struct {
	placeholders map[string]string
	prefix       string
	suffix       string
}

var _ Transformer = (*Replacer)(nil)

// NewReplacer returns a Replacer for the given placeholder values. Empty
// delimiters default to DefaultPrefix and DefaultSuffix.
func NewReplacer(placeholders map[string]string, prefix, suffix string) *Replacer {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}

	return &Replacer{
		placeholders: maps.Clone(placeholders),
		prefix:       prefix,
		suffix:       suffix,
	}
}

// Transform implements the Transformer interface.
func (r *Replacer) Transform(text string) string {
	if len(r.placeholders) == 0 {
		return text
	}

	// Keys are sorted so that the replacement is deterministic.
	keys := slices.Sorted(maps.Keys(r.placeholders))
	oldnew := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		oldnew = append(oldnew, r.prefix+k+r.suffix, r.placeholders[k])
	}

	return strings.NewReplacer(oldnew...).Replace(text)
}

// Unresolved returns the names of placeholders found in text that have no
// configured value.
func (r *Replacer) Unresolved(text string) []string {
	var missing []string
	for {
		start := strings.Index(text, r.prefix)
		if start < 0 {
			break
		}
		text = text[start+len(r.prefix):]
		end := strings.Index(text, r.suffix)
		if end < 0 {
			break
		}
		key := text[:end]
		if _, ok := r.placeholders[key]; !ok && !slices.Contains(missing, key) {
			missing = append(missing, key)
		}
		text = text[end+len(r.suffix):]
	}

	return missing
}
