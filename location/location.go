// Package location parses the scan roots migrations are resolved from.
package location

import (
	"path"
	"strings"
)

// Backend is the kind of resource backend a Location is scanned with.
type Backend string

// All supported backends.
const (
	BackendEmbedded   Backend = "embedded"
	BackendFilesystem Backend = "filesystem"
)

// Prefixes that select the backend of a location string.
const (
	FilesystemPrefix = "filesystem:"
	ClassPathPrefix  = "classpath:"
)

// Location is a normalized reference to the root under which migrations are
// searched.
type Location struct {
	raw     string
	backend Backend
	path    string
}

// Parse parses a location string in the form [<prefix>]<path>. The
// "filesystem:" prefix selects the filesystem backend, while no prefix or the
// "classpath:" prefix selects embedded resource bundles.
//
// Backslashes are converted to forward slashes, and the path is cleaned, so
// "." segments, ".." segments that can be resolved lexically, repeated and
// trailing separators are removed. Leading separators are removed from embedded
// paths, but a single one is retained in filesystem paths so that absolute
// paths stay absolute. A path that cleans to "." refers to the root.
func Parse(raw string) Location {
	l := Location{raw: raw, backend: BackendEmbedded}

	p := raw
	switch {
	case strings.HasPrefix(p, FilesystemPrefix):
		l.backend = BackendFilesystem
		p = strings.TrimPrefix(p, FilesystemPrefix)
	case strings.HasPrefix(p, ClassPathPrefix):
		p = strings.TrimPrefix(p, ClassPathPrefix)
	}

	p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
	if l.backend != BackendFilesystem || !strings.HasPrefix(p, "/") {
		p = strings.TrimLeft(p, "/")
	}
	if p == "." {
		p = ""
	}
	l.path = p

	return l
}

// Backend returns the backend this location should be scanned with.
func (l Location) Backend() Backend {
	return l.backend
}

// Path returns the normalized path of the location, without the backend prefix.
func (l Location) Path() string {
	return l.path
}

// Raw returns the string the location was parsed from.
func (l Location) Raw() string {
	return l.raw
}

// IsRoot returns true if the location points to the root of its backend. For
// the filesystem backend this is either the working directory or "/".
func (l Location) IsRoot() bool {
	return strings.Trim(l.path, "/") == ""
}

// IsFilesystem returns true if the location is scanned on the filesystem.
func (l Location) IsFilesystem() bool {
	return l.backend == BackendFilesystem
}

// String returns the canonical form of the location. Parsing it returns an
// equal Location, apart from the raw value.
func (l Location) String() string {
	if l.backend == BackendFilesystem {
		return FilesystemPrefix + l.path
	}
	return l.path
}

// Equal returns true if both locations refer to the same path on the same
// backend.
func (l Location) Equal(other Location) bool {
	return l.backend == other.backend && l.path == other.path
}

// MarshalText implements the encoding.TextMarshaler interface.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (l *Location) UnmarshalText(text []byte) error {
	*l = Parse(string(text))
	return nil
}
