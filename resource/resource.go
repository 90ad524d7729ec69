// Package resource abstracts the backends migration scripts are discovered in.
//
// Two backends are supported, selected by the kind of the scanned
// location.Location:
//   - embedded: one or more io/fs bundles, such as an embed.FS compiled into
//     the binary, a class path directory or a zip/jar archive.
//   - filesystem: a vfs.FileSystem, which is the OS filesystem in production,
//     and an in-memory filesystem in tests.
//
// Scanners only list resources; script contents are never read.
package resource

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go.hackfix.me/migres/location"
)

// Resource is a single file-like unit discovered under a location.
type Resource interface {
	// Path returns the backend-native path of the resource, using '/' as the
	// separator.
	Path() string
	// Filename returns the final element of the resource path.
	Filename() string
	// RelativeTo returns the path of the resource relative to loc, without a
	// leading separator. The resource must be located under loc.
	RelativeTo(loc location.Location) string
}

// Scanner lists all resources located under a location, recursively. Scanning
// stops with the context error once ctx is done.
type Scanner interface {
	Scan(ctx context.Context, loc location.Location) ([]Resource, error)
}

// EmbeddedResource is a resource stored in an embedded bundle.
type EmbeddedResource struct {
	path string
}

var _ Resource = EmbeddedResource{}

// NewEmbeddedResource returns a resource for the given path within a bundle.
func NewEmbeddedResource(p string) EmbeddedResource {
	return EmbeddedResource{path: strings.TrimLeft(p, "/")}
}

// Path implements the Resource interface.
func (r EmbeddedResource) Path() string { return r.path }

// Filename implements the Resource interface.
func (r EmbeddedResource) Filename() string { return path.Base(r.path) }

// RelativeTo implements the Resource interface.
func (r EmbeddedResource) RelativeTo(loc location.Location) string {
	return relativePath(r.path, loc)
}

// String returns the resource path.
func (r EmbeddedResource) String() string { return r.path }

// FileResource is a resource stored on a filesystem.
type FileResource struct {
	path string
}

var _ Resource = FileResource{}

// NewFileResource returns a resource for the given filesystem path.
func NewFileResource(p string) FileResource {
	return FileResource{path: path.Clean(strings.ReplaceAll(p, `\`, "/"))}
}

// Path implements the Resource interface.
func (r FileResource) Path() string { return r.path }

// Filename implements the Resource interface.
func (r FileResource) Filename() string { return path.Base(r.path) }

// RelativeTo implements the Resource interface.
func (r FileResource) RelativeTo(loc location.Location) string {
	return relativePath(r.path, loc)
}

// String returns the resource path with the filesystem location prefix.
func (r FileResource) String() string { return location.FilesystemPrefix + r.path }

// relativePath strips the location path from p, but only at a path segment
// boundary, so "sql" isn't stripped from "sqlite/V1.sql".
func relativePath(p string, loc location.Location) string {
	if base := loc.Path(); !loc.IsRoot() {
		switch {
		case p == base:
			p = ""
		case strings.HasPrefix(p, base+"/"):
			p = p[len(base)+1:]
		}
	}
	return strings.TrimLeft(p, "/")
}

// Backends holds the scanners for every supported backend.
type Backends struct {
	Embedded   Scanner
	Filesystem Scanner
}

// ScannerFor returns the scanner for the backend of loc. It returns an error if
// no scanner is configured for it.
//
//nolint:ireturn // The scanner implementation depends on the location.
func (b Backends) ScannerFor(loc location.Location) (Scanner, error) {
	var s Scanner
	switch loc.Backend() {
	case location.BackendEmbedded:
		s = b.Embedded
	case location.BackendFilesystem:
		s = b.Filesystem
	}
	if s == nil {
		return nil, fmt.Errorf("no scanner configured for the %s backend", loc.Backend())
	}

	return s, nil
}
