package resource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.hackfix.me/migres/location"
)

// EmbeddedScanner scans locations in one or more embedded bundles. Bundles
// are searched in order, and resources from all bundles containing the
// location are returned, similar to a class path.
type EmbeddedScanner struct {
	bundles []fs.FS
}

var _ Scanner = (*EmbeddedScanner)(nil)

// NewEmbeddedScanner returns a new scanner for the given bundles.
func NewEmbeddedScanner(bundles ...fs.FS) *EmbeddedScanner {
	return &EmbeddedScanner{bundles: bundles}
}

// Scan implements the Scanner interface. It returns an error wrapping
// fs.ErrNotExist if the location isn't a directory in any of the bundles.
func (s *EmbeddedScanner) Scan(ctx context.Context, loc location.Location) ([]Resource, error) {
	dir := loc.Path()
	if loc.IsRoot() {
		dir = "."
	}

	var (
		resources []Resource
		found     bool
	)
	for i, bundle := range s.bundles {
		info, err := fs.Stat(bundle, dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed reading bundle %d: %w", i, err)
		}
		if !info.IsDir() {
			continue
		}
		found = true

		err = fs.WalkDir(bundle, dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err = ctx.Err(); err != nil {
				return err //nolint:wrapcheck // Wrapped below.
			}
			if !d.IsDir() {
				resources = append(resources, NewEmbeddedResource(p))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed scanning bundle %d: %w", i, err)
		}
	}

	if !found {
		return nil, &fs.PathError{Op: "scan", Path: dir, Err: fs.ErrNotExist}
	}

	return resources, nil
}
