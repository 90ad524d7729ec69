package resource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/migres/location"
)

// FilesystemScanner scans locations on a filesystem.
type FilesystemScanner struct {
	fs vfs.FileSystem
}

var _ Scanner = (*FilesystemScanner)(nil)

// NewFilesystemScanner returns a new scanner for the given filesystem.
func NewFilesystemScanner(fsys vfs.FileSystem) *FilesystemScanner {
	return &FilesystemScanner{fs: fsys}
}

// Scan implements the Scanner interface. Relative location paths are resolved
// against the working directory of the filesystem.
func (s *FilesystemScanner) Scan(ctx context.Context, loc location.Location) ([]Resource, error) {
	dir := loc.Path()
	if dir == "" {
		dir = "."
	}

	info, err := s.fs.Stat(dir)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already a *fs.PathError.
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "scan", Path: dir, Err: errors.New("not a directory")}
	}

	var resources []Resource
	err = vfs.Walk(s.fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err = ctx.Err(); err != nil {
			return err //nolint:wrapcheck // Wrapped below.
		}
		if !info.IsDir() {
			resources = append(resources, NewFileResource(p))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed walking directory '%s': %w", dir, err)
	}

	return resources, nil
}
