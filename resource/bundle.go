package resource

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/mandelsoft/vfs/pkg/vfs"
)

// OpenBundle returns an embedded bundle backed by the given class path entry,
// which can be a directory or a zip/jar archive.
//
//nolint:ireturn // The bundle implementation depends on the entry type.
func OpenBundle(fsys vfs.FileSystem, p string) (fs.FS, error) {
	info, err := fsys.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("failed opening class path entry: %w", err)
	}
	if info.IsDir() {
		return DirBundle(fsys, p), nil
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".zip", ".jar":
	default:
		return nil, fmt.Errorf("unsupported class path entry '%s': must be a directory or a zip/jar archive", p)
	}

	data, err := vfs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed reading archive '%s': %w", p, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed reading archive '%s': %w", p, err)
	}

	return zr, nil
}

// DirBundle returns an embedded bundle rooted at dir on the given filesystem.
//
//nolint:ireturn // Intentional, the bundle is consumed through io/fs.
func DirBundle(fsys vfs.FileSystem, dir string) fs.FS {
	return &dirBundle{fs: fsys, root: dir}
}

type dirBundle struct {
	fs   vfs.FileSystem
	root string
}

var (
	_ fs.StatFS    = (*dirBundle)(nil)
	_ fs.ReadDirFS = (*dirBundle)(nil)
)

func (b *dirBundle) resolve(op, name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	return path.Join(b.root, name), nil
}

func (b *dirBundle) Open(name string) (fs.File, error) {
	p, err := b.resolve("open", name)
	if err != nil {
		return nil, err
	}
	f, err := b.fs.Open(p)
	if err != nil {
		return nil, b.pathError("open", name, err)
	}

	return f, nil
}

func (b *dirBundle) Stat(name string) (fs.FileInfo, error) {
	p, err := b.resolve("stat", name)
	if err != nil {
		return nil, err
	}

	info, err := b.fs.Stat(p)
	if err != nil {
		return nil, b.pathError("stat", name, err)
	}

	return info, nil
}

func (b *dirBundle) ReadDir(name string) ([]fs.DirEntry, error) {
	p, err := b.resolve("readdir", name)
	if err != nil {
		return nil, err
	}
	infos, err := vfs.ReadDir(b.fs, p)
	if err != nil {
		return nil, b.pathError("readdir", name, err)
	}

	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	return entries, nil
}

// pathError reports err relative to the bundle root, as io/fs expects. Missing
// files always match fs.ErrNotExist, regardless of the filesystem.
func (b *dirBundle) pathError(op, name string, err error) error {
	if vfs.IsErrNotExist(err) {
		err = fs.ErrNotExist
	} else {
		var pErr *fs.PathError
		if errors.As(err, &pErr) {
			err = pErr.Err
		}
	}

	return &fs.PathError{Op: op, Path: name, Err: err}
}
