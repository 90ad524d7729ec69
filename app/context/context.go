package context

import (
	"context"
	"io"
	"io/fs"
	"log/slog"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/migres/app/config"
)

// Context contains common objects used by the application. It is passed around
// the application to avoid direct dependencies on external systems, and make
// testing easier.
type Context struct {
	Ctx    context.Context // global context, cancels migration scanning
	FS     vfs.FileSystem  // filesystem
	Config *config.Config  // loaded configuration, with defaults applied
	Logger *slog.Logger    // global logger

	// Bundles are searched for embedded locations before any class path
	// entry. They're usually embed.FS values compiled into the binary.
	Bundles []fs.FS

	// Output streams. Commands never read from stdin.
	Stdout io.Writer
	Stderr io.Writer

	// Metadata
	Version *VersionInfo
}
