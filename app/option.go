package app

import (
	"context"
	"io"
	"io/fs"
	"log/slog"

	"github.com/lmittmann/tint"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// Option is a function that allows configuring the application.
type Option func(*App)

// WithBundles sets the bundles searched for embedded locations, before any
// class path entry.
func WithBundles(bundles ...fs.FS) Option {
	return func(app *App) {
		app.ctx.Bundles = bundles
	}
}

// WithContext sets the main context.
func WithContext(ctx context.Context) Option {
	return func(app *App) {
		app.ctx.Ctx = ctx
	}
}

// WithFDs sets the output streams used by the application.
func WithFDs(stdout, stderr io.Writer) Option {
	return func(app *App) {
		app.ctx.Stdout = stdout
		app.ctx.Stderr = stderr
	}
}

// WithFS sets the filesystem used by the application.
func WithFS(fs vfs.FileSystem) Option {
	return func(app *App) {
		app.ctx.FS = fs
	}
}

// WithLogger initializes the logger used by the application. It must be passed
// after WithFDs, since it logs to the configured stderr.
func WithLogger(_, isStderrTTY bool) Option {
	return func(app *App) {
		lvl := &slog.LevelVar{}
		lvl.Set(slog.LevelInfo)
		logger := slog.New(
			tint.NewHandler(app.ctx.Stderr, &tint.Options{
				Level:      lvl,
				NoColor:    !isStderrTTY,
				TimeFormat: "2006-01-02 15:04:05.000",
			}),
		)
		app.logLevel = lvl
		app.ctx.Logger = logger
		slog.SetDefault(logger)
	}
}
