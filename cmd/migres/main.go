package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"go.hackfix.me/migres/app"
	aerrors "go.hackfix.me/migres/app/errors"
)

func main() {
	configFile := filepath.Join(xdg.ConfigHome, "migres", "config.json")

	a, err := app.New("migres", configFile,
		app.WithFDs(
			colorable.NewColorable(os.Stdout),
			colorable.NewColorable(os.Stderr),
		),
		app.WithFS(osfs.New()),
		app.WithLogger(
			isatty.IsTerminal(os.Stdout.Fd()),
			isatty.IsTerminal(os.Stderr.Fd()),
		),
	)
	if err != nil {
		aerrors.Log(slog.Default(), err)
		os.Exit(1)
	}
	if err = a.Run(os.Args[1:]); err != nil {
		aerrors.Log(slog.Default(), err)
		os.Exit(1)
	}
}
