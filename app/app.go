package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mandelsoft/vfs/pkg/memoryfs"

	"go.hackfix.me/migres/app/config"
	actx "go.hackfix.me/migres/app/context"
	"go.hackfix.me/migres/cli"
)

// App is the application.
type App struct {
	name string
	ctx  *actx.Context
	cli  *cli.CLI
	// the logging level is set via the CLI, if the app was initialized with the
	// WithLogger option.
	logLevel *slog.LevelVar
}

// New initializes a new application. configFilePath is the default path of the
// configuration file, which can be overridden with the --config-file flag.
func New(name, configFilePath string, opts ...Option) (*App, error) {
	version, err := actx.GetVersion()
	if err != nil {
		return nil, err
	}

	defaultCtx := &actx.Context{
		Ctx:     context.Background(),
		FS:      memoryfs.New(),
		Logger:  slog.Default(),
		Stdout:  io.Discard,
		Stderr:  io.Discard,
		Version: version,
	}
	app := &App{name: name, ctx: defaultCtx}

	for _, opt := range opts {
		opt(app)
	}

	ver := fmt.Sprintf("%s %s", app.name, app.ctx.Version.String())
	app.cli, err = cli.New(app.name, configFilePath, ver)
	if err != nil {
		return nil, err
	}

	return app, nil
}

// Run initializes the application environment and starts execution of the
// application.
func (app *App) Run(args []string) error {
	if err := app.cli.Parse(args); err != nil {
		return err
	}

	if app.logLevel != nil {
		app.logLevel.Set(app.cli.Log.Level)
		slog.SetLogLoggerLevel(app.cli.Log.Level)
	}

	cfg := config.NewConfig(app.ctx.FS, app.cli.ConfigFile)
	if err := cfg.Load(); err != nil {
		return err
	}
	cfg.SetDefaults()
	app.ctx.Config = cfg
	app.cli.ApplyConfig(cfg)

	app.ctx.Logger.Debug("loaded configuration", "path", cfg.Path())

	if err := app.cli.Execute(app.ctx); err != nil {
		return err
	}

	return nil
}
