package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"go.hackfix.me/migres/app/config"
	actx "go.hackfix.me/migres/app/context"
)

// CLI is the command line interface of migres.
type CLI struct {
	Resolve  Resolve      `kong:"cmd,help='List the migrations found in one or more locations, ordered by version.',aliases='ls'"`
	Validate Validate     `kong:"cmd,help='Check that migrations can be resolved, and that their versions are unique.'"`
	New      NewMigration `kong:"cmd,help='Create a new migration script on the filesystem.'"`
	Init     Init         `kong:"cmd,help='Write the effective configuration to the configuration file.'"`

	Log struct {
		Level slog.Level `enum:"DEBUG,INFO,WARN,ERROR" default:"INFO" help:"Set the app logging level."`
	} `embed:"" prefix:"log-"`
	// NOTE: I'm deliberately not using kong.ConfigFlag or its support for reading
	// values from configuration files, since I want to manage configuration
	// independently from the CLI.
	ConfigFile string           `kong:"default='${configFile}',help='Path to the configuration file.'"`
	Version    kong.VersionFlag `kong:"help='Output version and exit.'"`

	kong *kong.Kong
	kctx *kong.Context
}

// New initializes the command-line interface.
func New(name, configFilePath, version string) (*CLI, error) {
	c := &CLI{}
	kparser, err := kong.New(c,
		kong.Name(name),
		kong.Description("Resolve versioned SQL migrations from the filesystem and embedded bundles."),
		kong.UsageOnError(),
		kong.DefaultEnvars(strings.ToUpper(name)),
		kong.NamedMapper("fslocation", FilesystemLocationMapper{}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"configFile": configFilePath,
			"version":    version,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed creating the Kong parser: %w", err)
	}

	c.kong = kparser

	return c, nil
}

// Execute starts the command execution. Parse must be called before this method.
func (c *CLI) Execute(appCtx *actx.Context) error {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	c.kong.Stdout = appCtx.Stdout
	c.kong.Stderr = appCtx.Stderr

	//nolint:wrapcheck // This is fine.
	return c.kctx.Run(appCtx)
}

// Parse the given command line arguments. This method must be called before
// Execute.
func (c *CLI) Parse(args []string) error {
	kctx, err := c.kong.Parse(args)
	if err != nil {
		return fmt.Errorf("failed parsing CLI arguments: %w", err)
	}
	c.kctx = kctx

	return nil
}

// Command returns the full path of the executed command.
func (c *CLI) Command() string {
	if c.kctx == nil {
		panic("the CLI wasn't initialized properly")
	}
	cmdPath := []string{}
	for _, p := range c.kctx.Path {
		if p.Command != nil {
			cmdPath = append(cmdPath, p.Command.Name)
		}
	}

	return strings.Join(cmdPath, " ")
}

// ApplyConfig overrides configuration values with the options of the executed
// command, if they were set. Commands read their settings from the resulting
// configuration. Parse must be called before this method.
func (c *CLI) ApplyConfig(cfg *config.Config) {
	switch c.Command() {
	case "resolve":
		c.Resolve.Scan.applyConfig(cfg, c.Resolve.Locations)
	case "validate":
		c.Validate.Scan.applyConfig(cfg, c.Validate.Locations)
	case "new":
		c.New.applyConfig(cfg)
	case "init":
		c.Init.Scan.applyConfig(cfg, c.Init.Locations)
	}
}
