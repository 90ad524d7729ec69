package cli

import (
	"fmt"

	"github.com/mandelsoft/vfs/pkg/vfs"

	actx "go.hackfix.me/migres/app/context"
	aerrors "go.hackfix.me/migres/app/errors"
)

// The Init command writes the effective configuration, with defaults and
// command line options applied, to the configuration file.
type Init struct {
	//nolint:lll // Long struct tags are unavoidable.
	Locations []string    `arg:"" optional:"" help:"Locations to scan for migrations. Prefix with 'filesystem:' to scan a filesystem directory, otherwise the class path is searched. \n Default: db/migration"`
	Force     bool        `help:"Overwrite an existing configuration file."`
	Scan      scanOptions `embed:""`
}

// Run the init command.
func (c *Init) Run(appCtx *actx.Context) error {
	cfgPath := appCtx.Config.Path()
	_, err := appCtx.FS.Stat(cfgPath)
	switch {
	case err == nil && !c.Force:
		return aerrors.NewWith("configuration file already exists",
			"path", cfgPath, "hint", "Pass --force to overwrite it.")
	case err != nil && !vfs.IsErrNotExist(err):
		return aerrors.NewWithCause("failed reading configuration file", err, "path", cfgPath)
	}

	if err = appCtx.Config.Save(); err != nil {
		return aerrors.NewWithCause("failed saving configuration", err, "path", cfgPath)
	}

	appCtx.Logger.Info("saved configuration", "path", cfgPath)

	if _, err = fmt.Fprintln(appCtx.Stdout, cfgPath); err != nil {
		return aerrors.NewWithCause("failed writing to stdout", err)
	}

	return nil
}
