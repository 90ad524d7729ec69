package cli

import (
	"encoding/json"

	actx "go.hackfix.me/migres/app/context"
	aerrors "go.hackfix.me/migres/app/errors"
	"go.hackfix.me/migres/resolver"
)

// Resolve lists the migrations found in one or more locations.
type Resolve struct {
	//nolint:lll // Long struct tags are unavoidable.
	Locations []string    `arg:"" optional:"" help:"Locations to scan for migrations. Prefix with 'filesystem:' to scan a filesystem directory, otherwise the class path is searched. \n Default: the configured locations."`
	Format    string      `enum:"table,json" default:"table" help:"Output format. One of: ${enum}"`
	Scan      scanOptions `embed:""`
}

// Run the resolve command.
func (c *Resolve) Run(appCtx *actx.Context) error {
	migs, err := resolve(appCtx)
	if err != nil {
		return err
	}
	resolver.Sort(migs)

	if c.Format == "json" {
		enc := json.NewEncoder(appCtx.Stdout)
		enc.SetIndent("", "  ")
		if err = enc.Encode(migs); err != nil {
			return aerrors.NewWithCause("failed writing to stdout", err)
		}
		return nil
	}

	err = renderMigrations(appCtx.Stdout, migs,
		versionColumn, descriptionColumn, scriptColumn, locationColumn)
	if err != nil {
		return aerrors.NewWithCause("failed rendering table", err)
	}

	return nil
}
