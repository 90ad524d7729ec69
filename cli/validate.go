package cli

import (
	"errors"
	"fmt"

	actx "go.hackfix.me/migres/app/context"
	aerrors "go.hackfix.me/migres/app/errors"
	"go.hackfix.me/migres/resolver"
)

// Validate checks that migrations can be resolved, and that no two of them
// share the same version.
type Validate struct {
	//nolint:lll // Long struct tags are unavoidable.
	Locations []string    `arg:"" optional:"" help:"Locations to scan for migrations. Prefix with 'filesystem:' to scan a filesystem directory, otherwise the class path is searched. \n Default: the configured locations."`
	Scan      scanOptions `embed:""`
}

// Run the validate command.
func (c *Validate) Run(appCtx *actx.Context) error {
	migs, err := resolve(appCtx)
	if err != nil {
		return err
	}

	replacer := appCtx.Config.Placeholder.Replacer()
	for _, m := range migs {
		if missing := replacer.Unresolved(m.Description); len(missing) > 0 {
			appCtx.Logger.Warn("migration description contains unresolved placeholders",
				"script", m.Script, "location", m.Location.String(), "placeholders", missing)
		}
	}

	err = resolver.CheckConflicts(migs)
	var cErr *resolver.ConflictError
	if errors.As(err, &cErr) {
		var conflicting []*resolver.Migration
		for _, conflict := range cErr.Conflicts {
			conflicting = append(conflicting, conflict.Migrations...)
		}
		rerr := renderMigrations(appCtx.Stdout, conflicting, versionColumn, scriptColumn, locationColumn)
		if rerr != nil {
			return aerrors.NewWithCause("failed rendering table", rerr)
		}

		return aerrors.NewWithCause(
			"validation failed", err, "conflicts", len(cErr.Conflicts))
	}

	_, err = fmt.Fprintf(appCtx.Stdout, "Successfully validated %d migrations\n", len(migs))
	if err != nil {
		return aerrors.NewWithCause("failed writing to stdout", err)
	}

	return nil
}
