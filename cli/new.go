package cli

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/migres/app/config"
	actx "go.hackfix.me/migres/app/context"
	aerrors "go.hackfix.me/migres/app/errors"
	"go.hackfix.me/migres/location"
	"go.hackfix.me/migres/resolver"
	"go.hackfix.me/migres/resource"
	"go.hackfix.me/migres/version"
)

// NewMigration creates a new migration script on the filesystem.
type NewMigration struct {
	Description string `arg:"" help:"Description of the migration. Spaces are written as underscores in the filename."`
	//nolint:lll // Long struct tags are unavoidable.
	Location location.Location `type:"fslocation" help:"Filesystem directory to create the migration in. \n Default: the first configured filesystem location."`
	//nolint:lll // Long struct tags are unavoidable.
	Version string `name:"migration-version" help:"Version of the migration. \n Default: the version following the latest migration in the location."`

	Prefix string `help:"Filename prefix of migration scripts. Default: V"`
	Suffix string `help:"Filename suffix of migration scripts. Default: .sql"`
}

// Validate the command arguments.
func (c *NewMigration) Validate() error {
	if strings.TrimSpace(c.Description) == "" {
		return errors.New("description must not be empty")
	}
	if strings.Contains(c.Description, "/") {
		return errors.New("description must not contain '/'")
	}
	return nil
}

// applyConfig overrides the configured naming with the one passed on the
// command line. If no location was passed, the first configured filesystem
// location is used.
func (c *NewMigration) applyConfig(cfg *config.Config) {
	setString(&cfg.Resolve.Prefix, c.Prefix)
	setString(&cfg.Resolve.Suffix, c.Suffix)
	if c.Location != (location.Location{}) {
		return
	}
	for _, loc := range cfg.Resolve.Locations {
		if loc.IsFilesystem() {
			c.Location = loc
			break
		}
	}
}

// Run the new command.
func (c *NewMigration) Run(appCtx *actx.Context) error {
	if c.Location == (location.Location{}) {
		return aerrors.NewWith("no filesystem location to create the migration in",
			"hint", "Pass one with --location, or configure a location with the 'filesystem:' prefix.")
	}

	dir := c.Location.Path()
	if dir == "" {
		dir = "."
	}

	var migs []*resolver.Migration
	_, err := appCtx.FS.Stat(dir)
	switch {
	case vfs.IsErrNotExist(err):
		if err = appCtx.FS.MkdirAll(dir, 0o755); err != nil {
			return aerrors.NewWithCause("failed creating location directory", err, "path", dir)
		}
	case err != nil:
		return aerrors.NewWithCause("failed reading location directory", err, "path", dir)
	default:
		if migs, err = c.existing(appCtx); err != nil {
			return err
		}
	}

	ver, err := c.nextVersion(migs)
	if err != nil {
		return err
	}
	for _, m := range migs {
		if m.Version.Equal(ver) {
			return aerrors.NewWith("a migration with this version already exists",
				"version", ver.String(), "script", m.Script)
		}
	}

	naming := appCtx.Config.Resolve.Naming()
	fpath := path.Join(dir, naming.Filename(ver.String(), c.Description))
	content := fmt.Sprintf("-- %s\n", c.Description)
	if err = vfs.WriteFile(appCtx.FS, fpath, []byte(content), 0o644); err != nil {
		return aerrors.NewWithCause("failed writing migration script", err, "path", fpath)
	}

	appCtx.Logger.Info("created migration", "version", ver.String(), "path", fpath)

	if _, err = fmt.Fprintln(appCtx.Stdout, fpath); err != nil {
		return aerrors.NewWithCause("failed writing to stdout", err)
	}

	return nil
}

// existing returns the migrations in the target location.
func (c *NewMigration) existing(appCtx *actx.Context) ([]*resolver.Migration, error) {
	r, err := resolver.New(resource.Backends{
		Filesystem: resource.NewFilesystemScanner(appCtx.FS),
	}, resolver.WithLogger(appCtx.Logger))
	if err != nil {
		return nil, err
	}

	migs, err := r.ResolveMigrations(appCtx.Ctx, c.Location, appCtx.Config.Resolve.Naming(), nil)
	if err != nil {
		return nil, aerrors.With(err, "location", c.Location.String())
	}

	return migs, nil
}

func (c *NewMigration) nextVersion(migs []*resolver.Migration) (version.Version, error) {
	if c.Version != "" {
		ver, err := version.Parse(c.Version)
		if err != nil {
			return version.Version{}, aerrors.With(err, "version", c.Version)
		}
		return ver, nil
	}

	var latest version.Version
	for _, m := range migs {
		if latest.IsZero() || latest.Less(m.Version) {
			latest = m.Version
		}
	}

	next, err := latest.Next()
	if err != nil {
		return version.Version{}, aerrors.NewWithCause(
			"failed determining the next version", err,
			"latest", latest.String(), "hint", "Pass one with --migration-version.")
	}

	return next, nil
}
