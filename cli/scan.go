package cli

import (
	"database/sql"
	"errors"
	"maps"
	"slices"

	"go.hackfix.me/migres/app/config"
	actx "go.hackfix.me/migres/app/context"
	aerrors "go.hackfix.me/migres/app/errors"
	"go.hackfix.me/migres/location"
	"go.hackfix.me/migres/resolver"
	"go.hackfix.me/migres/resource"
)

// scanOptions are the options shared by commands that resolve migrations.
type scanOptions struct {
	Prefix    string   `help:"Filename prefix of migration scripts. Default: V"`
	Suffix    string   `help:"Filename suffix of migration scripts. Default: .sql"`
	ClassPath []string `name:"classpath" help:"Directories or zip/jar archives searched for locations without the 'filesystem:' prefix. Default: ."`
	//nolint:lll // Long struct tags are unavoidable.
	Placeholders      map[string]string `name:"placeholder" placeholder:"KEY=VALUE" help:"Value substituted for a placeholder in migration descriptions. Can be repeated."`
	PlaceholderPrefix string            `help:"Text that opens a placeholder."`
	PlaceholderSuffix string            `help:"Text that closes a placeholder."`
}

// applyConfig overrides configuration values with the ones passed on the
// command line. rawLocs replace the configured locations if any are passed.
func (o *scanOptions) applyConfig(cfg *config.Config, rawLocs []string) {
	if len(rawLocs) > 0 {
		locs := make([]location.Location, 0, len(rawLocs))
		for _, raw := range rawLocs {
			locs = append(locs, location.Parse(raw))
		}
		cfg.Resolve.Locations = locs
	}
	if len(o.ClassPath) > 0 {
		cfg.Resolve.ClassPath = o.ClassPath
	}
	setString(&cfg.Resolve.Prefix, o.Prefix)
	setString(&cfg.Resolve.Suffix, o.Suffix)

	if len(o.Placeholders) > 0 {
		values := maps.Clone(cfg.Placeholder.Values)
		if values == nil {
			values = map[string]string{}
		}
		maps.Copy(values, o.Placeholders)
		cfg.Placeholder.Values = values
	}
	setString(&cfg.Placeholder.Prefix, o.PlaceholderPrefix)
	setString(&cfg.Placeholder.Suffix, o.PlaceholderSuffix)
}

// resolve returns the migrations found in the configured locations, in
// discovery order.
func resolve(appCtx *actx.Context) ([]*resolver.Migration, error) {
	cfg := appCtx.Config

	bundles := slices.Clone(appCtx.Bundles)
	for _, entry := range cfg.Resolve.ClassPath {
		b, err := resource.OpenBundle(appCtx.FS, entry)
		if err != nil {
			return nil, aerrors.NewWithCause(
				"failed opening class path entry", err, "classpath.entry", entry)
		}
		bundles = append(bundles, b)
	}

	r, err := resolver.New(resource.Backends{
		Embedded:   resource.NewEmbeddedScanner(bundles...),
		Filesystem: resource.NewFilesystemScanner(appCtx.FS),
	}, resolver.WithLogger(appCtx.Logger))
	if err != nil {
		return nil, err
	}

	migs, err := r.ResolveLocations(appCtx.Ctx, cfg.Resolve.Locations,
		cfg.Resolve.Naming(), cfg.Placeholder.Replacer())
	if err != nil {
		var (
			lnfErr *resolver.LocationNotFoundError
			resErr *resolver.ResolutionError
		)
		switch {
		case errors.As(err, &lnfErr):
			fields := []any{"location", lnfErr.Location.String()}
			if !lnfErr.Location.IsFilesystem() {
				fields = append(fields, "hint",
					"Locations without the 'filesystem:' prefix are searched in the class path.")
			}
			return nil, aerrors.With(err, fields...)
		case errors.As(err, &resErr):
			return nil, aerrors.With(err, "resource", resErr.Resource.Path())
		}
		return nil, aerrors.NewWithCause("migration resolution aborted", err)
	}

	if migs == nil {
		migs = []*resolver.Migration{}
	}

	return migs, nil
}

// setString sets dst to val, unless val is empty.
func setString(dst *sql.Null[string], val string) {
	if val != "" {
		*dst = sql.Null[string]{V: val, Valid: true}
	}
}
