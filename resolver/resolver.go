// Package resolver discovers migration scripts in locations and resolves their
// versions and descriptions.
//
// Resolution is synchronous, and every call scans its location anew. Scanning
// stops early once the passed context is done. The
// returned migrations are neither sorted nor deduplicated; use Sort and
// Conflicts to obtain a valid application sequence.
package resolver

import (
	"context"
	"errors"
	"log/slog"

	"go.hackfix.me/migres/location"
	"go.hackfix.me/migres/placeholder"
	"go.hackfix.me/migres/resource"
	"go.hackfix.me/migres/version"
)

// Resolver resolves migrations from locations in embedded bundles or on the
// filesystem. It holds no mutable state, and is safe for concurrent use.
type Resolver struct {
	backends resource.Backends
	logger   *slog.Logger
}

// New returns a new Resolver that scans locations with the given backends.
func New(backends resource.Backends, opts ...Option) (*Resolver, error) {
	if backends.Embedded == nil && backends.Filesystem == nil {
		return nil, errors.New("at least one resource backend is required")
	}

	r := &Resolver{backends: backends}

	opts = append(DefaultOptions(), opts...)
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ResolveMigrations scans loc recursively, and returns a migration for every
// resource whose filename matches naming. The transform is applied to each
// migration description; a nil transform leaves descriptions unchanged.
//
// It returns a *LocationNotFoundError if loc can't be scanned, and a
// *ResolutionError if the version of a matching resource is invalid. If ctx is
// done before scanning completes, the context error is returned as is. No
// migrations are returned on error.
func (r *Resolver) ResolveMigrations(
	ctx context.Context, loc location.Location, naming Naming, transform placeholder.Transformer,
) ([]*Migration, error) {
	logger := r.logger.With("location", loc.String())

	scanner, err := r.backends.ScannerFor(loc)
	if err != nil {
		return nil, &LocationNotFoundError{Location: loc, Err: err}
	}
	resources, err := scanner.Scan(ctx, loc)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr //nolint:wrapcheck // Callers check for context errors.
		}
		return nil, &LocationNotFoundError{Location: loc, Err: err}
	}

	if transform == nil {
		transform = placeholder.None
	}

	migs := make([]*Migration, 0, len(resources))
	for _, res := range resources {
		filename := res.Filename()
		if !naming.Matches(filename) {
			logger.Debug("skipping resource", "resource", res.Path())
			continue
		}

		token := ExtractVersionString(filename, naming.Prefix, naming.Suffix)
		rawVersion, description := SplitVersionDescription(token)
		ver, err := version.Parse(rawVersion)
		if err != nil {
			return nil, &ResolutionError{Resource: res, Err: err}
		}

		mig := &Migration{
			Version:      ver,
			Description:  transform.Transform(description),
			Script:       ExtractScriptName(res, loc),
			Location:     loc,
			PhysicalPath: res.Path(),
		}
		logger.Debug("resolved migration", "version", mig.Version, "script", mig.Script)
		migs = append(migs, mig)
	}

	logger.Debug("resolved location", "migrations", len(migs))

	return migs, nil
}

// ResolveLocations resolves migrations from all locs, in order, and returns
// them combined. It stops at the first location that fails.
func (r *Resolver) ResolveLocations(
	ctx context.Context, locs []location.Location, naming Naming, transform placeholder.Transformer,
) ([]*Migration, error) {
	var all []*Migration
	for _, loc := range locs {
		migs, err := r.ResolveMigrations(ctx, loc, naming, transform)
		if err != nil {
			return nil, err
		}
		all = append(all, migs...)
	}

	return all, nil
}

// ExtractScriptName returns the path of res relative to loc, which is used as
// the script identifier of the migration. It doesn't perform any I/O.
func ExtractScriptName(res resource.Resource, loc location.Location) string {
	return res.RelativeTo(loc)
}
