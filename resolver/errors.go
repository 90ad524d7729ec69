package resolver

import (
	"fmt"
	"strings"

	"go.hackfix.me/migres/location"
	"go.hackfix.me/migres/resource"
)

// LocationNotFoundError is returned when a location doesn't exist or can't be
// enumerated. An existing location without migrations isn't an error.
type LocationNotFoundError struct {
	Location location.Location
	Err      error
}

// Error returns a string representation of the error.
func (e LocationNotFoundError) Error() string {
	msg := fmt.Sprintf("unable to resolve migrations: location '%s' not found", e.Location)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping.
func (e LocationNotFoundError) Unwrap() error {
	return e.Err
}

// ResolutionError is returned when a resource matching the naming convention
// can't be resolved to a migration, e.g. because of an invalid version.
type ResolutionError struct {
	Resource resource.Resource
	Err      error
}

// Error returns a string representation of the error.
func (e ResolutionError) Error() string {
	return fmt.Sprintf("failed resolving migration from '%s': %s", e.Resource.Path(), e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e ResolutionError) Unwrap() error {
	return e.Err
}

// ConflictError is returned by CheckConflicts when more than one migration
// shares the same version.
type ConflictError struct {
	Conflicts []Conflict
}

// Error returns a string representation of the error.
func (e ConflictError) Error() string {
	msgs := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		scripts := make([]string, 0, len(c.Migrations))
		for _, m := range c.Migrations {
			scripts = append(scripts, fmt.Sprintf("%s (%s)", m.Script, m.Location))
		}
		msgs = append(msgs, fmt.Sprintf("version %s: %s", c.Version, strings.Join(scripts, ", ")))
	}
	return fmt.Sprintf("found more than one migration with the same version: %s", strings.Join(msgs, "; "))
}
