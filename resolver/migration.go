package resolver

import (
	"slices"

	"go.hackfix.me/migres/location"
	"go.hackfix.me/migres/version"
)

// Migration is a migration script resolved from a location.
type Migration struct {
	Version     version.Version `json:"version"`
	Description string          `json:"description"`
	// Script is the path of the script relative to its location, using '/' as
	// the separator.
	Script   string            `json:"script"`
	Location location.Location `json:"location"`
	// PhysicalPath is the backend-native path of the script.
	PhysicalPath string `json:"physical_path"`
}

// Compare orders migrations by version only.
func (m *Migration) Compare(other *Migration) int {
	return version.Compare(m.Version, other.Version)
}

// Sort sorts migrations by version in place. Migrations with equal versions
// keep their relative order, but callers shouldn't rely on it; see Conflicts.
func Sort(migs []*Migration) {
	slices.SortStableFunc(migs, (*Migration).Compare)
}

// Conflict is a group of migrations sharing the same version.
type Conflict struct {
	Version    version.Version
	Migrations []*Migration
}

// Conflicts returns all groups of migrations that share a version, ordered by
// version. The passed slice isn't modified.
func Conflicts(migs []*Migration) []Conflict {
	sorted := slices.Clone(migs)
	Sort(sorted)

	var conflicts []Conflict
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[i].Compare(sorted[j]) == 0 {
			j++
		}
		if j-i > 1 {
			conflicts = append(conflicts, Conflict{
				Version:    sorted[i].Version,
				Migrations: sorted[i:j:j],
			})
		}
		i = j
	}

	return conflicts
}

// CheckConflicts returns a *ConflictError if more than one migration shares
// the same version.
func CheckConflicts(migs []*Migration) error {
	if c := Conflicts(migs); len(c) > 0 {
		return &ConflictError{Conflicts: c}
	}
	return nil
}
