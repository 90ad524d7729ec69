package resolver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/migres/location"
	"go.hackfix.me/migres/version"
)

func newMigration(ver, script, loc string) *Migration {
	return &Migration{
		Version:  version.MustParse(ver),
		Script:   script,
		Location: location.Parse(loc),
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	migs := []*Migration{
		newMigration("2.0", "V2_0__c.sql", "db"),
		newMigration("1.0", "V1_0__b.sql", "db"),
		newMigration("1.10", "V1_10__e.sql", "db"),
		newMigration("1", "V1__a.sql", "db"),
		newMigration("1.9", "V1_9__d.sql", "db"),
	}
	Sort(migs)

	got := make([]string, 0, len(migs))
	for _, m := range migs {
		got = append(got, m.Version.String())
	}
	assert.Equal(t, []string{"1", "1.0", "1.9", "1.10", "2.0"}, got)
}

func TestConflicts(t *testing.T) {
	t.Parallel()

	migs := []*Migration{
		newMigration("2", "V2__b.sql", "db"),
		newMigration("1.1", "V1_1__a.sql", "db"),
		newMigration("01.1", "V01.1__a.sql", "filesystem:/extra"),
		newMigration("3", "V3__c.sql", "db"),
		newMigration("2", "V2__other.sql", "addon"),
		newMigration("1.1.0", "V1.1.0__x.sql", "db"),
	}
	orig := append([]*Migration(nil), migs...)

	conflicts := Conflicts(migs)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "1.1", conflicts[0].Version.String())
	assert.Len(t, conflicts[0].Migrations, 2)
	assert.Equal(t, "2", conflicts[1].Version.String())
	assert.Len(t, conflicts[1].Migrations, 2)

	// The input isn't reordered.
	assert.Equal(t, orig, migs)

	err := CheckConflicts(migs)
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.EqualError(t, err, "found more than one migration with the same version: "+
		"version 1.1: V1_1__a.sql (db), V01.1__a.sql (filesystem:/extra); "+
		"version 2: V2__b.sql (db), V2__other.sql (addon)")

	assert.NoError(t, CheckConflicts([]*Migration{migs[0], migs[1], migs[3], migs[5]}))
	assert.Empty(t, Conflicts(nil))
}

func TestMigrationJSON(t *testing.T) {
	t.Parallel()

	m := newMigration("1_1", "V1_1__Populate_table.sql", "filesystem:/sql")
	m.Description = "Populate table"
	m.PhysicalPath = "/sql/V1_1__Populate_table.sql"

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": "1.1",
		"description": "Populate table",
		"script": "V1_1__Populate_table.sql",
		"location": "filesystem:/sql",
		"physical_path": "/sql/V1_1__Populate_table.sql"
	}`, string(out))
}
