package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hackfix.me/migres/location"
	"go.hackfix.me/migres/resolver"
	"go.hackfix.me/migres/version"
)

func TestParseFilesystemLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		expPath string
		expErr  string
	}{
		{name: "ok/prefixed", value: "filesystem:/db/migration", expPath: "/db/migration"},
		{name: "ok/bare_absolute", value: "/db/migration/", expPath: "/db/migration"},
		{name: "ok/bare_relative", value: "sql", expPath: "sql"},
		{name: "ok/working_dir", value: "filesystem:", expPath: ""},
		{name: "ok/dot", value: ".", expPath: ""},
		{name: "ok/dot_segments", value: "./db/../sql/", expPath: "sql"},
		{name: "err/class_path", value: "classpath:db", expErr: "location 'classpath:db' must be on the filesystem"},
		{name: "err/empty", value: "", expErr: "location '' has an empty path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc, err := parseFilesystemLocation(tt.value)
			if tt.expErr != "" {
				assert.EqualError(t, err, tt.expErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, loc.IsFilesystem())
			assert.Equal(t, tt.expPath, loc.Path())
		})
	}
}

func TestRenderMigrations(t *testing.T) {
	t.Parallel()

	loc := location.Parse("filesystem:/db/migration")
	migs := []*resolver.Migration{
		{Version: version.MustParse("1"), Description: "First", Script: "V1__First.sql", Location: loc},
		{Version: version.MustParse("1.1"), Description: "Second", Script: "sub/V1_1__Second.sql", Location: loc},
	}

	tests := []struct {
		name   string
		migs   []*resolver.Migration
		cols   []column
		expOut []string
		notOut []string
	}{
		{
			name:   "ok/all_columns",
			migs:   migs,
			cols:   []column{versionColumn, descriptionColumn, scriptColumn, locationColumn},
			expOut: []string{"Version", "Description", "Script", "Location", "First", "sub/V1_1__Second.sql", "filesystem:/db/migration"},
		},
		{
			name:   "ok/without_description",
			migs:   migs,
			cols:   []column{versionColumn, scriptColumn},
			expOut: []string{"Version", "Script", "V1__First.sql", "1.1"},
			notOut: []string{"Description", "filesystem:"},
		},
		{
			name: "ok/empty",
			cols: []column{versionColumn},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := renderMigrations(&buf, tt.migs, tt.cols...)
			require.NoError(t, err)

			out := buf.String()
			if tt.migs == nil {
				assert.Empty(t, out)
				return
			}
			for _, exp := range tt.expOut {
				assert.Contains(t, out, exp)
			}
			for _, exp := range tt.notOut {
				assert.NotContains(t, out, exp)
			}
			assert.Less(t, strings.Index(out, "V1__First"), strings.Index(out, "V1_1__Second"))
		})
	}
}
