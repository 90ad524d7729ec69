package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		expBackend Backend
		expPath    string
		expRoot    bool
		expString  string
	}{
		{
			name: "embedded/plain", raw: "db/migration",
			expBackend: BackendEmbedded, expPath: "db/migration", expString: "db/migration",
		},
		{
			name: "embedded/separators_trimmed", raw: "/db/migration/",
			expBackend: BackendEmbedded, expPath: "db/migration", expString: "db/migration",
		},
		{
			name: "embedded/classpath_prefix", raw: "classpath:db/migration",
			expBackend: BackendEmbedded, expPath: "db/migration", expString: "db/migration",
		},
		{
			name: "embedded/backslashes", raw: `db\migration\`,
			expBackend: BackendEmbedded, expPath: "db/migration", expString: "db/migration",
		},
		{
			name: "embedded/root", raw: "",
			expBackend: BackendEmbedded, expPath: "", expRoot: true, expString: "",
		},
		{
			name: "embedded/all_separators", raw: "///",
			expBackend: BackendEmbedded, expPath: "", expRoot: true, expString: "",
		},
		{
			name: "filesystem/absolute", raw: "filesystem:/some/dir",
			expBackend: BackendFilesystem, expPath: "/some/dir", expString: "filesystem:/some/dir",
		},
		{
			name: "filesystem/trailing_separator", raw: "filesystem:/some/dir//",
			expBackend: BackendFilesystem, expPath: "/some/dir", expString: "filesystem:/some/dir",
		},
		{
			name: "filesystem/relative", raw: "filesystem:sql/",
			expBackend: BackendFilesystem, expPath: "sql", expString: "filesystem:sql",
		},
		{
			name: "filesystem/windows", raw: `filesystem:C:\db\sql`,
			expBackend: BackendFilesystem, expPath: "C:/db/sql", expString: "filesystem:C:/db/sql",
		},
		{
			name: "filesystem/slash_root", raw: "filesystem:/",
			expBackend: BackendFilesystem, expPath: "/", expRoot: true, expString: "filesystem:/",
		},
		{
			name: "filesystem/cwd_root", raw: "filesystem:",
			expBackend: BackendFilesystem, expPath: "", expRoot: true, expString: "filesystem:",
		},
		{
			name: "filesystem/dot_relative", raw: "filesystem:./sql",
			expBackend: BackendFilesystem, expPath: "sql", expString: "filesystem:sql",
		},
		{
			name: "filesystem/parent_segments", raw: "filesystem:sql/../sql",
			expBackend: BackendFilesystem, expPath: "sql", expString: "filesystem:sql",
		},
		{
			name: "filesystem/double_separator", raw: "filesystem:sql//sub",
			expBackend: BackendFilesystem, expPath: "sql/sub", expString: "filesystem:sql/sub",
		},
		{
			name: "filesystem/dot_root", raw: "filesystem:.",
			expBackend: BackendFilesystem, expPath: "", expRoot: true, expString: "filesystem:",
		},
		{
			name: "filesystem/parent_outside", raw: "filesystem:../shared/sql",
			expBackend: BackendFilesystem, expPath: "../shared/sql", expString: "filesystem:../shared/sql",
		},
		{
			name: "filesystem/absolute_dot_segments", raw: "filesystem:/srv/./db/../sql/",
			expBackend: BackendFilesystem, expPath: "/srv/sql", expString: "filesystem:/srv/sql",
		},
		{
			name: "embedded/dot_relative", raw: "./migration/subdir",
			expBackend: BackendEmbedded, expPath: "migration/subdir", expString: "migration/subdir",
		},
		{
			name: "embedded/dot_root", raw: "classpath:.",
			expBackend: BackendEmbedded, expPath: "", expRoot: true, expString: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc := Parse(tt.raw)
			assert.Equal(t, tt.expBackend, loc.Backend())
			assert.Equal(t, tt.expPath, loc.Path())
			assert.Equal(t, tt.expRoot, loc.IsRoot())
			assert.Equal(t, tt.expString, loc.String())
			assert.Equal(t, tt.raw, loc.Raw())
			assert.Equal(t, tt.expBackend == BackendFilesystem, loc.IsFilesystem())

			// The canonical form round-trips.
			reparsed := Parse(loc.String())
			assert.True(t, loc.Equal(reparsed), "%q != %q", loc, reparsed)
			assert.Equal(t, loc.String(), reparsed.String())
		})
	}
}

func TestTextMarshaling(t *testing.T) {
	t.Parallel()

	var loc Location
	require.NoError(t, loc.UnmarshalText([]byte("filesystem:/var/lib/sql/")))
	assert.Equal(t, "/var/lib/sql", loc.Path())

	out, err := loc.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "filesystem:/var/lib/sql", string(out))
}
