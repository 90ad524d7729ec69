package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go.hackfix.me/migres/app/config"
	"go.hackfix.me/migres/location"
	"go.hackfix.me/migres/resolver"
)

func TestAppValidate(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Resolve: config.Resolve{
			ClassPath: []string{"/lib"},
			Locations: []location.Location{location.Parse("filesystem:/db/migration")},
		},
	}

	tests := []struct {
		name         string
		files        []string
		args         []string
		expStdout    []string
		expStderr    []string
		expConflicts int
		expErr       string
	}{
		{
			name:      "ok/unique",
			files:     []string{"/db/migration/V1__First.sql", "/db/migration/V1_1__Second.sql"},
			expStdout: []string{"Successfully validated 2 migrations\n"},
		},
		{
			name:      "ok/empty",
			files:     []string{"/db/migration/README.md"},
			expStdout: []string{"Successfully validated 0 migrations\n"},
		},
		{
			name:      "ok/unresolved_placeholder",
			files:     []string{"/db/migration/V1__Add_${column}.sql"},
			expStdout: []string{"Successfully validated 1 migrations\n"},
			expStderr: []string{
				"migration description contains unresolved placeholders",
				"V1__Add_${column}.sql",
			},
		},
		{
			name:      "ok/resolved_placeholder",
			files:     []string{"/db/migration/V1__Add_${column}.sql"},
			args:      []string{"--placeholder", "column=email"},
			expStdout: []string{"Successfully validated 1 migrations\n"},
		},
		{
			name: "err/conflict",
			files: []string{
				"/db/migration/V1__A.sql",
				"/db/migration/V01__B.sql",
				"/db/migration/V2__C.sql",
				"/lib/db/migration/V2_0__D.sql",
			},
			args:         []string{"filesystem:/db/migration", "db/migration"},
			expStdout:    []string{"V1__A.sql", "V01__B.sql", "filesystem:/db/migration"},
			expConflicts: 1,
			expErr:       "validation failed",
		},
		{
			name: "err/conflict_across_locations",
			files: []string{
				"/db/migration/V2__C.sql",
				"/lib/db/migration/V2__D.sql",
			},
			args:         []string{"filesystem:/db/migration", "db/migration"},
			expStdout:    []string{"V2__C.sql", "V2__D.sql", "db/migration"},
			expConflicts: 1,
			expErr:       "validation failed",
		},
		{
			name:   "err/location_not_found",
			files:  []string{"/lib/README.md"},
			args:   []string{"db/missing"},
			expErr: "location 'db/missing' not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tctx, cancel, h := newTestContext(t, 5*time.Second)
			defer cancel()

			app, err := newTestApp(tctx)
			h(assert.NoError(t, err))
			h(assert.NoError(t, app.writeConfig(cfg)))
			h(assert.NoError(t, app.ctx.FS.MkdirAll("/lib", 0o755)))
			h(assert.NoError(t, app.writeFiles(tt.files...)))

			err = app.Run(append([]string{"validate"}, tt.args...)...)
			stdout := app.stdout.String()
			stderr := app.stderr.String()

			for _, exp := range tt.expStdout {
				h(assert.Contains(t, stdout, exp))
			}
			for _, exp := range tt.expStderr {
				h(assert.Contains(t, stderr, exp))
			}
			if tt.expStderr == nil {
				h(assert.Empty(t, stderr))
			}

			if tt.expErr != "" {
				h(assert.ErrorContains(t, err, tt.expErr))
				if tt.expConflicts > 0 {
					var cErr *resolver.ConflictError
					h(assert.True(t, errors.As(err, &cErr)))
					h(assert.Len(t, cErr.Conflicts, tt.expConflicts))
				}
				return
			}

			h(assert.NoError(t, err))
		})
	}
}
