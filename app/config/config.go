package config

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"go.hackfix.me/migres/location"
	"go.hackfix.me/migres/placeholder"
	"go.hackfix.me/migres/resolver"
)

// DefaultLocation is the location scanned if none is configured.
const DefaultLocation = "db/migration"

// Config represents the application configuration, backed by a filesystem for
// persistence.
type Config struct {
	Resolve     Resolve
	Placeholder Placeholder

	fs   vfs.FileSystem
	path string
}

// NewConfig creates a new Config instance with the specified filesystem
// and configuration file path.
func NewConfig(fs vfs.FileSystem, path string) *Config {
	return &Config{fs: fs, path: path}
}

// Load reads and parses the configuration file from the filesystem.
// If the file doesn't exist, it initializes with an empty configuration.
func (c *Config) Load() error {
	configJSON, err := vfs.ReadFile(c.fs, c.path)
	if err != nil && !vfs.IsErrNotExist(err) {
		return fmt.Errorf("failed reading configuration file: %w", err)
	}

	// Ensure that unmarshalling JSON doesn't fail if the file doesn't exist or is empty.
	if len(configJSON) == 0 {
		configJSON = []byte("{}")
	}

	if err = json.Unmarshal(configJSON, c); err != nil {
		return fmt.Errorf("failed parsing configuration file: %w", err)
	}

	return nil
}

// Path returns the filesystem path where the configuration is stored.
func (c *Config) Path() string {
	return c.path
}

// Save writes the current configuration to the filesystem as JSON. It returns
// an error if the configuration couldn't be loaded back.
func (c *Config) Save() error {
	if err := validateLocations(c.Resolve.Locations); err != nil {
		return err
	}
	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed creating configuration directory: %w", err)
	}
	configJSON, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed serializing configuration data: %w", err)
	}
	if err = vfs.WriteFile(c.fs, c.path, configJSON, 0o644); err != nil {
		return fmt.Errorf("failed writing configuration file: %w", err)
	}

	return nil
}

// Resolve defines how migrations are discovered.
type Resolve struct {
	// Locations are scanned for migrations in order. Locations prefixed with
	// "filesystem:" are scanned on the filesystem, all others in the class path.
	Locations []location.Location
	// ClassPath is the list of directories and zip/jar archives that embedded
	// locations are searched in.
	ClassPath []string
	// Prefix is the filename prefix of migration scripts.
	Prefix sql.Null[string]
	// Suffix is the filename suffix of migration scripts.
	Suffix sql.Null[string]
}

// Naming returns the naming convention of migration scripts. SetDefaults
// must be called before this method if prefix or suffix can be unset.
func (r Resolve) Naming() resolver.Naming {
	return resolver.Naming{Prefix: r.Prefix.V, Suffix: r.Suffix.V}
}

// Placeholder defines the substitution of placeholders in migration
// descriptions.
type Placeholder struct {
	// Values maps placeholder names to their replacement.
	Values map[string]string
	// Prefix is the text that opens a placeholder. Default: ${
	Prefix sql.Null[string]
	// Suffix is the text that closes a placeholder. Default: }
	Suffix sql.Null[string]
}

// Replacer returns the placeholder replacer for this configuration.
func (p Placeholder) Replacer() *placeholder.Replacer {
	return placeholder.NewReplacer(p.Values, p.Prefix.V, p.Suffix.V)
}

type cfgWrapper struct {
	Resolve     resolveCfgWrapper     `json:"resolve"`
	Placeholder placeholderCfgWrapper `json:"placeholder"`
}
type resolveCfgWrapper struct {
	Locations []location.Location `json:"locations,omitempty"`
	ClassPath []string            `json:"classpath,omitempty"`
	Prefix    string              `json:"prefix,omitempty"`
	Suffix    string              `json:"suffix,omitempty"`
}
type placeholderCfgWrapper struct {
	Values map[string]string `json:"values,omitempty"`
	Prefix string            `json:"prefix,omitempty"`
	Suffix string            `json:"suffix,omitempty"`
}

// MarshalJSON implements custom JSON marshaling to convert sql.Null values
// to their underlying types, omitting invalid/null fields from the output.
func (c Config) MarshalJSON() ([]byte, error) {
	w := cfgWrapper{
		Resolve: resolveCfgWrapper{
			Locations: c.Resolve.Locations,
			ClassPath: c.Resolve.ClassPath,
		},
		Placeholder: placeholderCfgWrapper{
			Values: c.Placeholder.Values,
		},
	}

	if c.Resolve.Prefix.Valid {
		w.Resolve.Prefix = c.Resolve.Prefix.V
	}
	if c.Resolve.Suffix.Valid {
		w.Resolve.Suffix = c.Resolve.Suffix.V
	}
	if c.Placeholder.Prefix.Valid {
		w.Placeholder.Prefix = c.Placeholder.Prefix.V
	}
	if c.Placeholder.Suffix.Valid {
		w.Placeholder.Suffix = c.Placeholder.Suffix.V
	}

	//nolint:wrapcheck // This is fine.
	return json.Marshal(w)
}

// UnmarshalJSON implements custom JSON unmarshaling to convert plain values
// into sql.Null types.
func (c *Config) UnmarshalJSON(data []byte) error {
	var w cfgWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		//nolint:wrapcheck // This is fine.
		return err
	}

	if err := validateLocations(w.Resolve.Locations); err != nil {
		return err
	}
	c.Resolve.Locations = w.Resolve.Locations
	c.Resolve.ClassPath = w.Resolve.ClassPath

	if w.Resolve.Prefix != "" {
		c.Resolve.Prefix = sql.Null[string]{V: w.Resolve.Prefix, Valid: true}
	}
	if w.Resolve.Suffix != "" {
		c.Resolve.Suffix = sql.Null[string]{V: w.Resolve.Suffix, Valid: true}
	}

	if len(w.Placeholder.Values) > 0 {
		c.Placeholder.Values = maps.Clone(w.Placeholder.Values)
	}
	if w.Placeholder.Prefix != "" {
		c.Placeholder.Prefix = sql.Null[string]{V: w.Placeholder.Prefix, Valid: true}
	}
	if w.Placeholder.Suffix != "" {
		c.Placeholder.Suffix = sql.Null[string]{V: w.Placeholder.Suffix, Valid: true}
	}

	return nil
}

// validateLocations rejects filesystem locations that resolve to the working
// directory, since it changes depending on where the app is run from.
func validateLocations(locs []location.Location) error {
	for _, loc := range locs {
		if loc.IsFilesystem() && loc.Path() == "" {
			return fmt.Errorf("invalid location '%s': filesystem path is empty", loc.Raw())
		}
	}
	return nil
}

// SetDefaults sets default configuration values if they weren't set already.
func (c *Config) SetDefaults() {
	if len(c.Resolve.Locations) == 0 {
		c.Resolve.Locations = []location.Location{location.Parse(DefaultLocation)}
	}
	if len(c.Resolve.ClassPath) == 0 {
		// The working directory, like the default Java class path.
		c.Resolve.ClassPath = []string{"."}
	}
	if !c.Resolve.Prefix.Valid {
		c.Resolve.Prefix = sql.Null[string]{V: resolver.DefaultNaming.Prefix, Valid: true}
	}
	if !c.Resolve.Suffix.Valid {
		c.Resolve.Suffix = sql.Null[string]{V: resolver.DefaultNaming.Suffix, Valid: true}
	}
	if !c.Placeholder.Prefix.Valid {
		c.Placeholder.Prefix = sql.Null[string]{V: placeholder.DefaultPrefix, Valid: true}
	}
	if !c.Placeholder.Suffix.Valid {
		c.Placeholder.Suffix = sql.Null[string]{V: placeholder.DefaultSuffix, Valid: true}
	}
}
