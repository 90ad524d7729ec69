package resolver

import (
	"strings"
)

// DescriptionDelimiter separates the version from the description in a
// migration filename.
const DescriptionDelimiter = "__"

// Naming is the filename convention of migration scripts:
// <Prefix><version>[__<description>]<Suffix>.
type Naming struct {
	Prefix string
	Suffix string
}

// DefaultNaming is the naming convention of versioned SQL migrations,
// e.g. "V1_1__Populate_table.sql".
var DefaultNaming = Naming{Prefix: "V", Suffix: ".sql"}

// Matches returns true if filename starts with the prefix and ends with the
// suffix, with at least one character between them.
func (n Naming) Matches(filename string) bool {
	return len(filename) > len(n.Prefix)+len(n.Suffix) &&
		strings.HasPrefix(filename, n.Prefix) &&
		strings.HasSuffix(filename, n.Suffix)
}

// Filename returns the filename of a migration with the given version and
// description. Spaces in the description are rendered as underscores.
func (n Naming) Filename(version, description string) string {
	name := n.Prefix + version
	if description != "" {
		name += DescriptionDelimiter + strings.ReplaceAll(description, " ", "_")
	}
	return name + n.Suffix
}

// ExtractVersionString returns the token between prefix and suffix of the
// final element of filename. The description, if any, is not split off, so
// "sql/V9_0__CommentAboutContents.sql" returns "9_0__CommentAboutContents".
// See SplitVersionDescription.
func ExtractVersionString(filename, prefix, suffix string) string {
	name := filename[strings.LastIndex(filename, "/")+1:]
	name = strings.TrimSuffix(name, suffix)
	return strings.TrimPrefix(name, prefix)
}

// SplitVersionDescription splits a token returned by ExtractVersionString at
// the first description delimiter. Underscores in the description are
// rendered as spaces. The description is empty if there's no delimiter.
func SplitVersionDescription(token string) (version, description string) {
	version, description, found := strings.Cut(token, DescriptionDelimiter)
	if !found {
		return token, ""
	}
	return version, strings.ReplaceAll(description, "_", " ")
}
