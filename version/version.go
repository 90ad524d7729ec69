// Package version implements the orderable version identifiers extracted from
// migration filenames.
//
// A version is a sequence of segments separated by '.' or '_'. Every segment is
// a non-negative integer, except for the last one of a multi-segment version,
// which may also be a textual token (e.g. "1.2.RC1"). Versions are totally
// ordered: segments are compared pairwise, and when all shared segments are
// equal the shorter version sorts first, so "1" < "1.0" < "1.0.0".
package version

import (
	"fmt"
	"math/big"
	"strings"
)

// Version is an immutable, comparable migration version.
type Version struct {
	raw  string
	segs []segment
}

type segment struct {
	num  *big.Int // nil for textual segments
	text string
}

func (s segment) numeric() bool {
	return s.num != nil
}

// Parse parses raw into a Version. It returns an *InvalidVersionError if raw is
// empty, contains an empty segment, or if any segment other than the last one
// isn't a non-negative integer. The first segment is always numeric.
func Parse(raw string) (Version, error) {
	if raw == "" {
		return Version{}, &InvalidVersionError{Raw: raw, Msg: "version is empty"}
	}

	parts := strings.FieldsFunc(raw, isSeparator)
	if len(parts) != strings.Count(raw, ".")+strings.Count(raw, "_")+1 {
		return Version{}, &InvalidVersionError{Raw: raw, Msg: "version contains an empty segment"}
	}

	segs := make([]segment, 0, len(parts))
	for i, part := range parts {
		if n, ok := parseNumber(part); ok {
			segs = append(segs, segment{num: n})
			continue
		}
		if i == 0 || i < len(parts)-1 {
			return Version{}, &InvalidVersionError{
				Raw: raw, Msg: fmt.Sprintf("segment '%s' is not a non-negative integer", part),
			}
		}
		if !isToken(part) {
			return Version{}, &InvalidVersionError{
				Raw: raw, Msg: fmt.Sprintf("invalid trailing segment '%s'", part),
			}
		}
		segs = append(segs, segment{text: part})
	}

	return Version{raw: raw, segs: segs}, nil
}

// MustParse is like Parse but panics if raw is invalid. It's meant for version
// constants and tests, never for input read at runtime.
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1 if a sorts before b, 1 if a sorts after b, and 0 if they
// are equal.
func Compare(a, b Version) int {
	n := min(len(a.segs), len(b.segs))
	for i := range n {
		if c := compareSegments(a.segs[i], b.segs[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(a.segs) < len(b.segs):
		return -1
	case len(a.segs) > len(b.segs):
		return 1
	}

	return 0
}

func compareSegments(a, b segment) int {
	switch {
	case a.numeric() && b.numeric():
		return a.num.Cmp(b.num)
	case a.numeric():
		return -1
	case b.numeric():
		return 1
	}

	return strings.Compare(a.text, b.text)
}

// Compare returns the ordering of v relative to other. See Compare.
func (v Version) Compare(other Version) int {
	return Compare(v, other)
}

// Equal returns true if both versions have the same number of segments, with
// equal values at every position. Leading zeros are insignificant.
func (v Version) Equal(other Version) bool {
	return Compare(v, other) == 0
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return Compare(v, other) < 0
}

// IsZero returns true if v is the zero value, i.e. it wasn't created by Parse.
func (v Version) IsZero() bool {
	return len(v.segs) == 0
}

// String returns the version as written, with '_' separators rendered as '.'.
func (v Version) String() string {
	return strings.ReplaceAll(v.raw, "_", ".")
}

// Next returns the version that follows v by incrementing its last segment,
// e.g. "1.9" -> "1.10". The original separators and zero padding of the
// other segments are retained. It returns an error if the last segment is
// textual.
func (v Version) Next() (Version, error) {
	if v.IsZero() {
		return Parse("1")
	}

	last := v.segs[len(v.segs)-1]
	if !last.numeric() {
		return Version{}, &InvalidVersionError{
			Raw: v.raw, Msg: fmt.Sprintf("can't increment textual segment '%s'", last.text),
		}
	}

	idx := strings.LastIndexFunc(v.raw, isSeparator) + 1
	next := new(big.Int).Add(last.num, big.NewInt(1))

	return Parse(v.raw[:idx] + next.String())
}

// MarshalText implements the encoding.TextMarshaler interface.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (v *Version) UnmarshalText(text []byte) error {
	pv, err := Parse(string(text))
	if err != nil {
		return err
	}
	*v = pv

	return nil
}

func isSeparator(r rune) bool {
	return r == '.' || r == '_'
}

func parseNumber(s string) (*big.Int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
	}

	return new(big.Int).SetString(s, 10)
}

// isToken returns true if s starts with a letter, followed by letters, digits,
// '-' or '+'.
func isToken(s string) bool {
	for i, r := range s {
		isLetter := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		switch {
		case isLetter:
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '+'):
		default:
			return false
		}
	}

	return s != ""
}
