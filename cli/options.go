package cli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/alecthomas/kong"

	"go.hackfix.me/migres/location"
)

// FilesystemLocationMapper parses a location that must be backed by the
// filesystem. The "filesystem:" prefix is optional, since no other backend is
// accepted.
type FilesystemLocationMapper struct{}

var _ kong.Mapper = (*FilesystemLocationMapper)(nil)

// Decode implements the kong.Mapper interface.
func (FilesystemLocationMapper) Decode(kctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	err := kctx.Scan.PopValueInto("location", &value)
	if err != nil {
		return err
	}

	loc, err := parseFilesystemLocation(value)
	if err != nil {
		return err
	}

	target.Set(reflect.ValueOf(loc))

	return nil
}

func parseFilesystemLocation(value string) (location.Location, error) {
	loc := location.Parse(value)
	if !loc.IsFilesystem() {
		if strings.HasPrefix(value, location.ClassPathPrefix) {
			return location.Location{}, fmt.Errorf("location '%s' must be on the filesystem", value)
		}
		loc = location.Parse(location.FilesystemPrefix + value)
	}
	if value == "" {
		return location.Location{}, fmt.Errorf("location '%s' has an empty path", value)
	}

	return loc, nil
}
