package version

import "fmt"

// InvalidVersionError is returned when a version string can't be parsed.
type InvalidVersionError struct {
	Raw string
	Msg string
}

// Error returns a string representation of the error.
func (e InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version format '%s': %s", e.Raw, e.Msg)
}
