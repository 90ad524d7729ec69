package context

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// VersionInfo is the build information of the running binary.
type VersionInfo struct {
	Semantic string
	Commit   string
	Dirty    bool
	Go       string
}

// GetVersion returns the version information embedded in the binary by the Go
// toolchain. It returns an error if the binary was built without module
// support.
func GetVersion() (*VersionInfo, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, errors.New("build information is unavailable")
	}

	vi := &VersionInfo{Semantic: bi.Main.Version, Go: bi.GoVersion}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			vi.Commit = s.Value
		case "vcs.modified":
			vi.Dirty = s.Value == "true"
		}
	}

	return vi, nil
}

func (vi *VersionInfo) String() string {
	ver := vi.Semantic
	if ver == "" {
		ver = "(devel)"
	}
	if vi.Commit != "" {
		commit := vi.Commit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		ver = fmt.Sprintf("%s (%s", ver, commit)
		if vi.Dirty {
			ver += "-dirty"
		}
		ver += ")"
	}

	return ver
}
