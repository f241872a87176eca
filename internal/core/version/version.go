// Package version reports what build is running
package version

import (
	"runtime"
	"runtime/debug"
	"sync"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Set with -ldflags "-X devstreams/internal/core/version.version=v1.2.0", the
// same for commit and date. Unset commit and date fall back to the vcs stamp
// the toolchain embeds
var (
	service = "devstreams-api"
	version = "dev"
	commit  = ""
	date    = ""
)

var vcs = sync.OnceValues(func() (rev, at string) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return rev, at
})

// Info returns the build information
func Info() BuildInfo {
	bi := BuildInfo{
		Service:   service,
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
	rev, at := vcs()
	if bi.Commit == "" {
		bi.Commit = or(rev, "none")
	}
	if bi.Date == "" {
		bi.Date = or(at, "unknown")
	}
	return bi
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// SetService names the running binary, empty names are ignored
func SetService(name string) {
	if name != "" {
		service = name
	}
}
