package version

import (
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	GitTag    string
	GitBranch string
)

const (
	Name = "go-responses"

	// Length of an abbreviated revision
	shortRevision = 12
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	// Fall back to vcs.revision from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return s.Value[:min(len(s.Value), shortRevision)]
			}
		}
	}
	return "dev"
}

// UserAgent returns the value of the User-Agent header sent with each
// request, for example "go-responses/v1.0.0 (go1.24.1)"
func UserAgent() string {
	return Name + "/" + Version() + " (" + runtime.Version() + ")"
}
