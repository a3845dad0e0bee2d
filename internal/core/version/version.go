// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	BuiltAt string `json:"built_at"`
}

// Info returns the build information for service. version, commit and date are set at
// build time:
//
//	-ldflags "-X 'caseline/internal/core/version.version=v0.3.0' -X 'caseline/internal/core/version.commit=abcd'"
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		BuiltAt: date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
