// Package version holds the build metadata injected with -ldflags at build time.
package version

// BuildDate is the date when the binary was built
var BuildDate string

// GitCommit is the commit hash when the binary was built
var GitCommit string

// Version is the version of the compiled software
var Version string

// Info is a struct helpful for JSON serialization of the CertMe version information.
type Info struct {
	// Version is the version of CertMe.
	Version string `json:"version,omitempty"`

	// GitCommit is the git commit hash of CertMe.
	GitCommit string `json:"git_commit,omitempty"`

	// BuildDate is the build date of CertMe.
	BuildDate string `json:"build_date,omitempty"`
}

// GetInfo returns the version info
func GetInfo() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}
}
