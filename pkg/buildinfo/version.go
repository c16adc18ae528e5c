// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/nestview/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/nestview/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/nestview/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Link-time values. Unstamped builds report "dev".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// shortCommit is the abbreviated SHA length shown by [Short].
const shortCommit = 7

// Short returns the version with an abbreviated commit, e.g. "v1.2.0 (3f2a9c1)".
// Unstamped builds return just the version.
func Short() string {
	if Commit == "" || Commit == "none" {
		return Version
	}
	c := Commit
	if len(c) > shortCommit {
		c = c[:shortCommit]
	}
	return fmt.Sprintf("%s (%s)", Version, c)
}

// Template returns the --version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
