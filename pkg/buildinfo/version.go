// Package buildinfo carries the diaviz release identity printed by
// `diaviz --version`.
//
// Release builds stamp the values through the linker:
//
//	go build -ldflags "-X github.com/matzehuels/diaviz/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/diaviz/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/diaviz/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/diaviz
//
// Unstamped builds report "dev".
package buildinfo

import "fmt"

// Stamped at link time; see the package documentation.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the version, commit and build date, one per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template: the command name and version
// on the first line, then commit and build date.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
