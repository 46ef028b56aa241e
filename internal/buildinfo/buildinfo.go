// Package buildinfo carries the release identity stamped into the binary.
//
// Release builds inject these via
//
//	-ldflags "-X github.com/slrename/slrename/internal/buildinfo.Version=..."
//
// Local builds leave them empty and the version command falls back to
// debug.ReadBuildInfo.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
