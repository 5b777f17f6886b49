package version

import "fmt"

const versionDefault = "dev"

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Version returns the build version.
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from.
func Commit() string {
	return commit
}

// Date returns the build date.
func Date() string {
	return date
}

// Long returns a human readable multi-part version string.
func Long() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}
