package version

// Version is the parems release
const Version = "0.1.0"

// Commit is set at build time with
// -ldflags "-X github.com/rubiojr/parems/pkg/version.Commit=<sha>"
var Commit = ""

// BuildVersion returns the version string for display
func BuildVersion() string {
	if Commit == "" {
		return "parems version " + Version
	}
	return "parems version " + Version + " (" + shortCommit() + ")"
}

// APIVersion returns just the version number for API responses
func APIVersion() string {
	return Version
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
