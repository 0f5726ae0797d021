package version

// Version is the application version. Set via build-time ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/cppdoc/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the version with commit when one is recorded.
func String() string {
	if GitCommit == "unknown" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
