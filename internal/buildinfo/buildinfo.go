// Package buildinfo holds build-time metadata injected via ldflags,
// kept separate from user configuration.
package buildinfo

// Set at build time with -ldflags "-X ...buildinfo.version=v1.2.3".
var (
	version   = ""
	buildDate = ""
)

// Version returns the build version, or "dev" for untagged builds.
func Version() string {
	if version == "" {
		return "dev"
	}
	return version
}

// BuildDate returns the build timestamp, or "unknown" when not injected.
func BuildDate() string {
	if buildDate == "" {
		return "unknown"
	}
	return buildDate
}
