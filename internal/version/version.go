// Package version holds build metadata, set with -ldflags at release time.
package version

// Set via -ldflags "-X github.com/mj1618/clockface/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// String returns a one-line version description.
func String() string {
	return Version + " (" + Commit + ", built " + BuildDate + ")"
}
