// Package version holds the application version string.
package version

// Version is the current tidechat release. Overridden at build time via
// -ldflags "-X github.com/tidechat/tidechat/internal/version.Version=...".
var Version = "0.3.0"
