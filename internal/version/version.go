// Package version holds the application version, set at build time with
// -ldflags "-X vincowealth/internal/version.Version=...".
package version

// Version is the semantic version of the application.
var Version = "0.1.0"
