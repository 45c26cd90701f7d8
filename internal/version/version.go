// Package version holds the build version, set with
// -ldflags "-X github.com/ralt/jarbundler/internal/version.Version=1.2.3".
package version

// Version of the jarbundler binary
var Version = "dev"
