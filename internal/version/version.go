// Package version identifies the running build.
package version

// AppName is the human-readable name shown at startup.
const AppName = "Command Client"

// Version is overridden at build time with
// -ldflags "-X github.com/keshon/commandclient/internal/version.Version=v1.2.3".
var Version = "dev"

// String returns the app name followed by its version.
func String() string {
	return AppName + " " + Version
}
