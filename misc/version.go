// Package misc keeps build time program identification.
package misc

// Set at link time:
//
//	go build -ldflags "-X fontstage/misc.version=1.0.0 -X fontstage/misc.gitHash=$(git rev-parse --short HEAD)"
var (
	appName = "fontstage"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns program name, used for log and report file names.
func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
