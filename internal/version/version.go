package version

import "fmt"

var (
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
)

func GetVersion() string {
	return fmt.Sprintf("tinyhttpd %s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
