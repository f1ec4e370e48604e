package misc

import (
	"runtime/debug"
	"sync"
)

// Set at build time via -ldflags, otherwise derived from build info.
var (
	appName = "csslint"
	version = ""
	gitHash = ""

	once sync.Once
)

func fromBuildInfo() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if version == "" {
		version = bi.Main.Version
	}
	if gitHash == "" {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				gitHash = s.Value
				break
			}
		}
	}
}

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	once.Do(fromBuildInfo)
	if version == "" {
		return "unknown"
	}
	return version
}

// GetGitHash returns git commit hash of the build.
func GetGitHash() string {
	once.Do(fromBuildInfo)
	if gitHash == "" {
		return "unknown"
	}
	return gitHash
}
