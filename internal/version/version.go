// Package version reports the build of the tss binary
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is set at build time via -ldflags "-X ...version.Version=v1.2.3"
	Version = "dev"
	// Commit is set at build time, or read from the VCS stamp of the build
	Commit = ""
)

// Get returns the release version, falling back to the module version
// recorded in the binary
func Get() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// Full returns the version with the commit it was built from, e.g.
// "v0.2.0 (a1b2c3d, modified)"
func Full() string {
	commit, dirty := Commit, false
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" {
					commit = s.Value
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}
	return describe(Get(), commit, dirty)
}

func describe(version, commit string, dirty bool) string {
	if commit == "" {
		return version
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if dirty {
		return fmt.Sprintf("%s (%s, modified)", version, commit)
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}
