package version

import "runtime/debug"

// Set with -ldflags "-X git.home.luguber.info/inful/rf24docs/internal/version.Version=v2.0.0".
// Values left at "unknown" are filled from the module build info when the
// binary was built from a VCS checkout.
var (
	Version   = "unknown"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// String renders version, commit and build time on one line.
func String() string {
	v, commit, built := Version, GitCommit, BuildTime
	if info, ok := readBuildInfo(); ok {
		if v == "unknown" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "unknown":
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			case s.Key == "vcs.time" && built == "unknown":
				built = s.Value
			}
		}
	}
	return v + " (commit " + commit + ", built " + built + ")"
}
