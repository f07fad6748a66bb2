// Package version holds build fingerprints, overridable with
// -ldflags "-X shunt/internal/version.Version=...".
package version

import (
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Info is a trimmed snapshot of the fingerprints.
type Info struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
}

// Get returns the fingerprints. Missing commit and date fall back to the
// VCS stamp the Go toolchain embeds.
func Get() Info {
	info := Info{
		Version:    strings.TrimSpace(Version),
		GitCommit:  strings.TrimSpace(GitCommit),
		GitMessage: strings.TrimSpace(GitMessage),
		BuildDate:  strings.TrimSpace(BuildDate),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.GitCommit != "" && info.BuildDate != "" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			}
		}
	}
	return info
}

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored paints the major, minor and patch parts of v. Anything that is
// not a dotted triple comes back unchanged.
func Colored(v string) string {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return v
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
}
