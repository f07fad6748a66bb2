package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestGetTrimsAndDefaults(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version = "  "
	GitCommit = " abc123 "
	BuildDate = "2024-01-15T10:30:00Z"
	info := Get()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.GitCommit != "abc123" {
		t.Errorf("GitCommit = %q, want abc123", info.GitCommit)
	}
	if info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q", info.BuildDate)
	}
}

func TestGetKeepsOverride(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "1.2.3-rc.1"
	if got := Get().Version; got != "1.2.3-rc.1" {
		t.Errorf("Version = %q", got)
	}
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	for _, v := range []string{"0.1.0-dev", "1.2.3", "dev", "1.2"} {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) = %q with color disabled", v, got)
		}
	}
}
