package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, settings ...debug.BuildSetting) {
	t.Helper()
	orig := readBuildInfo
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	t.Cleanup(func() {
		readBuildInfo = orig
		Version, Commit, BuildTime = origVersion, origCommit, origBuildTime
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
}

func TestGetDefaults(t *testing.T) {
	stubBuildInfo(t)
	Version, Commit, BuildTime = "dev", "", ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected dev, got %q", info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected %s, got %q", runtime.Version(), info.GoVersion)
	}
	if info.String() != "dev" {
		t.Errorf("expected short form dev, got %q", info.String())
	}
}

func TestGetFromVCSStamp(t *testing.T) {
	stubBuildInfo(t,
		debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef"},
		debug.BuildSetting{Key: "vcs.time", Value: "2026-05-01T10:00:00Z"},
		debug.BuildSetting{Key: "vcs.modified", Value: "true"},
	)
	Version, Commit, BuildTime = "v0.3.0", "", ""

	info := Get()
	if info.Commit != "0123456" {
		t.Errorf("expected truncated commit, got %q", info.Commit)
	}
	if info.BuildTime != "2026-05-01T10:00:00Z" {
		t.Errorf("unexpected build time %q", info.BuildTime)
	}
	if got := Short(); got != "v0.3.0-0123456-dirty" {
		t.Errorf("unexpected short version %q", got)
	}
}

func TestLinkerValuesWin(t *testing.T) {
	stubBuildInfo(t, debug.BuildSetting{Key: "vcs.revision", Value: "ffffffffff"})
	Version, Commit, BuildTime = "v1.0.0", "abc1234", "2026-01-01T00:00:00Z"

	info := Get()
	if info.Commit != "abc1234" || info.BuildTime != "2026-01-01T00:00:00Z" {
		t.Errorf("ldflags values must not be overridden: %+v", info)
	}
}

func TestUserAgent(t *testing.T) {
	stubBuildInfo(t)
	Version = "v0.3.0"
	ua := UserAgent("mallctl")
	if !strings.HasPrefix(ua, "mallkit-mallctl/v0.3.0 (go") {
		t.Errorf("unexpected user agent %q", ua)
	}
}
