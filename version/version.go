// Package version exposes build provenance injected at link time:
//
//	go build -ldflags "-X github.com/teranos/kbsync/version.Version=v0.2.0 ..."
//
// Unlinked builds report themselves as "dev".
package version

import (
	"fmt"
	"runtime"
)

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)

// Info is a point-in-time snapshot of the build provenance plus the
// runtime it is executing under.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get snapshots the current build information.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Short is the compact form used in startup banners: version plus an
// abbreviated commit when one was linked in.
func (i Info) Short() string {
	if i.CommitHash == "unknown" {
		return "kbsync " + i.Version
	}
	commit := i.CommitHash
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("kbsync %s (%s)", i.Version, commit)
}

// String is the full human-readable form.
func (i Info) String() string {
	return fmt.Sprintf("kbsync %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}
