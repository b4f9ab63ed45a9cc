package handler

import (
	"cmp"
	"net/http"
	"runtime"
	"runtime/debug"
	"sync"
)

// Build metadata, stamped by the Makefile with -ldflags -X
var (
	Version   = ""
	BuildTime = ""
	GitCommit = ""
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// buildInfo prefers the linker-stamped values and falls back on the VCS
// settings the go command embeds
var buildInfo = sync.OnceValue(func() VersionInfo {
	vi := VersionInfo{GoVersion: runtime.Version()}

	var vcsRevision, vcsTime string
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				vcsRevision = s.Value
			case "vcs.time":
				vcsTime = s.Value
			case "vcs.modified":
				vi.Modified = s.Value == "true"
			}
		}
	}

	vi.Version = cmp.Or(Version, "dev")
	vi.GitCommit = cmp.Or(GitCommit, vcsRevision)
	vi.BuildTime = cmp.Or(BuildTime, vcsTime)
	return vi
})

// HandleVersion reports build information
// @Summary Version
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, buildInfo())
	}
}
