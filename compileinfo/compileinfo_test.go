package compileinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuildInfo(t *testing.T) {
	info := fromBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.24.0",
		Path:      "github.com/carbocation/assayplot/cmd/assayplot",
		Main:      debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2019-10-11T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}, true)

	assert.Equal(t, "abc123", info.Commit)
	assert.True(t, info.Modified)
	assert.Equal(t, "This github.com/carbocation/assayplot/cmd/assayplot v0.3.0 binary was built with go1.24.0 at commit abc123 at time 2019-10-11T00:00:00Z. Files in the repo were modified after that commit.", info.String())
}

func TestFromBuildInfoDevel(t *testing.T) {
	info := fromBuildInfo(&debug.BuildInfo{
		GoVersion: "go1.24.0",
		Path:      "github.com/carbocation/assayplot/cmd/assayplot",
		Main:      debug.Module{Version: "(devel)"},
	}, true)

	assert.Equal(t, "This github.com/carbocation/assayplot/cmd/assayplot binary was built with go1.24.0.", info.String())
}

func TestFromBuildInfoMissing(t *testing.T) {
	assert.Equal(t, CompileInfo{}, fromBuildInfo(nil, false))
	assert.Equal(t, "Build information is unavailable for this binary.", CompileInfo{}.String())
}
