package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}

func TestBuildInfo_String(t *testing.T) {
	info := BuildInfo{Version: "v0.1.0", BuildDate: "2025-04-15", GitCommit: "abc123", GoVersion: "go1.24.2"}
	assert.Equal(t, "v0.1.0 (commit: abc123, built: 2025-04-15, go1.24.2)", info.String())
}
