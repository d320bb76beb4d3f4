package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_Verbosity(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, 0)

	log.Info("analysis completed", "rows", 2)
	log.V(1).Info("price lookup failed")
	log.Error(errors.New("boom"), "failed to sample instance")

	out := buf.String()
	assert.Contains(t, out, `"msg"="analysis completed"`)
	assert.Contains(t, out, `"rows"=2`)
	assert.Contains(t, out, `"error"="boom"`)
	assert.NotContains(t, out, "price lookup failed")
	assert.Contains(t, out, "rightsizer")
}

func TestNewWithWriter_Debug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, VerbosityForLevel("debug"))

	log.V(1).Info("price lookup failed")
	assert.Contains(t, buf.String(), "price lookup failed")
}

func TestVerbosityForLevel(t *testing.T) {
	assert.Equal(t, 1, VerbosityForLevel("debug"))
	assert.Equal(t, 0, VerbosityForLevel("info"))
	assert.Equal(t, 0, VerbosityForLevel(""))
}
