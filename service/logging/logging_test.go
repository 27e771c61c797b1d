package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Debugf("debug %d", 1)
	logger.Infof("info %d", 2)
	logger.Warnf("warn %d", 3)
	logger.Errorf("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "warn 3")
	assert.Contains(t, out, "error 4")
}

func TestParseLevel_Fallback(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "no-such-level")
	logger.Infof("still visible")
	assert.Contains(t, buf.String(), "still visible")
}

func TestNop(t *testing.T) {
	// Must not panic and must stay silent.
	logger := Nop()
	logger.Errorf("dropped %v", "entirely")
}
