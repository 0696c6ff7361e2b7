package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("joined group %q", "PINAR SUT 1L")

	assert.Equal(t, "[DEBUG] joined group \"PINAR SUT 1L\"\n", buf.String())
}

func TestDebugAndInfo_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Section("Clustering")

	assert.Empty(t, buf.String())
}

func TestWarnAndError_AlwaysWritten(t *testing.T) {
	buf := capture(t, false)

	Warn("skipping row %d", 3)
	Error("import failed")

	assert.Equal(t, "[WARN] skipping row 3\n[ERROR] import failed\n", buf.String())
}

func TestSection_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Section("Clustering")

	assert.Equal(t, "\n=== Clustering ===\n", buf.String())
}

func TestEnabled(t *testing.T) {
	capture(t, false)
	assert.False(t, Enabled(LevelDebug))
	assert.False(t, Enabled(LevelInfo))
	assert.True(t, Enabled(LevelWarn))
	assert.True(t, Enabled(LevelError))

	SetVerbose(true)
	assert.True(t, Enabled(LevelDebug))
}
