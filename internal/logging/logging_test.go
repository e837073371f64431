package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesTranscript(t *testing.T) {
	logger, transcript, err := New("info")
	require.NoError(t, err)

	logger.Info("processing document")
	logger.Debug("hidden at info level")

	out := transcript.String()
	assert.Contains(t, out, "processing document")
	assert.Contains(t, out, "INFO")
	assert.NotContains(t, out, "hidden at info level")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New("loud")
	assert.Error(t, err)
}

func TestTranscriptWriteFile(t *testing.T) {
	logger, transcript, err := New("debug")
	require.NoError(t, err)

	logger.Debug("first line")
	logger.Info("second line")

	path := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, transcript.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first line")
	assert.Contains(t, string(data), "second line")
	assert.Equal(t, transcript.String(), string(data))
}
