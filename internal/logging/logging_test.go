package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/pong/internal/logging"
)

func TestNewTextToFallback(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := logging.New(logging.Options{Level: "Debug"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	log.WithField("mode", "headless").Debug("ready")
	log.Trace("hidden")

	out := buf.String()
	assert.Contains(t, out, "msg=ready")
	assert.Contains(t, out, "mode=headless")
	assert.NotContains(t, out, "hidden")
}

func TestNewJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.log")
	var buf bytes.Buffer

	log, closer, err := logging.New(logging.Options{Level: "info", File: path, MaxSize: 1}, &buf)
	require.NoError(t, err)
	log.WithField("scorer", "left").Info("point scored")
	require.NoError(t, closer.Close())

	assert.Zero(t, buf.Len(), "file logging leaves the fallback writer alone")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "point scored", entry["msg"])
	assert.Equal(t, "left", entry["scorer"])
	assert.Equal(t, "info", entry["level"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    logrus.Level
		wantErr bool
	}{
		{"", logrus.InfoLevel, false},
		{"Trace", logrus.TraceLevel, false},
		{"WARN", logrus.WarnLevel, false},
		{"error", logrus.ErrorLevel, false},
		{"loud", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := logging.New(logging.Options{}, &buf)
	require.NoError(t, err)

	require.NoError(t, logging.SetLevel(log, "warn"))
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	assert.Error(t, logging.SetLevel(log, "nope"))
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
}
