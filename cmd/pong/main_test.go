package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRunHeadless(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--mode=headless", "--duration=100ms", "--log-level=warn"},
		afero.NewMemMapFs(), &stdout, &stderr)
	require.NoError(t, err)

	assert.Regexp(t, `^final score \d+-\d+ after \d+ frames\n$`, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunHeadlessEndsOnWin(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/pong.yaml", []byte(`
mode: headless
tps: 200
rules:
  win_score: 1
  ramp_factor: 1.05
  max_ball_speed: 2000
`), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var stdout, stderr bytes.Buffer
	require.NoError(t, run(ctx, []string{"--config=/pong.yaml", "--log-level=error"}, fs, &stdout, &stderr))

	assert.Regexp(t, `final score (1-0|0-1)`, stdout.String())
}

func TestRunPrintConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--print-config", "--mode=terminal"}, afero.NewMemMapFs(), &stdout, &stderr)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "terminal", doc["mode"])
}

func TestRunRejectsBadConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"--mode=arcade"}, afero.NewMemMapFs(), &stdout, &stderr)
	assert.ErrorContains(t, err, `unknown mode "arcade"`)

	err = run(context.Background(), []string{"--no-such-flag"}, afero.NewMemMapFs(), &stdout, &stderr)
	assert.Error(t, err)
}
