package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stican/eegpipe/sink"
)

func TestLoadConfig_EmptyPathDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	pc := cfg.pipelineConfig()
	assert.Zero(t, pc.CycleInterval, "zero config must defer to pipeline defaults")
	assert.False(t, cfg.NATS.Enabled)
	assert.False(t, cfg.UDP.Enabled)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eegpiped.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: text
source:
  sample_rate: 250
  channels: 4
pipeline:
  cycle_ms: 40
  buffer_seconds: 5
  notch_hz: 60
  band_low_hz: 1
  band_high_hz: 45
  band_order: 4
nats:
  enabled: true
  url: nats://localhost:4222
  stream: BrainAccessEEG
udp:
  enabled: true
  addr: 127.0.0.1:9000
  metric: alpha
`), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 250.0, cfg.Source.SampleRate)
	assert.True(t, cfg.NATS.Enabled)
	assert.Equal(t, "BrainAccessEEG", cfg.NATS.Stream)
	assert.True(t, cfg.UDP.Enabled)

	pc := cfg.pipelineConfig()
	assert.Equal(t, 40*time.Millisecond, pc.CycleInterval)
	assert.Equal(t, 5*time.Second, pc.BufferDuration)
	assert.Equal(t, 60.0, pc.NotchHz)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig("/nonexistent/eegpiped.yaml")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [not a map"), 0o600))
	_, err = loadConfig(path)
	require.Error(t, err)
}

func TestParseMetric(t *testing.T) {
	cases := map[string]sink.Metric{
		"":      sink.MetricFocus,
		"focus": sink.MetricFocus,
		"alpha": sink.MetricAlpha,
		"theta": sink.MetricTheta,
		"beta":  sink.MetricBeta,
	}
	for name, want := range cases {
		got, err := parseMetric(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseMetric("gamma")
	require.Error(t, err)
}
