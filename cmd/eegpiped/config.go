package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stican/eegpipe/pipeline"
	"github.com/stican/eegpipe/sink"
)

// fileConfig is the YAML layout of the daemon configuration file. Every
// field is optional; zero values select the reference defaults.
type fileConfig struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Source struct {
		SampleRate float64 `yaml:"sample_rate"`
		Channels   int     `yaml:"channels"`
	} `yaml:"source"`

	Pipeline struct {
		CycleMs        int     `yaml:"cycle_ms"`
		BufferSeconds  float64 `yaml:"buffer_seconds"`
		WindowSeconds  float64 `yaml:"window_seconds"`
		NotchHz        float64 `yaml:"notch_hz"`
		NotchQ         float64 `yaml:"notch_q"`
		BandLowHz      float64 `yaml:"band_low_hz"`
		BandHighHz     float64 `yaml:"band_high_hz"`
		BandOrder      int     `yaml:"band_order"`
		ClipLimit      float64 `yaml:"clip_limit"`
		BlinkThreshold float64 `yaml:"blink_threshold"`
		AlphaThreshold float64 `yaml:"alpha_threshold"`
		FocusThreshold float64 `yaml:"focus_threshold"`
		NoiseThreshold float64 `yaml:"noise_threshold"`
	} `yaml:"pipeline"`

	NATS struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
		Stream  string `yaml:"stream"`
		Prefix  string `yaml:"prefix"`
	} `yaml:"nats"`

	UDP struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
		Metric  string `yaml:"metric"`
	} `yaml:"udp"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c fileConfig) pipelineConfig() pipeline.Config {
	return pipeline.Config{
		CycleInterval:  time.Duration(c.Pipeline.CycleMs) * time.Millisecond,
		BufferDuration: secondsToDuration(c.Pipeline.BufferSeconds),
		WindowDuration: secondsToDuration(c.Pipeline.WindowSeconds),
		NotchHz:        c.Pipeline.NotchHz,
		NotchQ:         c.Pipeline.NotchQ,
		BandLowHz:      c.Pipeline.BandLowHz,
		BandHighHz:     c.Pipeline.BandHighHz,
		BandOrder:      c.Pipeline.BandOrder,
		ClipLimit:      c.Pipeline.ClipLimit,
		BlinkThreshold: c.Pipeline.BlinkThreshold,
		AlphaThreshold: c.Pipeline.AlphaThreshold,
		FocusThreshold: c.Pipeline.FocusThreshold,
		NoiseThreshold: c.Pipeline.NoiseThreshold,
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func parseMetric(name string) (sink.Metric, error) {
	switch name {
	case "", "focus":
		return sink.MetricFocus, nil
	case "alpha":
		return sink.MetricAlpha, nil
	case "theta":
		return sink.MetricTheta, nil
	case "beta":
		return sink.MetricBeta, nil
	default:
		return 0, fmt.Errorf("unknown udp metric %q", name)
	}
}
