// Command eegpiped runs the EEG streaming pipeline daemon: it polls an
// acquisition source on a fixed cycle, filters and buffers the signal,
// derives cognitive features and fans the results out to NATS and UDP
// consumers.
//
// Usage:
//
//	eegpiped [flags]
//
// Flags override the optional YAML configuration file:
//
//	eegpiped -config /etc/eegpiped.yaml
//	eegpiped -nats nats://localhost:4222 -udp 127.0.0.1:9000
//	eegpiped -log-level debug -log-format text
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stican/eegpipe/eeg"
	"github.com/stican/eegpipe/pipeline"
	"github.com/stican/eegpipe/sink"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "eegpiped:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "path to YAML configuration file")
		logLevel    = flag.String("log-level", "", "log level: debug, info, warn, error")
		logFormat   = flag.String("log-format", "", "log format: json, text")
		natsURL     = flag.String("nats", "", "NATS server URL; enables the stream sink")
		udpAddr     = flag.String("udp", "", "host:port for the datagram sink; enables it")
		metricsAddr = flag.String("metrics", "", "listen address for /metrics; enables the endpoint")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *natsURL != "" {
		cfg.NATS.Enabled = true
		cfg.NATS.URL = *natsURL
	}
	if *udpAddr != "" {
		cfg.UDP.Enabled = true
		cfg.UDP.Addr = *udpAddr
	}
	if *metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = *metricsAddr
	}

	logger := setupLogger(cfg.Log.Level, cfg.Log.Format)

	rate := cfg.Source.SampleRate
	if rate <= 0 {
		rate = 250
	}
	channels := cfg.Source.Channels
	if channels <= 0 {
		channels = eeg.NumChannels
	}
	source := newSyntheticSource(rate, channels)

	var sinks []sink.Sink
	if cfg.NATS.Enabled {
		url := cfg.NATS.URL
		if url == "" {
			url = nats.DefaultURL
		}
		nc, err := nats.Connect(url,
			nats.Name("eegpiped"),
			nats.MaxReconnects(-1),
			nats.ReconnectWait(time.Second))
		if err != nil {
			return fmt.Errorf("connect nats %s: %w", url, err)
		}
		defer nc.Close()

		stream, err := sink.NewStream(nc, sink.StreamConfig{
			Name:          cfg.NATS.Stream,
			SubjectPrefix: cfg.NATS.Prefix,
			Channels:      channels,
			SampleRate:    rate,
			ChannelNames:  eeg.ChannelNames,
		})
		if err != nil {
			return err
		}
		sinks = append(sinks, stream)
		logger.Info("stream sink enabled", "url", url, "name", stream.Name())
	}
	if cfg.UDP.Enabled {
		metric, err := parseMetric(cfg.UDP.Metric)
		if err != nil {
			return err
		}
		udp, err := sink.NewUDP(cfg.UDP.Addr, metric)
		if err != nil {
			return err
		}
		sinks = append(sinks, udp)
		logger.Info("datagram sink enabled", "addr", cfg.UDP.Addr, "metric", metric.String())
	}

	registry := prometheus.NewRegistry()
	p, err := pipeline.New(source, cfg.pipelineConfig(),
		pipeline.WithLogger(logger),
		pipeline.WithSinks(sinks...),
		pipeline.WithMetrics(registry),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		addr := cfg.Metrics.Addr
		if addr == "" {
			addr = ":9100"
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
		logger.Info("metrics endpoint enabled", "addr", addr)
	}

	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
