package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stican/eegpipe/dsp/buffer"
	"github.com/stican/eegpipe/dsp/filter/bank"
	"github.com/stican/eegpipe/eeg"
	"github.com/stican/eegpipe/measure/features"
	"github.com/stican/eegpipe/sink"
)

const (
	defaultCycleInterval  = 40 * time.Millisecond
	defaultBufferDuration = 5 * time.Second
	defaultWindowDuration = 2 * time.Second
)

// Source delivers acquisition output. Read returns the samples gathered
// since the previous call, possibly an empty block; it is polled once per
// cycle. SampleRate and Channels are fixed for the lifetime of the source.
type Source interface {
	Read() (eeg.Block, error)
	SampleRate() float64
	Channels() int
}

// Config holds pipeline parameters. Zero-valued optional fields select
// their reference defaults.
type Config struct {
	// CycleInterval is the tick period. Defaults to 40 ms.
	CycleInterval time.Duration
	// BufferDuration sizes the rolling display buffer. Defaults to 5 s.
	BufferDuration time.Duration
	// WindowDuration is the span handed to the feature extractor.
	// Defaults to 2 s.
	WindowDuration time.Duration

	// NotchHz and NotchQ configure the mains notch. Defaults 50 Hz, Q 30.
	NotchHz float64
	NotchQ  float64
	// BandLowHz, BandHighHz and BandOrder configure the bandpass.
	// Defaults 1-45 Hz, order 4.
	BandLowHz  float64
	BandHighHz float64
	BandOrder  int
	// ClipLimit bounds input amplitude before filtering, in microvolts.
	// Defaults to 500; negative disables.
	ClipLimit float64

	// BlinkThreshold, AlphaThreshold, FocusThreshold and NoiseThreshold
	// are forwarded to the feature extractor; zero selects its defaults.
	BlinkThreshold float64
	AlphaThreshold float64
	FocusThreshold float64
	NoiseThreshold float64

	// FrontalChannels are the blink electrodes. Defaults to {Fp1, Fp2}.
	FrontalChannels []int

	// ScaleRecheck re-runs unit detection every n cycles; 0 disables.
	ScaleRecheck int
}

func (c *Config) normalize() {
	if c.CycleInterval <= 0 {
		c.CycleInterval = defaultCycleInterval
	}
	if c.BufferDuration <= 0 {
		c.BufferDuration = defaultBufferDuration
	}
	if c.WindowDuration <= 0 {
		c.WindowDuration = defaultWindowDuration
	}
	if len(c.FrontalChannels) == 0 {
		c.FrontalChannels = []int{eeg.Fp1, eeg.Fp2}
	}
}

// Option configures optional pipeline collaborators.
type Option func(*Pipeline)

// WithLogger sets the structured logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.log = logger
		}
	}
}

// WithSinks attaches fan-out sinks. Sinks are optional; publish failures
// are logged and counted, never fatal.
func WithSinks(sinks ...sink.Sink) Option {
	return func(p *Pipeline) {
		p.sinks = append(p.sinks, sinks...)
	}
}

// WithMetrics registers the pipeline's Prometheus collectors.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(p *Pipeline) {
		p.metrics = newMetrics(reg)
	}
}

// Pipeline owns the per-cycle signal path. Construct with New, drive with
// Run, observe with Waveform and Features.
type Pipeline struct {
	cfg    Config
	source Source
	log    *slog.Logger

	scaler    *eeg.AutoScaler
	bank      *bank.Bank
	display   *buffer.Rolling
	extractor *features.Extractor
	sinks     []sink.Sink
	metrics   *metrics

	windowFrames int

	mu       sync.RWMutex
	snapshot features.Snapshot
}

// New validates the configuration against the source and builds the
// pipeline. Construction is the only fatal error path; Run survives
// per-cycle failures.
func New(source Source, cfg Config, opts ...Option) (*Pipeline, error) {
	if source == nil {
		return nil, fmt.Errorf("pipeline: nil source")
	}
	cfg.normalize()

	rate := source.SampleRate()
	channels := source.Channels()
	if rate <= 0 {
		return nil, fmt.Errorf("pipeline: source sample rate must be positive: %v", rate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("pipeline: source channel count must be >= 1: %d", channels)
	}

	bankOpts := []bank.Option{}
	if cfg.NotchHz > 0 {
		q := cfg.NotchQ
		if q <= 0 {
			q = 30
		}
		bankOpts = append(bankOpts, bank.WithNotch(cfg.NotchHz, q))
	}
	if cfg.BandLowHz > 0 || cfg.BandHighHz > 0 || cfg.BandOrder > 0 {
		low, high, order := cfg.BandLowHz, cfg.BandHighHz, cfg.BandOrder
		if low <= 0 {
			low = 1
		}
		if high <= 0 {
			high = 45
		}
		if order <= 0 {
			order = 4
		}
		bankOpts = append(bankOpts, bank.WithBandpass(low, high, order))
	}
	if cfg.ClipLimit != 0 {
		bankOpts = append(bankOpts, bank.WithClipGuard(cfg.ClipLimit))
	}

	filterBank, err := bank.New(channels, rate, bankOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	capacity := int(cfg.BufferDuration.Seconds() * rate)
	display, err := buffer.NewRolling(channels, capacity)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	extractor, err := features.New(features.Config{
		SampleRate:      rate,
		FrontalChannels: cfg.FrontalChannels,
		BlinkThreshold:  cfg.BlinkThreshold,
		AlphaThreshold:  cfg.AlphaThreshold,
		FocusThreshold:  cfg.FocusThreshold,
		NoiseThreshold:  cfg.NoiseThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	var scalerOpts []eeg.ScalerOption
	if cfg.ScaleRecheck > 0 {
		scalerOpts = append(scalerOpts, eeg.WithRecheck(cfg.ScaleRecheck))
	}

	p := &Pipeline{
		cfg:          cfg,
		source:       source,
		log:          slog.New(slog.DiscardHandler),
		scaler:       eeg.NewAutoScaler(scalerOpts...),
		bank:         filterBank,
		display:      display,
		extractor:    extractor,
		windowFrames: int(cfg.WindowDuration.Seconds() * rate),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		p.metrics = newMetrics(nil)
	}

	return p, nil
}

// Run drives the cycle until ctx is cancelled, then closes the sinks.
func (p *Pipeline) Run(ctx context.Context) error {
	p.log.Info("pipeline started",
		"cycle", p.cfg.CycleInterval,
		"rate", p.source.SampleRate(),
		"channels", p.source.Channels(),
		"sinks", len(p.sinks))

	ticker := time.NewTicker(p.cfg.CycleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.closeSinks()
			p.log.Info("pipeline stopped")
			return ctx.Err()
		case now := <-ticker.C:
			start := time.Now()
			p.runCycle(ctx, now)
			if elapsed := time.Since(start); elapsed > p.cfg.CycleInterval {
				p.log.Warn("cycle overran its interval",
					"elapsed", elapsed, "interval", p.cfg.CycleInterval)
				p.metrics.overruns.Inc()
			}
		}
	}
}

// runCycle executes one tick. Rejected chunks leave filter state, buffer
// and snapshot untouched.
func (p *Pipeline) runCycle(ctx context.Context, now time.Time) {
	p.metrics.cycles.Inc()

	block, err := p.source.Read()
	if err != nil {
		p.log.Warn("source read failed", "error", err)
		p.metrics.rejected.Inc()
		return
	}

	if err := block.Validate(p.source.Channels()); err != nil {
		p.log.Warn("chunk rejected", "error", err)
		p.metrics.rejected.Inc()
		return
	}

	if !block.Empty() {
		block.Scale(p.scaler.Factor(block))

		filtered, err := p.bank.Process(block)
		if err != nil {
			p.log.Warn("chunk rejected", "error", err)
			p.metrics.rejected.Inc()
			return
		}
		if err := p.display.Append(filtered); err != nil {
			p.log.Warn("buffer append failed", "error", err)
			p.metrics.rejected.Inc()
			return
		}
		p.metrics.samples.Add(float64(block.Samples()))
	}

	snap := p.extractor.Extract(p.display.Tail(p.windowFrames), now)

	p.mu.Lock()
	p.snapshot = snap
	p.mu.Unlock()

	p.publish(ctx, sink.Cycle{Block: block, Snapshot: snap})
}

func (p *Pipeline) publish(ctx context.Context, c sink.Cycle) {
	for _, s := range p.sinks {
		if err := s.Publish(ctx, c); err != nil {
			p.log.Warn("sink publish failed", "sink", s.Name(), "error", err)
			p.metrics.sinkFailures.Inc()
		}
	}
}

func (p *Pipeline) closeSinks() {
	for _, s := range p.sinks {
		if err := s.Close(); err != nil {
			p.log.Warn("sink close failed", "sink", s.Name(), "error", err)
		}
	}
}

// Waveform returns a copy of the display buffer, one slice per channel,
// oldest first. Safe for concurrent use.
func (p *Pipeline) Waveform() [][]float64 {
	return p.display.Snapshot()
}

// Features returns the most recent feature snapshot. Safe for concurrent
// use.
func (p *Pipeline) Features() features.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}
