package pipeline

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	cycles       prometheus.Counter
	samples      prometheus.Counter
	rejected     prometheus.Counter
	sinkFailures prometheus.Counter
	overruns     prometheus.Counter
}

// newMetrics builds the pipeline collectors, registering them when reg is
// non-nil. Unregistered collectors still count, which keeps the cycle code
// free of nil checks.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eegpipe",
			Name:      "cycles_total",
			Help:      "Processing cycles executed",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eegpipe",
			Name:      "samples_processed_total",
			Help:      "Samples filtered and buffered, per channel frame",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eegpipe",
			Name:      "chunks_rejected_total",
			Help:      "Chunks rejected by validation or filtering",
		}),
		sinkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eegpipe",
			Name:      "sink_failures_total",
			Help:      "Sink publish failures",
		}),
		overruns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eegpipe",
			Name:      "cycle_overruns_total",
			Help:      "Cycles whose processing exceeded the tick interval",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.cycles, m.samples, m.rejected, m.sinkFailures, m.overruns)
	}

	return m
}
