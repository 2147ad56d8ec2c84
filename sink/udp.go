package sink

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"net"

	"github.com/stican/eegpipe/measure/features"
)

// Metric selects which snapshot scalar the datagram sink transmits.
type Metric int

const (
	MetricFocus Metric = iota
	MetricAlpha
	MetricTheta
	MetricBeta
)

// String returns the metric's wire-agnostic label.
func (m Metric) String() string {
	switch m {
	case MetricFocus:
		return "focus"
	case MetricAlpha:
		return "alpha"
	case MetricTheta:
		return "theta"
	case MetricBeta:
		return "beta"
	default:
		return "unknown"
	}
}

func (m Metric) value(s features.Snapshot) float64 {
	switch m {
	case MetricAlpha:
		return s.AlphaPower
	case MetricTheta:
		return s.ThetaPower
	case MetricBeta:
		return s.BetaPower
	default:
		return s.FocusRatio
	}
}

// UDP sends one little-endian float32 datagram per cycle to a fixed
// address: connectionless, best-effort, no acknowledgement or sequencing.
// A typical consumer is a haptic or audio feedback device.
type UDP struct {
	conn   net.Conn
	metric Metric
	buf    [4]byte
}

// NewUDP resolves addr ("host:port") and creates the datagram sink.
func NewUDP(addr string, metric Metric) (*UDP, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("udp sink: dial %s: %w", addr, err)
	}
	return &UDP{conn: conn, metric: metric}, nil
}

// Name implements Sink.
func (u *UDP) Name() string { return "udp/" + u.metric.String() }

// Publish implements Sink.
func (u *UDP) Publish(_ context.Context, c Cycle) error {
	v := float32(u.metric.value(c.Snapshot))
	binary.LittleEndian.PutUint32(u.buf[:], math.Float32bits(v))
	if _, err := u.conn.Write(u.buf[:]); err != nil {
		return fmt.Errorf("udp sink: write: %w", err)
	}
	return nil
}

// Close implements Sink.
func (u *UDP) Close() error { return u.conn.Close() }
