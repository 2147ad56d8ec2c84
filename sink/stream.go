package sink

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// DefaultStreamName matches the name headset consumers subscribe to.
	DefaultStreamName = "BrainAccessEEG"

	defaultSubjectPrefix = "eeg"
	defaultAnnounceEvery = time.Minute
)

// Publisher is the subset of *nats.Conn the stream sink needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// StreamConfig describes the advertised stream.
type StreamConfig struct {
	// Name of the stream. Defaults to DefaultStreamName.
	Name string
	// SubjectPrefix for the NATS subjects. Defaults to "eeg".
	SubjectPrefix string
	// Channels and SampleRate are advertised in the announcement and fix
	// the frame layout. Both required.
	Channels   int
	SampleRate float64
	// ChannelNames are advertised alongside the layout. Optional.
	ChannelNames []string
	// AnnounceEvery re-publishes the announcement at this interval so
	// late subscribers learn the layout. Defaults to one minute.
	AnnounceEvery time.Duration
}

// announcement is the JSON metadata published on the info subject.
type announcement struct {
	Name         string   `json:"name"`
	Channels     int      `json:"channels"`
	ChannelNames []string `json:"channel_names,omitempty"`
	SampleRate   float64  `json:"sample_rate"`
	Format       string   `json:"format"`
}

// Stream publishes cycle frames as interleaved little-endian float32
// payloads on "<prefix>.<name>.data", with a JSON announcement on
// "<prefix>.<name>.info". Publishes are fire-and-forget core NATS.
type Stream struct {
	pub Publisher
	cfg StreamConfig

	infoSubject string
	dataSubject string
	announced   time.Time
	frame       []byte
}

// NewStream creates the stream sink. pub is typically a *nats.Conn.
func NewStream(pub Publisher, cfg StreamConfig) (*Stream, error) {
	if pub == nil {
		return nil, fmt.Errorf("stream sink: nil publisher")
	}
	if cfg.Channels < 1 {
		return nil, fmt.Errorf("stream sink: channel count must be >= 1: %d", cfg.Channels)
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("stream sink: sample rate must be positive: %v", cfg.SampleRate)
	}
	if cfg.Name == "" {
		cfg.Name = DefaultStreamName
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = defaultSubjectPrefix
	}
	if cfg.AnnounceEvery <= 0 {
		cfg.AnnounceEvery = defaultAnnounceEvery
	}

	return &Stream{
		pub:         pub,
		cfg:         cfg,
		infoSubject: fmt.Sprintf("%s.%s.info", cfg.SubjectPrefix, cfg.Name),
		dataSubject: fmt.Sprintf("%s.%s.data", cfg.SubjectPrefix, cfg.Name),
	}, nil
}

// Name implements Sink.
func (s *Stream) Name() string { return "stream/" + s.cfg.Name }

// Publish sends the announcement when due, then the cycle's samples as one
// frame payload. Empty cycles publish nothing.
func (s *Stream) Publish(_ context.Context, c Cycle) error {
	if err := s.announce(); err != nil {
		return err
	}

	n := c.Block.Samples()
	if n == 0 {
		return nil
	}
	if c.Block.Channels() != s.cfg.Channels {
		return fmt.Errorf("stream sink: got %d channels, want %d", c.Block.Channels(), s.cfg.Channels)
	}

	// Interleave: frame 0 channel 0..C-1, frame 1 channel 0..C-1, ...
	need := n * s.cfg.Channels * 4
	if cap(s.frame) < need {
		s.frame = make([]byte, need)
	}
	buf := s.frame[:need]
	off := 0
	for i := 0; i < n; i++ {
		for ch := 0; ch < s.cfg.Channels; ch++ {
			bits := math.Float32bits(float32(c.Block[ch][i]))
			binary.LittleEndian.PutUint32(buf[off:], bits)
			off += 4
		}
	}

	if err := s.pub.Publish(s.dataSubject, buf); err != nil {
		return fmt.Errorf("stream sink: publish data: %w", err)
	}
	return nil
}

func (s *Stream) announce() error {
	now := time.Now()
	if !s.announced.IsZero() && now.Sub(s.announced) < s.cfg.AnnounceEvery {
		return nil
	}

	payload, err := json.Marshal(announcement{
		Name:         s.cfg.Name,
		Channels:     s.cfg.Channels,
		ChannelNames: s.cfg.ChannelNames,
		SampleRate:   s.cfg.SampleRate,
		Format:       "float32le",
	})
	if err != nil {
		return fmt.Errorf("stream sink: marshal announcement: %w", err)
	}
	if err := s.pub.Publish(s.infoSubject, payload); err != nil {
		return fmt.Errorf("stream sink: publish announcement: %w", err)
	}

	s.announced = now
	return nil
}

// Close implements Sink. The connection is owned by the caller.
func (s *Stream) Close() error { return nil }
