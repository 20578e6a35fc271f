package diskspace

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultMinInterval is the default minimum time between two probes.
const DefaultMinInterval = 60 * time.Second

// DefaultPath is the path sampled when none is configured.
const DefaultPath = "/"

// Config describes what a Sampler probes and how often.
type Config struct {
	Path        string
	MinInterval time.Duration
	DisplayUnit Unit
}

// DefaultConfig returns a config for the root filesystem.
func DefaultConfig() Config {
	return Config{
		Path:        DefaultPath,
		MinInterval: DefaultMinInterval,
		DisplayUnit: DefaultUnit,
	}
}

// Option customizes a Sampler.
type Option func(*Sampler)

// WithProber replaces the statfs prober.
func WithProber(p Prober) Option {
	return func(s *Sampler) {
		if p != nil {
			s.prober = p
		}
	}
}

// WithErrorSink sets where probe failures are reported.
func WithErrorSink(sink ErrorSink) Option {
	return func(s *Sampler) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithLogger sets the logger used for probe debug output and, unless an
// error sink is given, for probe failures.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Sampler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Sampler serves a throttled, cached view of filesystem capacity for one
// path. Probe failures are reported to the error sink and masked by the
// last good snapshot, or by a degraded zero snapshot before the first
// success. Concurrent callers share a single in-flight probe.
type Sampler struct {
	cfg    Config
	prober Prober
	sink   ErrorSink
	logger *logrus.Logger

	group singleflight.Group

	mu        sync.RWMutex
	last      Snapshot
	populated bool
	lastProbe time.Time
}

// New creates a sampler. The path is not checked until the first probe.
func New(cfg Config, opts ...Option) (*Sampler, error) {
	if cfg.MinInterval <= 0 {
		return nil, ErrInvalidInterval
	}
	if cfg.DisplayUnit == "" {
		cfg.DisplayUnit = DefaultUnit
	}

	s := &Sampler{
		cfg:    cfg,
		prober: StatfsProber{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logrus.New()
		s.logger.SetLevel(logrus.WarnLevel)
	}
	if s.sink == nil {
		s.sink = NewLogSink(s.logger)
	}
	return s, nil
}

// Config returns the sampler configuration.
func (s *Sampler) Config() Config {
	return s.cfg
}

// LastSnapshot returns the last successful snapshot, if any.
func (s *Sampler) LastSnapshot() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.populated
}

// Sample returns the capacity of the configured path as of now. The
// filesystem is queried only when no probe has succeeded yet or at least
// MinInterval has elapsed since the last successful one.
func (s *Sampler) Sample(now time.Time) Snapshot {
	if snap, ok := s.cached(now); ok {
		return snap
	}
	v, _, _ := s.group.Do(s.cfg.Path, func() (interface{}, error) {
		return s.refresh(now), nil
	})
	return v.(Snapshot)
}

// SampleContext is Sample with a bound on how long the caller waits for a
// stalled probe. On cancellation the current fallback is returned; the
// probe keeps running and still updates the cache when it finishes.
func (s *Sampler) SampleContext(ctx context.Context, now time.Time) Snapshot {
	if snap, ok := s.cached(now); ok {
		return snap
	}
	ch := s.group.DoChan(s.cfg.Path, func() (interface{}, error) {
		return s.refresh(now), nil
	})
	select {
	case res := <-ch:
		return res.Val.(Snapshot)
	case <-ctx.Done():
		s.logger.WithFields(logrus.Fields{
			"path":  s.cfg.Path,
			"error": ctx.Err(),
		}).Warn("Disk usage probe abandoned")
		return s.fallback()
	}
}

// cached returns the cached snapshot when the throttle window has not elapsed.
func (s *Sampler) cached(now time.Time) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.populated || now.Sub(s.lastProbe) >= s.cfg.MinInterval {
		return Snapshot{}, false
	}
	return s.last, true
}

func (s *Sampler) refresh(now time.Time) Snapshot {
	// A probe that finished while this caller was waiting to start one
	// already satisfies the throttle.
	if snap, ok := s.cached(now); ok {
		return snap
	}

	usage, err := s.prober.Probe(s.cfg.Path)
	if err != nil {
		s.sink.Report(classify(s.cfg.Path, err))
		return s.fallback()
	}

	snap := newSnapshot(usage, now)
	s.logger.WithFields(logrus.Fields{
		"path":            s.cfg.Path,
		"total":           snap.Total,
		"used":            snap.Used,
		"free":            snap.Free,
		"percentage_free": snap.PercentageFree,
	}).Debug("Disk usage probed")

	s.mu.Lock()
	s.last = snap
	s.populated = true
	s.lastProbe = now
	s.mu.Unlock()
	return snap
}

// fallback is the last good snapshot, or the degraded zero snapshot.
func (s *Sampler) fallback() Snapshot {
	if snap, ok := s.LastSnapshot(); ok {
		return snap
	}
	return Snapshot{Degraded: true}
}
