// Package sensor exposes disk usage samplers as named, host-facing sensors
// with a primary value and auxiliary attributes.
package sensor

import (
	"context"
	"time"

	"github.com/danpilch/diskspace/pkg/diskspace"
)

const (
	// DefaultIcon is the icon used when none is configured.
	DefaultIcon = "mdi:harddisk"
	// NativeUnit is the unit of every reported value.
	NativeUnit = "B"
	// DeviceClass classifies the reported value for the host.
	DeviceClass = "data_size"

	namePrefix = "Disk Space "
)

// Attributes are the auxiliary values reported alongside the state.
type Attributes struct {
	Total          uint64  `json:"total"`
	Used           uint64  `json:"used"`
	Free           uint64  `json:"free"`
	PercentageFree float64 `json:"percentage_free"`
}

// Map returns the attributes keyed by their reported names.
func (a Attributes) Map() map[string]any {
	return map[string]any{
		"total":           a.Total,
		"used":            a.Used,
		"free":            a.Free,
		"percentage_free": a.PercentageFree,
	}
}

// Reading is one sensor update as seen by a reporting layer.
type Reading struct {
	Name          string         `json:"name"`
	Path          string         `json:"path"`
	Icon          string         `json:"icon"`
	State         uint64         `json:"state"`
	NativeUnit    string         `json:"native_unit"`
	SuggestedUnit diskspace.Unit `json:"suggested_unit"`
	DeviceClass   string         `json:"device_class"`
	Attributes    Attributes     `json:"attributes"`
	Degraded      bool           `json:"degraded,omitempty"`
	SampledAt     time.Time      `json:"sampled_at"`
}

// Sensor pairs a sampler with presentational metadata.
type Sensor struct {
	name    string
	icon    string
	sampler *diskspace.Sampler
}

// New creates a sensor. An empty icon falls back to DefaultIcon.
func New(name, icon string, sampler *diskspace.Sampler) *Sensor {
	if icon == "" {
		icon = DefaultIcon
	}
	return &Sensor{
		name:    name,
		icon:    icon,
		sampler: sampler,
	}
}

// Name returns the configured name, used as the registry key.
func (s *Sensor) Name() string {
	return s.name
}

// DisplayName returns the name shown to users.
func (s *Sensor) DisplayName() string {
	return namePrefix + s.name
}

// Icon returns the sensor icon.
func (s *Sensor) Icon() string {
	return s.icon
}

// Sampler returns the underlying sampler.
func (s *Sensor) Sampler() *diskspace.Sampler {
	return s.sampler
}

// Update samples the path and returns the resulting reading.
func (s *Sensor) Update(now time.Time) Reading {
	return s.reading(s.sampler.Sample(now))
}

// UpdateContext is Update bounded by ctx.
func (s *Sensor) UpdateContext(ctx context.Context, now time.Time) Reading {
	return s.reading(s.sampler.SampleContext(ctx, now))
}

// Current returns a reading for the last successful snapshot without
// probing. ok is false before the first success.
func (s *Sensor) Current() (Reading, bool) {
	snap, ok := s.sampler.LastSnapshot()
	if !ok {
		return Reading{}, false
	}
	return s.reading(snap), true
}

func (s *Sensor) reading(snap diskspace.Snapshot) Reading {
	cfg := s.sampler.Config()
	return Reading{
		Name:          s.DisplayName(),
		Path:          cfg.Path,
		Icon:          s.icon,
		State:         snap.Free,
		NativeUnit:    NativeUnit,
		SuggestedUnit: cfg.DisplayUnit,
		DeviceClass:   DeviceClass,
		Attributes: Attributes{
			Total:          snap.Total,
			Used:           snap.Used,
			Free:           snap.Free,
			PercentageFree: snap.PercentageFree,
		},
		Degraded:  snap.Degraded,
		SampledAt: snap.SampledAt,
	}
}
