// Package diskspace samples filesystem capacity for a single path, caching
// the result and throttling how often the filesystem is actually queried.
package diskspace

import (
	"math"
	"time"
)

// Usage is the raw result of one capacity query, in bytes.
type Usage struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// Snapshot is a point-in-time capacity reading for a path.
type Snapshot struct {
	Total          uint64    `json:"total"`
	Used           uint64    `json:"used"`
	Free           uint64    `json:"free"`
	PercentageFree float64   `json:"percentage_free"`
	SampledAt      time.Time `json:"sampled_at"`
	// Degraded is set on the zero snapshot served before any probe succeeded.
	Degraded bool `json:"degraded,omitempty"`
}

// newSnapshot builds a snapshot from a probe result.
func newSnapshot(u Usage, at time.Time) Snapshot {
	return Snapshot{
		Total:          u.Total,
		Used:           u.Used,
		Free:           u.Free,
		PercentageFree: PercentageFree(u.Free, u.Total),
		SampledAt:      at,
	}
}

// PercentageFree returns free/total as a percentage rounded to one decimal,
// half away from zero. A zero total yields 0.
func PercentageFree(free, total uint64) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(free) / float64(total) * 100
	pct = math.Round(pct*10) / 10
	if pct > 100 {
		pct = 100
	}
	return pct
}
