package output

import (
	"strings"
	"sync"
)

// DefaultTrendWindow is the number of readings kept per sensor.
const DefaultTrendWindow = 20

// trendLevels draws percentage free from empty to full.
var trendLevels = []rune("▁▂▃▄▅▆▇█")

// TrendTracker keeps the most recent percentage-free readings per sensor
// for the watch trend column. Nothing is kept beyond the window.
type TrendTracker struct {
	mu     sync.Mutex
	window int
	series map[string]*ring
}

// ring is a fixed-size buffer of percentages, oldest first once full.
type ring struct {
	values []float64
	next   int
	full   bool
}

func (r *ring) push(v float64) {
	r.values[r.next] = v
	r.next = (r.next + 1) % len(r.values)
	if r.next == 0 {
		r.full = true
	}
}

func (r *ring) ordered() []float64 {
	if !r.full {
		return r.values[:r.next]
	}
	return append(append([]float64(nil), r.values[r.next:]...), r.values[:r.next]...)
}

// NewTrendTracker creates a tracker keeping window readings per sensor.
func NewTrendTracker(window int) *TrendTracker {
	if window < 1 {
		window = DefaultTrendWindow
	}
	return &TrendTracker{
		window: window,
		series: make(map[string]*ring),
	}
}

// Record adds a percentage-free reading for a sensor.
func (t *TrendTracker) Record(name string, percentageFree float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.series[name]
	if !ok {
		r = &ring{values: make([]float64, t.window)}
		t.series[name] = r
	}
	r.push(percentageFree)
}

// Trend renders a sensor's readings on an absolute 0-100% scale, so a
// steady disk draws a flat line at its fill level.
func (t *TrendTracker) Trend(name string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, ok := t.series[name]
	if !ok {
		return ""
	}

	var b strings.Builder
	top := float64(len(trendLevels) - 1)
	for _, pct := range r.ordered() {
		idx := int(pct/100*top + 0.5)
		idx = max(0, min(idx, len(trendLevels)-1))
		b.WriteRune(trendLevels[idx])
	}
	return b.String()
}
