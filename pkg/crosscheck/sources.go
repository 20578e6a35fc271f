package crosscheck

import (
	"fmt"

	"github.com/danpilch/diskspace/pkg/diskspace"
)

// NamedProber is a prober that can identify itself in a report.
type NamedProber interface {
	diskspace.Prober
	Name() string
}

// DefaultProbers returns every built-in prober.
func DefaultProbers() []NamedProber {
	return []NamedProber{diskspace.StatfsProber{}, diskspace.GopsutilProber{}}
}

// Readings holds per-metric sources gathered from several probers.
type Readings struct {
	Total  []Source
	Used   []Source
	Free   []Source
	Errors []error
}

// GetDiskSources probes path with each prober. Failed probes are recorded
// in Errors and contribute no sources.
func GetDiskSources(path string, probers []NamedProber) Readings {
	var r Readings
	for _, p := range probers {
		u, err := p.Probe(path)
		if err != nil {
			r.Errors = append(r.Errors, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		r.Total = append(r.Total, Source{Name: p.Name(), Value: u.Total})
		r.Used = append(r.Used, Source{Name: p.Name(), Value: u.Used})
		r.Free = append(r.Free, Source{
			Name:    p.Name(),
			Value:   u.Free,
			RawData: fmt.Sprintf("%.1f%% free", diskspace.PercentageFree(u.Free, u.Total)),
		})
	}
	return r
}
