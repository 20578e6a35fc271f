package diskspace

import (
	"github.com/shirou/gopsutil/v3/disk"
)

// Prober performs one OS-level capacity query for a path.
type Prober interface {
	Probe(path string) (Usage, error)
}

// ProbeFunc adapts a plain function to Prober.
type ProbeFunc func(path string) (Usage, error)

// Probe calls f(path).
func (f ProbeFunc) Probe(path string) (Usage, error) {
	return f(path)
}

// StatfsProber queries capacity with statfs(2). Free counts only blocks
// available to unprivileged users; reserved blocks are reported as used.
type StatfsProber struct{}

// Name returns the prober name.
func (StatfsProber) Name() string {
	return "statfs"
}

// GopsutilProber queries capacity through gopsutil, which also covers
// platforms without statfs.
type GopsutilProber struct{}

// Name returns the prober name.
func (GopsutilProber) Name() string {
	return "gopsutil"
}

// Probe returns capacity for path as reported by gopsutil.
func (GopsutilProber) Probe(path string) (Usage, error) {
	stat, err := disk.Usage(path)
	if err != nil {
		return Usage{}, err
	}
	return usageFrom(stat.Total, stat.Free), nil
}

// usageFrom derives used space so that Used+Free always equals Total.
func usageFrom(total, free uint64) Usage {
	if free > total {
		free = total
	}
	return Usage{
		Total: total,
		Used:  total - free,
		Free:  free,
	}
}

// ProberByName returns the named prober, or nil when unknown.
func ProberByName(name string) Prober {
	switch name {
	case "", "statfs":
		return StatfsProber{}
	case "gopsutil":
		return GopsutilProber{}
	}
	return nil
}
