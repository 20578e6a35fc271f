//go:build !linux && !darwin

package diskspace

// Probe falls back to gopsutil where statfs is not available.
func (StatfsProber) Probe(path string) (Usage, error) {
	return GopsutilProber{}.Probe(path)
}
