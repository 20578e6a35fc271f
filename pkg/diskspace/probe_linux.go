//go:build linux

package diskspace

import (
	"golang.org/x/sys/unix"
)

// Probe returns capacity for path using statfs.
func (StatfsProber) Probe(path string) (Usage, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Usage{}, err
	}

	// Block counts are in fragment-size units.
	blockSize := uint64(stat.Frsize)
	if blockSize == 0 {
		blockSize = uint64(stat.Bsize)
	}
	return usageFrom(stat.Blocks*blockSize, stat.Bavail*blockSize), nil
}
