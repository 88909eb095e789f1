//go:build linux

package capacity

import "golang.org/x/sys/unix"

// Supported reports whether this platform has a capacity backend.
const Supported = true

func statfs(path string) (Sample, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Sample{}, err
	}
	// Bavail, not Bfree: root-reserved blocks are not usable by tasks.
	return newSample(path, uint64(stat.Bsize), stat.Blocks, stat.Bavail), nil // #nosec G115 -- kernel block size is positive
}
