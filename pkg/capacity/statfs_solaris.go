//go:build solaris

package capacity

import "golang.org/x/sys/unix"

// Supported reports whether this platform has a capacity backend.
const Supported = true

func statfs(path string) (Sample, error) {
	var stat unix.Statvfs_t
	if err := unix.Statvfs(path, &stat); err != nil {
		return Sample{}, err
	}
	// statvfs counts blocks in fragment-size units.
	unit := stat.Frsize
	if unit == 0 {
		unit = stat.Bsize
	}
	return newSample(path, unit, stat.Blocks, stat.Bavail), nil
}
