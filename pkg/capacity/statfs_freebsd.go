//go:build freebsd

package capacity

import "golang.org/x/sys/unix"

// Supported reports whether this platform has a capacity backend.
const Supported = true

func statfs(path string) (Sample, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Sample{}, err
	}
	// Bavail is signed on FreeBSD and goes negative once the reserve is in use.
	avail := uint64(0)
	if stat.Bavail > 0 {
		avail = uint64(stat.Bavail)
	}
	return newSample(path, stat.Bsize, stat.Blocks, avail), nil
}
