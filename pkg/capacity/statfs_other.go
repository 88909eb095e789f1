//go:build !linux && !darwin && !freebsd && !solaris && !windows

package capacity

// Supported reports whether this platform has a capacity backend.
const Supported = false

func statfs(path string) (Sample, error) {
	return Sample{}, ErrUnsupported
}
