//go:build linux

package mountflag

import "golang.org/x/sys/unix"

// Supported reports whether mount flags can be queried on this platform.
const Supported = true

const (
	ReadOnly    Flags = unix.ST_RDONLY
	NoSuid      Flags = unix.ST_NOSUID
	NoDev       Flags = unix.ST_NODEV
	NoExec      Flags = unix.ST_NOEXEC
	Synchronous Flags = unix.ST_SYNCHRONOUS
	NoAtime     Flags = unix.ST_NOATIME
)

func observe(path string) (Flags, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return Flags(stat.Flags), nil
}
