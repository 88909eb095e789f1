//go:build darwin

package mountflag

import "golang.org/x/sys/unix"

// Supported reports whether mount flags can be queried on this platform.
const Supported = true

const (
	ReadOnly    Flags = unix.MNT_RDONLY
	NoSuid      Flags = unix.MNT_NOSUID
	NoDev       Flags = unix.MNT_NODEV
	NoExec      Flags = unix.MNT_NOEXEC
	Synchronous Flags = unix.MNT_SYNCHRONOUS
	NoAtime     Flags = unix.MNT_NOATIME
)

func observe(path string) (Flags, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return Flags(stat.Flags), nil
}
