//go:build !linux && !darwin

package mountflag

// Supported reports whether mount flags can be queried on this platform.
// Without per-mount flags every capability is assumed present.
const Supported = false

const (
	ReadOnly Flags = 1 << iota
	NoSuid
	NoDev
	NoExec
	Synchronous
	NoAtime
)

func observe(path string) (Flags, error) {
	return 0, ErrUnsupported
}
