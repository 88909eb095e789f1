// Package mountflag answers capability questions about the mount backing a
// path. It is a gating predicate: query failures resolve to false and are
// never surfaced, while platforms without per-mount flags always answer true.
package mountflag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupported is returned by Observe on platforms without mount flags.
var ErrUnsupported = errors.New("mount flags not supported on this platform")

// Flags is a bitmask of filesystem mount attributes. The named bits carry the
// platform's native values, so raw masks from configuration pass through
// unchanged.
type Flags uint

// Checker abstracts the mount flag query for testability.
type Checker interface {
	HasFlags(path string, required Flags) bool
}

// StatfsChecker implements Checker with the platform's statfs call.
type StatfsChecker struct{}

// HasFlags reports whether every bit of required is set on the mount backing path.
func (StatfsChecker) HasFlags(path string, required Flags) bool {
	return HasFlags(path, required)
}

// HasFlags reports whether every bit of required is set on the mount backing
// path. A failed query returns false.
func HasFlags(path string, required Flags) bool {
	if !Supported {
		return true
	}
	observed, err := observe(path)
	if err != nil {
		return false
	}
	return Contains(observed, required)
}

// Observe returns the raw mount flags of the filesystem backing path.
func Observe(path string) (Flags, error) {
	if !Supported {
		return 0, ErrUnsupported
	}
	return observe(path)
}

// Contains reports whether observed has all bits of required set.
func Contains(observed, required Flags) bool {
	return observed&required == required
}

var flagNames = []struct {
	flag Flags
	name string
}{
	{ReadOnly, "ro"},
	{NoSuid, "nosuid"},
	{NoDev, "nodev"},
	{NoExec, "noexec"},
	{Synchronous, "sync"},
	{NoAtime, "noatime"},
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	rest := f
	for _, fn := range flagNames {
		if fn.flag != 0 && f&fn.flag == fn.flag {
			parts = append(parts, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint(rest)))
	}
	return strings.Join(parts, "|")
}

// Parse converts a comma separated list of flag names ("ro,noexec") into a
// mask. Numeric values are accepted as raw masks.
func Parse(s string) (Flags, error) {
	var out Flags
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" || part == "none" {
			continue
		}
		if raw, err := strconv.ParseUint(part, 0, 0); err == nil {
			out |= Flags(raw)
			continue
		}
		found := false
		for _, fn := range flagNames {
			if fn.name == part {
				out |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown mount flag %q", part)
		}
	}
	return out, nil
}
