//go:build windows

package capacity

import "golang.org/x/sys/windows"

// Supported reports whether this platform has a capacity backend.
const Supported = true

func statfs(path string) (Sample, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return Sample{}, err
	}
	var availToCaller, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(p, &availToCaller, &total, &free); err != nil {
		return Sample{}, err
	}
	return newSample(path, 1, total, availToCaller), nil
}
