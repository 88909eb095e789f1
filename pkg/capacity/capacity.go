// Package capacity reports the free and total byte capacity of the
// filesystem backing a path. The platform query lives in build-constrained
// statfs_*.go files; everything else in the module goes through Prober.
package capacity

import (
	"errors"
	"fmt"
)

// ErrUnsupported is wrapped by ProbeError on platforms without a backend.
var ErrUnsupported = errors.New("capacity probe not supported on this platform")

// Sample is a single capacity reading. It is produced fresh by every probe
// and must not be cached: an admission decision taken on a stale sample is
// meaningless.
type Sample struct {
	Path           string `json:"path"`
	AvailableBytes uint64 `json:"available_bytes"` // usable by an unprivileged caller
	TotalBytes     uint64 `json:"total_bytes"`
}

// UsedBytes returns the bytes not available to the caller, including any
// blocks reserved for the superuser.
func (s Sample) UsedBytes() uint64 {
	return s.TotalBytes - s.AvailableBytes
}

// UsedPercent returns UsedBytes as a percentage of TotalBytes.
func (s Sample) UsedPercent() float64 {
	if s.TotalBytes == 0 {
		return 0
	}
	return float64(s.UsedBytes()) / float64(s.TotalBytes) * 100
}

// ProbeError reports a failed capacity query. Err keeps the underlying errno
// so callers can match it with errors.Is.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("capacity probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Prober abstracts the capacity query for testability.
type Prober interface {
	// Probe returns a fresh Sample for the filesystem backing path, or a
	// *ProbeError. It never returns a zeroed sample with a nil error.
	Probe(path string) (Sample, error)
}

// StatfsProber implements Prober with the platform's filesystem statistics call.
type StatfsProber struct{}

// Probe queries the filesystem backing path.
func (StatfsProber) Probe(path string) (Sample, error) {
	sample, err := statfs(path)
	if err != nil {
		return Sample{}, &ProbeError{Path: path, Err: err}
	}
	return sample, nil
}

// Probe queries the filesystem backing path with the platform backend.
func Probe(path string) (Sample, error) {
	return StatfsProber{}.Probe(path)
}

// newSample converts block counts into a Sample. Some platforms briefly report
// more available than total blocks; available is clamped so that
// AvailableBytes <= TotalBytes always holds.
func newSample(path string, blockSize, totalBlocks, availBlocks uint64) Sample {
	total := blockSize * totalBlocks
	avail := blockSize * availBlocks
	if avail > total {
		avail = total
	}
	return Sample{
		Path:           path,
		AvailableBytes: avail,
		TotalBytes:     total,
	}
}
