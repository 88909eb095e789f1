package capacity

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestStatfsProber_Probe(t *testing.T) {
	if !Supported {
		t.Skip("no capacity backend on this platform")
	}

	dir := t.TempDir()
	sample, err := StatfsProber{}.Probe(dir)
	if err != nil {
		t.Fatalf("Probe(%q) error = %v", dir, err)
	}
	if sample.Path != dir {
		t.Errorf("Path = %q, want %q", sample.Path, dir)
	}
	if sample.TotalBytes == 0 {
		t.Error("TotalBytes = 0, expected > 0")
	}
	if sample.AvailableBytes > sample.TotalBytes {
		t.Errorf("AvailableBytes %d > TotalBytes %d", sample.AvailableBytes, sample.TotalBytes)
	}
}

func TestStatfsProber_ProbeNonMountPoint(t *testing.T) {
	if !Supported {
		t.Skip("no capacity backend on this platform")
	}

	dir := t.TempDir()
	nested := filepath.Join(dir, "a")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	parent, err := Probe(dir)
	if err != nil {
		t.Fatalf("Probe(parent) error = %v", err)
	}
	child, err := Probe(nested)
	if err != nil {
		t.Fatalf("Probe(child) error = %v", err)
	}
	if parent.TotalBytes != child.TotalBytes {
		t.Errorf("same filesystem reported different totals: %d vs %d", parent.TotalBytes, child.TotalBytes)
	}
}

func TestStatfsProber_ProbeMissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does", "not", "exist")

	sample, err := StatfsProber{}.Probe(path)
	if err == nil {
		t.Fatalf("Probe(%q) error = nil, expected error", path)
	}
	if sample != (Sample{}) {
		t.Errorf("sample = %+v, want zero value alongside error", sample)
	}

	var probeErr *ProbeError
	if !errors.As(err, &probeErr) {
		t.Fatalf("error %T is not *ProbeError", err)
	}
	if probeErr.Path != path {
		t.Errorf("ProbeError.Path = %q, want %q", probeErr.Path, path)
	}
	if Supported && !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(err, fs.ErrNotExist) = false for %v", err)
	}
	if !Supported && !errors.Is(err, ErrUnsupported) {
		t.Errorf("errors.Is(err, ErrUnsupported) = false for %v", err)
	}
}

func TestNewSample(t *testing.T) {
	tests := []struct {
		name      string
		blockSize uint64
		total     uint64
		avail     uint64
		wantTotal uint64
		wantAvail uint64
	}{
		{"typical", 4096, 1000, 250, 4096000, 1024000},
		{"empty filesystem", 4096, 0, 0, 0, 0},
		{"full for caller", 512, 10, 0, 5120, 0},
		{"avail exceeds total is clamped", 1024, 10, 12, 10240, 10240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSample("/data", tt.blockSize, tt.total, tt.avail)
			if s.TotalBytes != tt.wantTotal {
				t.Errorf("TotalBytes = %d, want %d", s.TotalBytes, tt.wantTotal)
			}
			if s.AvailableBytes != tt.wantAvail {
				t.Errorf("AvailableBytes = %d, want %d", s.AvailableBytes, tt.wantAvail)
			}
		})
	}
}

func TestSample_Used(t *testing.T) {
	s := Sample{AvailableBytes: 1000, TotalBytes: 5000}
	if got := s.UsedBytes(); got != 4000 {
		t.Errorf("UsedBytes() = %d, want 4000", got)
	}
	if got := s.UsedPercent(); got != 80 {
		t.Errorf("UsedPercent() = %v, want 80", got)
	}
	if got := (Sample{}).UsedPercent(); got != 0 {
		t.Errorf("UsedPercent() on empty sample = %v, want 0", got)
	}
}
