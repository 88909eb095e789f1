package capacity

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubProber struct {
	sample Sample
	err    error
	delay  time.Duration
}

func (s *stubProber) Probe(path string) (Sample, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.sample, s.err
}

func TestTimeoutProber(t *testing.T) {
	want := Sample{Path: "/data", AvailableBytes: 10, TotalBytes: 20}

	t.Run("fast probe passes through", func(t *testing.T) {
		p := TimeoutProber{Prober: &stubProber{sample: want}, Timeout: time.Second}
		got, err := p.Probe("/data")
		if err != nil {
			t.Fatalf("Probe() error = %v", err)
		}
		if got != want {
			t.Errorf("Probe() = %+v, want %+v", got, want)
		}
	})

	t.Run("errors pass through", func(t *testing.T) {
		inner := &ProbeError{Path: "/data", Err: errors.New("io error")}
		p := TimeoutProber{Prober: &stubProber{err: inner}, Timeout: time.Second}
		if _, err := p.Probe("/data"); !errors.Is(err, inner) {
			t.Errorf("Probe() error = %v, want %v", err, inner)
		}
	})

	t.Run("slow probe times out", func(t *testing.T) {
		p := TimeoutProber{Prober: &stubProber{sample: want, delay: 200 * time.Millisecond}, Timeout: 10 * time.Millisecond}
		_, err := p.Probe("/data")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("Probe() error = %v, want deadline exceeded", err)
		}
		var probeErr *ProbeError
		if !errors.As(err, &probeErr) || probeErr.Path != "/data" {
			t.Errorf("expected *ProbeError for /data, got %v", err)
		}
	})

	t.Run("zero timeout disables bound", func(t *testing.T) {
		p := TimeoutProber{Prober: &stubProber{sample: want, delay: 5 * time.Millisecond}}
		if _, err := p.Probe("/data"); err != nil {
			t.Errorf("Probe() error = %v", err)
		}
	})
}
