package capacity

import (
	"context"
	"time"
)

// TimeoutProber bounds the wall time of a probe. A statfs against an
// unresponsive network filesystem can block indefinitely; the wrapped call
// keeps running in the background but the caller gets a ProbeError wrapping
// context.DeadlineExceeded once Timeout elapses.
type TimeoutProber struct {
	Prober  Prober
	Timeout time.Duration
}

type probeResult struct {
	sample Sample
	err    error
}

// Probe runs the wrapped probe with the configured timeout. A non-positive
// Timeout disables the bound.
func (t TimeoutProber) Probe(path string) (Sample, error) {
	if t.Timeout <= 0 {
		return t.Prober.Probe(path)
	}

	ch := make(chan probeResult, 1)
	go func() {
		sample, err := t.Prober.Probe(path)
		ch <- probeResult{sample: sample, err: err}
	}()

	timer := time.NewTimer(t.Timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.sample, res.err
	case <-timer.C:
		return Sample{}, &ProbeError{Path: path, Err: context.DeadlineExceeded}
	}
}
