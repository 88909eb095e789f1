// Package admission decides whether a task may write to a filesystem without
// pushing its free space below a configured floor.
package admission

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/flowforge/diskgate/pkg/capacity"
	"github.com/flowforge/diskgate/pkg/metrics"
)

type Reason string

const (
	ReasonNoThreshold          Reason = "no_threshold"
	ReasonHeadroomOK           Reason = "headroom_ok"
	ReasonAvailableOK          Reason = "available_ok"
	ReasonExceedsAvailable     Reason = "exceeds_available"
	ReasonInsufficientHeadroom Reason = "insufficient_headroom"
	ReasonBelowThreshold       Reason = "below_threshold"
	ReasonProbeFailed          Reason = "probe_failed"
	ReasonMountFlags           Reason = "mount_flags"
)

// Decision is the outcome of one admission query. Sample is nil when no probe
// was made or the probe failed.
type Decision struct {
	Admitted     bool             `json:"admitted"`
	Reason       Reason           `json:"reason"`
	Path         string           `json:"path"`
	PendingBytes int64            `json:"pending_write_bytes"`
	Threshold    uint64           `json:"threshold_bytes"`
	Sample       *capacity.Sample `json:"sample,omitempty"`
	Message      string           `json:"message,omitempty"`
}

// Gate applies the free-space threshold policy on top of a capacity.Prober.
// It holds no mutable state and is safe for concurrent use.
type Gate struct {
	prober capacity.Prober
	logger *zap.Logger
}

func NewGate(prober capacity.Prober, logger *zap.Logger) *Gate {
	return &Gate{prober: prober, logger: logger}
}

// Admit reports whether a write of pendingWriteBytes to the filesystem backing
// path keeps at least threshold bytes free. A non-positive pendingWriteBytes
// means the size is unknown and only current free space is checked. A zero
// threshold always admits. A failed probe denies.
func (g *Gate) Admit(path string, pendingWriteBytes int64, threshold uint64) bool {
	d, _ := g.Evaluate(path, pendingWriteBytes, threshold)
	return d.Admitted
}

// Evaluate is Admit with the full decision. When the capacity probe fails the
// decision is a denial with ReasonProbeFailed and the probe error is returned.
func (g *Gate) Evaluate(path string, pendingWriteBytes int64, threshold uint64) (Decision, error) {
	d := Decision{
		Path:         path,
		PendingBytes: pendingWriteBytes,
		Threshold:    threshold,
	}

	if threshold == 0 {
		d.Admitted = true
		d.Reason = ReasonNoThreshold
		record(d)
		return d, nil
	}

	sample, err := g.prober.Probe(path)
	if err != nil {
		d.Reason = ReasonProbeFailed
		d.Message = fmt.Sprintf("free space on %s unknown: %v", path, err)
		metrics.ProbeFailures.Inc()
		g.logger.Warn("admission denied",
			zap.String("path", path),
			zap.String("reason", string(d.Reason)),
			zap.Int64("pending_write_bytes", pendingWriteBytes),
			zap.Uint64("threshold_bytes", threshold),
			zap.Error(err),
		)
		record(d)
		return d, err
	}

	d.Sample = &sample
	d.Admitted, d.Reason = decide(sample.AvailableBytes, pendingWriteBytes, threshold)
	if !d.Admitted {
		d.Message = denialMessage(d.Reason, sample.AvailableBytes, pendingWriteBytes, threshold)
		g.logger.Info("admission denied",
			zap.String("path", path),
			zap.String("reason", string(d.Reason)),
			zap.String("detail", d.Message),
			zap.Int64("pending_write_bytes", pendingWriteBytes),
			zap.Uint64("available_bytes", sample.AvailableBytes),
			zap.Uint64("threshold_bytes", threshold),
		)
	}
	record(d)
	return d, nil
}

// decide holds the threshold arithmetic. A known write size simulates the
// write; an unknown one only checks current headroom.
func decide(available uint64, pendingWriteBytes int64, threshold uint64) (bool, Reason) {
	if pendingWriteBytes > 0 {
		size := uint64(pendingWriteBytes)
		if size > available {
			return false, ReasonExceedsAvailable
		}
		if available-size < threshold {
			return false, ReasonInsufficientHeadroom
		}
		return true, ReasonHeadroomOK
	}
	if available < threshold {
		return false, ReasonBelowThreshold
	}
	return true, ReasonAvailableOK
}

func denialMessage(reason Reason, available uint64, pendingWriteBytes int64, threshold uint64) string {
	switch reason {
	case ReasonExceedsAvailable:
		return fmt.Sprintf("file of size %s exceeds available disk space (%s), threshold %s",
			humanize.IBytes(uint64(pendingWriteBytes)), humanize.IBytes(available), humanize.IBytes(threshold))
	case ReasonInsufficientHeadroom:
		return fmt.Sprintf("file of size %s will lower available disk space (%s) below threshold (%s)",
			humanize.IBytes(uint64(pendingWriteBytes)), humanize.IBytes(available), humanize.IBytes(threshold))
	case ReasonBelowThreshold:
		return fmt.Sprintf("available disk space (%s) lower than threshold (%s)",
			humanize.IBytes(available), humanize.IBytes(threshold))
	default:
		return string(reason)
	}
}

func record(d Decision) {
	metrics.AdmissionDecisions.WithLabelValues(metrics.ResultLabel(d.Admitted), string(d.Reason)).Inc()
}
