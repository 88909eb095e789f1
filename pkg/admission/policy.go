package admission

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/flowforge/diskgate/pkg/config"
	"github.com/flowforge/diskgate/pkg/model"
	"github.com/flowforge/diskgate/pkg/mountflag"
)

// Policy resolves where a task writes and how much free space must remain.
type Policy struct {
	DefaultPath        string
	Threshold          uint64
	CategoryThresholds map[string]uint64
	RequiredFlags      mountflag.Flags
}

// PolicyFromConfig parses the human-readable sizes and flag names of cfg.
func PolicyFromConfig(cfg config.AdmissionConfig) (Policy, error) {
	threshold, err := ParseThreshold(cfg.Threshold)
	if err != nil {
		return Policy{}, fmt.Errorf("admission.threshold: %w", err)
	}

	overrides := make(map[string]uint64, len(cfg.CategoryThresholds))
	for label, raw := range cfg.CategoryThresholds {
		v, err := ParseThreshold(raw)
		if err != nil {
			return Policy{}, fmt.Errorf("admission.category_thresholds.%s: %w", label, err)
		}
		overrides[strings.ToLower(label)] = v
	}

	flags, err := mountflag.Parse(cfg.RequiredMountFlags)
	if err != nil {
		return Policy{}, fmt.Errorf("admission.required_mount_flags: %w", err)
	}

	return Policy{
		DefaultPath:        cfg.DefaultPath,
		Threshold:          threshold,
		CategoryThresholds: overrides,
		RequiredFlags:      flags,
	}, nil
}

// ParseThreshold accepts sizes like "10GiB", "500MB" or "1048576". An empty
// string is zero.
func ParseThreshold(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return humanize.ParseBytes(s)
}

// ThresholdFor returns the category override if one exists, else the default.
// Labels match case-insensitively.
func (p Policy) ThresholdFor(label string) uint64 {
	if label != "" {
		if v, ok := p.CategoryThresholds[strings.ToLower(label)]; ok {
			return v
		}
	}
	return p.Threshold
}

// PathFor returns the filesystem path the task's output lands on.
func (p Policy) PathFor(task *model.Task) string {
	if task.OutputPath != "" {
		return task.OutputPath
	}
	if p.DefaultPath != "" {
		return p.DefaultPath
	}
	return "."
}
