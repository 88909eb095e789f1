package admission

import (
	"testing"

	"github.com/flowforge/diskgate/pkg/config"
	"github.com/flowforge/diskgate/pkg/model"
	"github.com/flowforge/diskgate/pkg/mountflag"
)

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"1024", 1024, false},
		{"10GiB", 10 << 30, false},
		{"500MB", 500_000_000, false},
		{" 1 KiB ", 1024, false},
		{"lots", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseThreshold(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseThreshold(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseThreshold(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestPolicyFromConfig(t *testing.T) {
	p, err := PolicyFromConfig(config.AdmissionConfig{
		DefaultPath:        "/scratch",
		Threshold:          "1GiB",
		CategoryThresholds: map[string]string{"build": "2GiB", "adhoc": "0"},
		RequiredMountFlags: "nosuid",
	})
	if err != nil {
		t.Fatalf("PolicyFromConfig() error: %v", err)
	}

	if p.ThresholdFor("") != 1<<30 {
		t.Errorf("default threshold = %d", p.ThresholdFor(""))
	}
	if p.ThresholdFor("BUILD") != 2<<30 {
		t.Errorf("build threshold = %d", p.ThresholdFor("BUILD"))
	}
	if p.ThresholdFor("adhoc") != 0 {
		t.Errorf("adhoc threshold = %d, want 0", p.ThresholdFor("adhoc"))
	}
	if p.ThresholdFor("other") != 1<<30 {
		t.Errorf("unknown category should use default")
	}
	if p.RequiredFlags != mountflag.NoSuid {
		t.Errorf("RequiredFlags = %v", p.RequiredFlags)
	}

	if got := p.PathFor(&model.Task{}); got != "/scratch" {
		t.Errorf("PathFor(no output) = %q", got)
	}
	if got := p.PathFor(&model.Task{OutputPath: "/out"}); got != "/out" {
		t.Errorf("PathFor(/out) = %q", got)
	}
	if got := (Policy{}).PathFor(&model.Task{}); got != "." {
		t.Errorf("PathFor with empty policy = %q", got)
	}
}

func TestPolicyFromConfigErrors(t *testing.T) {
	cases := []config.AdmissionConfig{
		{Threshold: "huge"},
		{CategoryThresholds: map[string]string{"x": "nope"}},
		{RequiredMountFlags: "sparkly"},
	}
	for _, c := range cases {
		if _, err := PolicyFromConfig(c); err == nil {
			t.Errorf("PolicyFromConfig(%+v) error = nil", c)
		}
	}
}
