package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/chudnovsky/mocks"
	"github.com/agbru/picalc/internal/config"
	"github.com/agbru/picalc/internal/ui"
)

func TestPrintExecutionConfig(t *testing.T) {
	ui.InitTheme(true)
	defer ui.InitTheme(false)

	tests := []struct {
		name     string
		cfg      config.AppConfig
		contains []string
	}{
		{
			name:     "no timeout",
			cfg:      config.AppConfig{Digits: 1000, Threshold: 8192, GCMode: "auto"},
			contains: []string{"Calculating 1,000 digits of π (71 terms", "timeout of none", "one per CPU", "threshold=8192 terms", "gc=auto", "CPU features:"},
		},
		{
			name:     "explicit settings",
			cfg:      config.AppConfig{Digits: 100, Timeout: 5 * time.Minute, Workers: 3, Threshold: 64, GCMode: "disabled"},
			contains: []string{"(8 terms", "timeout of 5m0s", "workers=3,", "gc=disabled"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintExecutionConfig(tt.cfg, &buf)
			for _, s := range tt.contains {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("expected %q in:\n%s", s, buf.String())
				}
			}
		})
	}
}

func TestPrintExecutionMode(t *testing.T) {
	ui.InitTheme(true)
	defer ui.InitTheme(false)
	ctrl := gomock.NewController(t)

	single := mocks.NewMockCalculator(ctrl)
	single.EXPECT().Name().Return("Chudnovsky (Parallel)")

	var buf bytes.Buffer
	PrintExecutionMode([]chudnovsky.Calculator{single}, &buf)
	if !strings.Contains(buf.String(), "Single calculation with the Chudnovsky (Parallel) calculator") {
		t.Errorf("unexpected single mode output:\n%s", buf.String())
	}

	buf.Reset()
	PrintExecutionMode([]chudnovsky.Calculator{mocks.NewMockCalculator(ctrl), mocks.NewMockCalculator(ctrl)}, &buf)
	if !strings.Contains(buf.String(), "Parallel comparison of all calculators") {
		t.Errorf("unexpected comparison output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "--- Starting Execution ---") {
		t.Errorf("missing execution header:\n%s", buf.String())
	}
}

func TestEstimateMemory(t *testing.T) {
	t.Parallel()
	small := EstimateMemory(1_000)
	large := EstimateMemory(1_000_000)
	if small == 0 {
		t.Fatal("EstimateMemory(1000) = 0")
	}
	if large < 900*small {
		t.Errorf("estimate should grow linearly: %d vs %d", small, large)
	}
}

func TestCPUFeatures(t *testing.T) {
	t.Parallel()
	if CPUFeatures() == "" {
		t.Error("CPUFeatures() returned an empty string")
	}
}
