package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/ui"
)

func TestCLIResultPresenter_PresentComparisonTable(t *testing.T) {
	ui.InitTheme(true)
	defer ui.InitTheme(false)

	results := []orchestration.CalculationResult{
		{Name: "Chudnovsky (Parallel)", Result: newTestResult("3141"), Duration: 2 * time.Second},
		{Name: "Chudnovsky (Sequential)", Err: errors.New("boom")},
	}
	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{"Comparison Summary", "Chudnovsky (Parallel)", "✅ Success", "❌ Failure (boom)", "< 1µs", "2s"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	header := lines[1]
	row := lines[2]
	if strings.Index(header, "Duration") != strings.Index(row, "2s") {
		t.Errorf("columns misaligned:\n%s\n%s", header, row)
	}
}

func TestCLIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"mismatch", apperrors.MismatchError{Algorithms: []string{"a", "b"}}, apperrors.ExitErrorMismatch},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if got := (CLIResultPresenter{}).HandleError(tt.err, time.Second, &buf); got != tt.want {
				t.Errorf("HandleError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCLIResultPresenter_PresentResult(t *testing.T) {
	ui.InitTheme(true)
	defer ui.InitTheme(false)

	var buf bytes.Buffer
	res := orchestration.CalculationResult{Name: "x", Result: newTestResult("31415"), Duration: time.Millisecond}
	CLIResultPresenter{}.PresentResult(res, orchestration.PresentationOptions{Digits: 5}, &buf)
	if !strings.Contains(buf.String(), "π = 3.1415") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestCLIResultPresenter_FormatDuration(t *testing.T) {
	t.Parallel()
	if got := (CLIResultPresenter{}).FormatDuration(1500 * time.Millisecond); got != "1.5s" {
		t.Errorf("FormatDuration() = %q, want %q", got, "1.5s")
	}
}

func TestPadRight(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s      string
		length int
		want   string
	}{
		{"ab", 3, "ab   "},
		{"ab", 0, "ab"},
		{"ab", -1, "ab"},
	}
	for _, tt := range tests {
		if got := padRight(tt.s, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.s, tt.length, got, tt.want)
		}
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemoryUsage{PeakHeap: 3 << 20, TotalAlloc: 1536 << 10, NumGC: 7, PauseTotalNs: 2_500_000}, &buf)
	for _, want := range []string{"Peak heap:       3.00 MiB", "Total allocated: 1.50 MiB", "GC cycles:       7", "2.50ms"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in:\n%s", want, buf.String())
		}
	}
}
