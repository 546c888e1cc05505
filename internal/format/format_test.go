package format

import (
	"strings"
	"testing"
	"time"
)

func TestProgressState(t *testing.T) {
	t.Parallel()

	t.Run("Average", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(2)
		ps.Update(0, 0.5)
		ps.Update(1, 1.0)
		if avg := ps.CalculateAverage(); avg != 0.75 {
			t.Errorf("average = %f, want 0.75", avg)
		}
	})

	t.Run("Clamped", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(2)
		ps.Update(0, 1.5)
		ps.Update(1, -0.5)
		if avg := ps.CalculateAverage(); avg != 0.5 {
			t.Errorf("average = %f, want 0.5", avg)
		}
	})

	t.Run("InvalidIndex", func(t *testing.T) {
		t.Parallel()
		ps := NewProgressState(2)
		ps.Update(5, 0.5)
		ps.Update(-1, 0.5)
		if avg := ps.CalculateAverage(); avg != 0 {
			t.Errorf("average = %f, want 0", avg)
		}
	})

	t.Run("ZeroCalculators", func(t *testing.T) {
		t.Parallel()
		if avg := NewProgressState(0).CalculateAverage(); avg != 0 {
			t.Errorf("average = %f, want 0", avg)
		}
	})
}

func TestUpdateWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)

	progress, eta := p.UpdateWithETA(0, 0.25)
	if progress != 0.125 {
		t.Errorf("progress = %f, want 0.125", progress)
	}
	if eta != 0 {
		t.Errorf("ETA right after start = %v, want 0", eta)
	}

	progress, _ = p.UpdateWithETA(1, 0.5)
	if progress != 0.375 {
		t.Errorf("progress = %f, want 0.375", progress)
	}
}

func TestGetETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}

	p.Update(0, 0.5)
	p.progressRate = 0.1
	if eta := p.GetETA(); eta != 5*time.Second {
		t.Errorf("ETA = %v, want 5s", eta)
	}

	p.Update(0, 1.0)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA when complete = %v, want 0", eta)
	}
}

func TestETACapping(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	p.Update(0, 0.001)
	p.progressRate = 1e-9
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("ETA = %v, want cap %v", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"Zero duration", 0, "calculating..."},
		{"Negative duration", -time.Second, "calculating..."},
		{"Less than a second", 500 * time.Millisecond, "< 1s"},
		{"Multiple seconds", 45 * time.Second, "45s"},
		{"One minute", time.Minute, "1m"},
		{"Minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"One hour", time.Hour, "1h"},
		{"Hours and minutes", 3*time.Hour + 45*time.Minute, "3h45m"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatETA(tc.eta); got != tc.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, got, tc.expected)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		expected string
	}{
		{0.0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{1.0, "██████████"},
		{1.2, "██████████"},
		{-0.1, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, 10); got != tt.expected {
			t.Errorf("ProgressBar(%f, 10) = %s; want %s", tt.progress, got, tt.expected)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.5, 30*time.Second, 4)
	if want := " 50.00% [██░░] ETA: 30s"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
		{1500*time.Millisecond + 400*time.Microsecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.input); got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
	if got := FormatUint(1_000_000); got != "1,000,000" {
		t.Errorf("FormatUint(1e6) = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KiB"},
		{1536 * 1024, "1.50 MiB"},
		{3 << 30, "3.00 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGroupDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		digits string
		size   int
		want   string
	}{
		{"", 10, ""},
		{"3", 10, "3"},
		{"31", 10, "3.1"},
		{"3141592653", 0, "3.141592653"},
		{"31415926535", 5, "3.14159 26535"},
		{"3141592653589", 5, "3.14159 26535 89"},
	}
	for _, tt := range tests {
		if got := GroupDigits(tt.digits, tt.size); got != tt.want {
			t.Errorf("GroupDigits(%q, %d) = %q, want %q", tt.digits, tt.size, got, tt.want)
		}
	}
	if got := GroupDigits("3"+strings.Repeat("1", 20), 10); strings.Count(got, " ") != 1 {
		t.Errorf("expected two blocks, got %q", got)
	}
}
