package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/cli"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/orchestration"
)

const pi50 = "31415926535897932384626433832795028841971693993751"

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	app, err := New(append([]string{"picalc"}, args...), io.Discard)
	if err != nil {
		t.Fatalf("New(%v) error = %v", args, err)
	}
	return app
}

func TestNew(t *testing.T) {
	app := newTestApp(t, "--algo", "sequential", "50")
	if app.Config.Digits != 50 || app.Config.Algo != "sequential" {
		t.Errorf("unexpected config: %+v", app.Config)
	}
	if app.Factory != chudnovsky.CalculatorFactory(chudnovsky.GlobalFactory()) {
		t.Fatal("default factory should be the global factory")
	}
}

func TestNew_WithFactory(t *testing.T) {
	factory := chudnovsky.NewDefaultFactory()
	app, err := New([]string{"picalc", "10"}, io.Discard, WithFactory(factory))
	if err != nil {
		t.Fatal(err)
	}
	if app.Factory != factory {
		t.Error("WithFactory was not applied")
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New([]string{"picalc", "--help"}, io.Discard)
	if !IsHelpError(err) {
		t.Errorf("expected a help error, got %v", err)
	}

	_, err = New([]string{"picalc", "0"}, io.Discard)
	if code := apperrors.ExitCode(err); code != apperrors.ExitErrorConfig {
		t.Errorf("digits=0: exit code %d, want %d (err %v)", code, apperrors.ExitErrorConfig, err)
	}
}

func TestRun_Quiet(t *testing.T) {
	for _, algo := range []string{"parallel", "sequential", "all"} {
		t.Run(algo, func(t *testing.T) {
			app := newTestApp(t, "-q", "--algo", algo, "--threshold", "2", "50")
			var out bytes.Buffer
			if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
				t.Fatalf("Run() = %d, want 0", code)
			}
			if got := out.String(); got != pi50+"\n" {
				t.Errorf("output = %q, want %q", got, pi50+"\n")
			}
		})
	}
}

func TestRun_Normal(t *testing.T) {
	app := newTestApp(t, "--no-color", "--details", "--algo", "all", "120")
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want 0\n%s", code, out.String())
	}
	for _, want := range []string{
		"Execution Configuration",
		"Parallel comparison of all calculators",
		"Comparison Summary",
		"Global Status: Success",
		"Computed 120 significant digits of π.",
		"π (truncated) = 3.1415926535897932384626433...",
		"Memory Stats:",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, out.String())
		}
	}
	if app.Config.Threshold == 0 {
		t.Error("adaptive threshold was not applied")
	}
}

func TestRun_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pi.txt")
	app := newTestApp(t, "-q", "-o", path, "20")
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d", code)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "3.1415926535897932384") {
		t.Errorf("file content:\n%s", content)
	}
}

func TestRun_Version(t *testing.T) {
	app := newTestApp(t, "--version")
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d", code)
	}
	if !strings.HasPrefix(out.String(), "picalc "+Version) {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var errOut bytes.Buffer
	app, err := New([]string{"picalc", "-q", "5000"}, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	if code := app.Run(ctx, io.Discard); code != apperrors.ExitErrorCanceled {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
	if !strings.Contains(errOut.String(), "Error:") {
		t.Errorf("expected the failure on the error writer, got %q", errOut.String())
	}
}

func TestAnalyzeQuiet_Timeout(t *testing.T) {
	var errOut bytes.Buffer
	app := &Application{ErrWriter: &errOut}
	app.Config.Timeout = time.Millisecond
	results := []orchestration.CalculationResult{
		{Name: "x", Err: apperrors.CalculationError{Algorithm: "x", Cause: context.DeadlineExceeded}},
	}
	if code := app.analyzeQuiet(results, cliOutputQuiet(), io.Discard); code != apperrors.ExitErrorTimeout {
		t.Errorf("analyzeQuiet() = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if !strings.Contains(errOut.String(), "timed out after 1ms") {
		t.Errorf("unexpected error output %q", errOut.String())
	}
}

func TestFindBestResult(t *testing.T) {
	results := []orchestration.CalculationResult{
		{Name: "slow", Duration: 2 * time.Second},
		{Name: "failed", Duration: time.Millisecond, Err: errors.New("boom")},
		{Name: "fast", Duration: time.Second},
	}
	if best := findBestResult(results); best == nil || best.Name != "fast" {
		t.Errorf("findBestResult() = %+v, want fast", best)
	}
	if findBestResult(results[1:2]) != nil {
		t.Error("findBestResult() should be nil when every run failed")
	}
}

func TestHasVersionFlag(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-d", "10", "-version"}, true},
		{[]string{"-V"}, true},
		{[]string{"10"}, false},
		{[]string{"--", "--version"}, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func cliOutputQuiet() cli.OutputConfig {
	return cli.OutputConfig{Quiet: true}
}
