//go:build gmp

package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/orchestration"
)

func TestNew_GMPAlgorithm(t *testing.T) {
	app := newTestApp(t, "--algo", "gmp", "10")
	if app.Config.Algo != "gmp" {
		t.Fatalf("Algo = %q, want gmp", app.Config.Algo)
	}
	calcs := orchestration.GetCalculatorsToRun(app.Config, app.Factory)
	if len(calcs) != 1 || calcs[0].Name() != "Chudnovsky (GMP)" {
		t.Fatalf("unexpected calculators: %v", calcs)
	}
}

func TestNew_AllIncludesGMP(t *testing.T) {
	app := newTestApp(t, "--algo", "all", "10")
	var names []string
	for _, c := range orchestration.GetCalculatorsToRun(app.Config, app.Factory) {
		names = append(names, c.Name())
	}
	if len(names) != 3 || !strings.Contains(strings.Join(names, ","), "Chudnovsky (GMP)") {
		t.Errorf("calculators = %v, want parallel, sequential and GMP", names)
	}
}

func TestRun_GMPQuiet(t *testing.T) {
	app := newTestApp(t, "--algo", "gmp", "-q", "50")
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, apperrors.ExitSuccess)
	}
	if got := strings.TrimSpace(out.String()); got != pi50 {
		t.Errorf("digits = %q, want %q", got, pi50)
	}
}
