package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/tui"
)

// runTUI runs the calculation inside the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	if a.Config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config, a.Factory)
	if len(calculatorsToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "No calculator available for '%s'.\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}
	return tui.Run(ctx, calculatorsToRun, a.Config, Version)
}
