package tui

import (
	"time"

	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/sysmon"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the results of every calculator.
type ComparisonResultsMsg struct {
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the result to display.
type FinalResultMsg struct {
	Result  orchestration.CalculationResult
	Options orchestration.PresentationOptions
}

// ErrorMsg reports a failure of the whole run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// CalculationCompleteMsg ends the run with an exit code.
type CalculationCompleteMsg struct {
	ExitCode int
}

// TickMsg refreshes the system statistics.
type TickMsg struct {
	Stats sysmon.Stats
}
