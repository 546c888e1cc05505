package tui

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/progress"
)

func TestProgramRef_SendWithoutProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	ref.Send(ProgressDoneMsg{})
}

func TestTUIProgressReporter_Drains(t *testing.T) {
	t.Parallel()
	reporter := &TUIProgressReporter{ref: &programRef{}}

	progressChan := make(chan progress.ProgressUpdate, 3)
	progressChan <- progress.ProgressUpdate{CalculatorIndex: 0, Value: 0.3}
	progressChan <- progress.ProgressUpdate{CalculatorIndex: 1, Value: 0.6}
	close(progressChan)

	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan struct{})
	go func() {
		reporter.DisplayProgress(&wg, progressChan, 2, io.Discard)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DisplayProgress did not return after the channel closed")
	}
	wg.Wait()
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	presenter := &TUIResultPresenter{ref: &programRef{}}
	if code := presenter.HandleError(context.DeadlineExceeded, time.Second, io.Discard); code != apperrors.ExitErrorTimeout {
		t.Errorf("HandleError() = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if got := presenter.FormatDuration(1500 * time.Millisecond); got != "1.5s" {
		t.Errorf("FormatDuration() = %q", got)
	}
}

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	if len(km.ShortHelp()) != 2 {
		t.Errorf("ShortHelp() has %d bindings, want 2", len(km.ShortHelp()))
	}
	if full := km.FullHelp(); len(full) != 1 || len(full[0]) != 3 {
		t.Errorf("FullHelp() = %v", full)
	}
	for _, b := range km.ShortHelp() {
		if !b.Enabled() {
			t.Errorf("binding %v disabled", b.Keys())
		}
	}
}
