// Package tui is the interactive dashboard shown with --tui. It runs the
// same orchestration as the command line and renders progress, system
// load and the result with bubbletea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/cli"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/sysmon"
)

const (
	tickInterval = time.Second
	labelWidth   = 26
	barWidth     = 30
)

// Model is the root bubbletea model of the dashboard.
type Model struct {
	ctx         context.Context
	cancel      context.CancelFunc
	calculators []chudnovsky.Calculator
	config      config.AppConfig
	version     string
	ref         *programRef

	keymap KeyMap
	help   help.Model
	styles styles

	names    []string
	progress []float64
	average  float64
	eta      time.Duration
	stats    sysmon.Stats
	start    time.Time
	elapsed  time.Duration

	results     []orchestration.CalculationResult
	final       *FinalResultMsg
	err         error
	showDetails bool
	done        bool
	exitCode    int
}

// NewModel creates a dashboard for calculators. The run is canceled with
// parentCtx or when the user quits.
func NewModel(parentCtx context.Context, calculators []chudnovsky.Calculator, cfg config.AppConfig, version string) Model {
	names := make([]string, len(calculators))
	for i, c := range calculators {
		names[i] = c.Name()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		ctx:         ctx,
		cancel:      cancel,
		calculators: calculators,
		config:      cfg,
		version:     version,
		ref:         &programRef{},
		keymap:      DefaultKeyMap(),
		help:        help.New(),
		styles:      newStyles(),
		names:       names,
		progress:    make([]float64, len(calculators)),
		start:       time.Now(),
		showDetails: cfg.Details,
		exitCode:    apperrors.ExitSuccess,
	}
}

// Init starts the calculation and the statistics ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), startCalculationCmd(m.ctx, m.ref, m.calculators, m.config))
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return TickMsg{Stats: sysmon.Sample()}
	})
}

// startCalculationCmd runs the orchestration with the dashboard as progress
// reporter and presenter.
func startCalculationCmd(ctx context.Context, ref *programRef, calculators []chudnovsky.Calculator, cfg config.AppConfig) tea.Cmd {
	return func() tea.Msg {
		results := orchestration.ExecuteCalculations(ctx, calculators, cfg, &TUIProgressReporter{ref: ref}, io.Discard)
		opts := orchestration.PresentationOptions{Digits: cfg.Digits, Verbose: cfg.Verbose, Details: cfg.Details}
		code := orchestration.AnalyzeComparisonResults(results, opts, &TUIResultPresenter{ref: ref}, io.Discard)
		return CalculationCompleteMsg{ExitCode: code}
	}
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			if !m.done {
				m.exitCode = apperrors.ExitErrorCanceled
			}
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keymap.Details):
			m.showDetails = !m.showDetails
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case ProgressMsg:
		if msg.CalculatorIndex >= 0 && msg.CalculatorIndex < len(m.progress) {
			m.progress[msg.CalculatorIndex] = msg.Value
		}
		m.average = msg.AverageProgress
		m.eta = msg.ETA
	case ProgressDoneMsg:
		for i := range m.progress {
			m.progress[i] = 1
		}
		m.average = 1
		m.eta = 0
	case ComparisonResultsMsg:
		m.results = msg.Results
	case FinalResultMsg:
		m.final = &msg
	case ErrorMsg:
		m.err = msg.Err
	case CalculationCompleteMsg:
		m.done = true
		m.exitCode = msg.ExitCode
		m.elapsed = time.Since(m.start)
	case TickMsg:
		m.stats = msg.Stats
		if !m.done {
			m.elapsed = time.Since(m.start)
		}
		return m, tickCmd()
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	fmt.Fprintf(&b, "%s\n", s.title.Render(fmt.Sprintf("π Calculator %s", m.version)))
	fmt.Fprintf(&b, "%s digits, %s terms, elapsed %s\n\n",
		format.FormatUint(m.config.Digits),
		format.FormatUint(chudnovsky.TermCount(m.config.Digits)),
		format.FormatExecutionDuration(m.elapsed.Round(time.Second)))

	rows := make([]string, 0, len(m.names)+2)
	for i, name := range m.names {
		rows = append(rows, s.label.Render(name)+fmt.Sprintf("%s %6.2f%%", format.ProgressBar(m.progress[i], barWidth), m.progress[i]*100))
	}
	if len(m.names) > 1 {
		rows = append(rows, s.label.Render("Average")+format.FormatProgressBarWithETA(m.average, m.eta, barWidth))
	} else {
		rows = append(rows, s.muted.Render("ETA: "+format.FormatETA(m.eta)))
	}
	rows = append(rows, s.muted.Render(fmt.Sprintf("CPU %5.1f%%  MEM %5.1f%%", m.stats.CPUPercent, m.stats.MemPercent)))
	b.WriteString(s.panel.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	if len(m.results) > 1 {
		b.WriteString("\n")
		for _, res := range m.results {
			status := s.success.Render("✅ " + format.FormatExecutionDuration(res.Duration))
			if res.Err != nil {
				status = s.failure.Render("❌ " + res.Err.Error())
			}
			b.WriteString(s.label.Render(res.Name) + status + "\n")
		}
	}

	switch {
	case m.err != nil:
		fmt.Fprintf(&b, "\n%s\n", s.failure.Render(statusLine(m.err)))
	case m.final != nil && m.final.Result.Result != nil:
		b.WriteString("\n" + m.resultView(m.final.Result) + "\n")
	case m.done && m.exitCode != apperrors.ExitSuccess:
		fmt.Fprintf(&b, "\n%s\n", s.failure.Render(fmt.Sprintf("Calculators disagree (exit code %d).", m.exitCode)))
	}

	b.WriteString("\n" + m.help.View(m.keymap))
	return b.String()
}

func (m Model) resultView(res orchestration.CalculationResult) string {
	r := res.Result
	lines := []string{"π = " + cli.FormatPiValue(r.Digits, false)}
	if m.showDetails {
		lines = append(lines,
			"",
			fmt.Sprintf("Calculator       : %s", res.Name),
			fmt.Sprintf("Calculation time : %s", format.FormatExecutionDuration(res.Duration)),
			fmt.Sprintf("Series terms     : %s", format.FormatUint(r.Precision.Terms)),
			fmt.Sprintf("Working bits     : %s", format.FormatUint(r.Precision.Bits)),
			fmt.Sprintf("Pell iterations  : %d", r.PellIterations),
			fmt.Sprintf("Forked tasks     : %d on workers, %d inline", r.Tasks.Spawned, r.Tasks.Inline),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statusLine(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Status: Failure (Timeout)."
	case errors.Is(err, context.Canceled):
		return "Status: Canceled."
	default:
		return "Status: Failure. " + err.Error()
	}
}

// Run shows the dashboard until the user quits and returns the exit code.
func Run(ctx context.Context, calculators []chudnovsky.Calculator, cfg config.AppConfig, version string) int {
	m := NewModel(ctx, calculators, cfg, version)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	m.ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitCode(ctx.Err())
		}
		return apperrors.ExitErrorGeneric
	}
	if fm, ok := final.(Model); ok {
		return fm.exitCode
	}
	return apperrors.ExitErrorGeneric
}
