// Package ui provides the color themes shared by the CLI, the usage text and
// the calibration report, as ANSI escape codes for inline text and lipgloss
// colors for boxed output.
package ui
