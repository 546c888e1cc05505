// Package logging provides the structured logging interface used by picalc
// and configures the process-wide zerolog logger from the --log-level flag.
package logging
