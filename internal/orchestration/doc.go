// Package orchestration runs one or more π calculators concurrently,
// collects their results and, in comparison mode, checks that every
// successful calculator produced the same digits. Presentation is kept out
// of this package behind the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
