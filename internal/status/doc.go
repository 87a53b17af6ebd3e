// Package status implements the repository status scan behind the repostatus
// command line interface.
//
// It exposes CommandBuilder for wiring the scan Cobra command, Service for driving
// a scan programmatically, Classifier for deriving repository status categories,
// and ReportRenderer for writing categorized results.
package status
