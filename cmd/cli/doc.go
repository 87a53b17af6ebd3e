// Package cli constructs the repostatus command-line interface, wiring the
// Cobra root command, configuration loader, and file-backed structured
// logging. It exposes helpers to build application instances and to execute
// the status scan as a reusable library.
package cli
