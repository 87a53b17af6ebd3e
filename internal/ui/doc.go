// Package ui provides helpers for rendering human-readable command feedback.
//
// It adapts git probe lifecycle events into concise log messages so that scan
// progress remains readable for CLI users while structured telemetry continues
// to flow through the diagnostic logger.
package ui
