// Package utils exposes reusable helpers consumed across the CLI.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap file logging, plus small
// writer and command-context helpers shared by the command layer.
package utils
