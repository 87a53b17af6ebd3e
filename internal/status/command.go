package status

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repostatus/internal/repos/dependencies"
	"github.com/temirov/repostatus/internal/repos/filesystem"
	"github.com/temirov/repostatus/internal/repos/shared"
	"github.com/temirov/repostatus/internal/utils"
	flagutils "github.com/temirov/repostatus/internal/utils/flags"
	pathutils "github.com/temirov/repostatus/internal/utils/path"
)

const (
	commandUseConstant      = "repostatus [root ...]"
	commandShortDescription = "Report the status of git repositories under the provided roots"
	commandLongDescription  = "repostatus scans directories for git repositories and reports bare checkouts, detached HEADs, uncommitted or untracked changes, missing upstreams, and divergence from the configured upstream."
)

var scanRootSanitizer = pathutils.NewRepositoryPathSanitizerWithConfiguration(nil, pathutils.RepositoryPathSanitizerConfiguration{
	ExcludeBooleanLiteralCandidates: true,
	PruneNestedPaths:                true,
})

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the status scan command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Discoverer                   shared.RepositoryDiscoverer
	GitExecutor                  shared.GitExecutor
	Inspector                    shared.GitRepositoryInspector
	FileSystem                   FileSystem
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
}

// Build constructs the cobra command for repository status scans.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE:  builder.run,
	}

	flagutils.AddToggleFlag(command.Flags(), nil, flagutils.RecursiveFlagName, flagutils.RecursiveFlagShorthand, false, flagutils.RecursiveFlagUsage)
	flagutils.AddToggleFlag(command.Flags(), nil, flagutils.SkipCleanFlagName, "", false, flagutils.SkipCleanFlagUsage)
	flagutils.AddToggleFlag(command.Flags(), nil, flagutils.ColorFlagName, "", true, flagutils.ColorFlagUsage)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command, arguments)

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repositoryInspector, inspectorError := dependencies.ResolveRepositoryInspector(builder.Inspector, gitExecutor)
	if inspectorError != nil {
		return inspectorError
	}

	classifier, classifierError := NewClassifier(repositoryInspector)
	if classifierError != nil {
		return classifierError
	}

	repositoryDiscoverer := dependencies.ResolveRepositoryDiscoverer(builder.Discoverer, logger, options.Recursive)

	service := NewService(repositoryDiscoverer, classifier, builder.resolveFileSystem(), utils.NewFlushingWriter(command.OutOrStdout()))
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) CommandOptions {
	configuration := builder.resolveConfiguration()
	scanFlags, scanFlagsAvailable := flagutils.ResolveScanFlags(command)

	recursive := configuration.Recursive
	if scanFlagsAvailable && scanFlags.RecursiveSet {
		recursive = scanFlags.Recursive
	}

	skipClean := configuration.SkipClean
	if scanFlagsAvailable && scanFlags.SkipCleanSet {
		skipClean = scanFlags.SkipClean
	}

	color := configuration.Color
	if scanFlagsAvailable && scanFlags.ColorSet {
		color = scanFlags.Color
	}

	return CommandOptions{
		Roots:     determineScanRoots(arguments, configuration.Roots),
		Recursive: recursive,
		SkipClean: skipClean,
		Color:     color,
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	provided := builder.ConfigurationProvider()
	return provided.sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem != nil {
		return builder.FileSystem
	}
	return filesystem.OSFileSystem{}
}

func determineScanRoots(arguments []string, configuredRoots []string) []string {
	argumentRoots := scanRootSanitizer.Sanitize(arguments)
	if len(argumentRoots) > 0 {
		return argumentRoots
	}

	configured := scanRootSanitizer.Sanitize(configuredRoots)
	if len(configured) > 0 {
		return configured
	}

	return []string{defaultRootPathConstant}
}
