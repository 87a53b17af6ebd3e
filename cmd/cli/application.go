package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/repostatus/internal/status"
	"github.com/temirov/repostatus/internal/utils"
	flagutils "github.com/temirov/repostatus/internal/utils/flags"
)

const (
	configFileFlagNameConstant                     = "config"
	configFileFlagUsageConstant                    = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                       = "log-level"
	logLevelFlagDescriptionConstant                = "Choose the minimum log level."
	logFormatFlagNameConstant                      = "log-format"
	logFormatFlagDescriptionConstant               = "Choose the log output format."
	logFileFlagNameConstant                        = "log"
	logFileFlagUsageConstant                       = "Path of the append-mode diagnostic log file."
	commonConfigurationKeyConstant                 = "common"
	commonLogLevelConfigKeyConstant                = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant               = commonConfigurationKeyConstant + ".log_format"
	commonLogFileConfigKeyConstant                 = commonConfigurationKeyConstant + ".log_file"
	statusConfigurationKeyConstant                 = "status"
	environmentPrefixConstant                      = "REPOSTATUS"
	configurationNameConstant                      = "config"
	configurationTypeConstant                      = "yaml"
	configurationSearchPathEnvironmentNameConstant = "REPOSTATUS_CONFIG_SEARCH_PATH"
	defaultConfigurationSearchPathConstant         = "."
	defaultLogFilePathConstant                     = "git_status.log"
	configurationInitializedMessageConstant        = "configuration initialized"
	configurationLogLevelFieldConstant             = "log_level"
	configurationLogFormatFieldConstant            = "log_format"
	configurationLogFileFieldConstant              = "log_file"
	configurationFileFieldConstant                 = "config_file"
	configurationLoadErrorTemplateConstant         = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant            = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                = "unable to flush logger: %w"
	versionFlagArgumentConstant                    = "--version"
	argumentTerminatorConstant                     = "--"
	versionOutputTemplateConstant                  = "repostatus version: %s\n"
	developmentVersionConstant                     = "development"
	unstampedBuildVersionConstant                  = "(devel)"
)

var (
	logLevelChoiceValues  = []string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)}
	logFormatChoiceValues = []string{string(utils.LogFormatConsole), string(utils.LogFormatStructured)}
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Status status.CommandConfiguration    `mapstructure:"status"`
}

// ApplicationCommonConfiguration stores logging configuration shared across the CLI.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	rootCommandBuildError  error
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	logFileFlagValue       string
	commandContextAccessor utils.CommandContextAccessor
	versionResolver        func(context.Context) string
	exitFunction           func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		resolveConfigurationSearchPaths(),
	)

	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		exitFunction:           os.Exit,
	}

	statusBuilder := status.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() status.CommandConfiguration {
			return application.configuration.Status
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}

	rootCommand, rootCommandBuildError := statusBuilder.Build()
	application.rootCommandBuildError = rootCommandBuildError
	if rootCommandBuildError == nil {
		application.configureRootCommand(rootCommand)
		application.rootCommand = rootCommand
	}

	return application
}

// Execute runs the configured Cobra command and ensures logger flushing.
func (application *Application) Execute() error {
	if application.rootCommandBuildError != nil {
		return application.rootCommandBuildError
	}

	if versionFlagRequested(os.Args[1:]) {
		fmt.Fprintf(os.Stdout, versionOutputTemplateConstant, application.resolveVersion(application.rootCommand.Context()))
		application.exitFunction(0)
		return nil
	}

	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(os.Args[1:]))

	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) configureRootCommand(command *cobra.Command) {
	command.SilenceUsage = true
	command.SilenceErrors = true
	command.PersistentPreRunE = func(activeCommand *cobra.Command, arguments []string) error {
		return application.initializeConfiguration(activeCommand)
	}

	command.SetContext(context.Background())
	command.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	command.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", flagutils.FormatChoiceUsage(string(utils.LogLevelInfo), logLevelChoiceValues, logLevelFlagDescriptionConstant))
	command.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", flagutils.FormatChoiceUsage(string(utils.LogFormatConsole), logFormatChoiceValues, logFormatFlagDescriptionConstant))
	command.PersistentFlags().StringVar(&application.logFileFlagValue, logFileFlagNameConstant, "", logFileFlagUsageConstant)
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
		commonLogFileConfigKeyConstant:   defaultLogFilePathConstant,
	}
	for configurationKey, configurationValue := range status.DefaultConfigurationValues(statusConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, logFileFlagNameConstant) {
		application.configuration.Common.LogFile = application.logFileFlagValue
	}

	logger, loggerCreationError := application.createConfiguredLogger()
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationLogFileFieldConstant, application.configuration.Common.LogFile),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) createConfiguredLogger() (*zap.Logger, error) {
	logLevel := utils.LogLevel(application.configuration.Common.LogLevel)
	logFormat := utils.LogFormat(application.configuration.Common.LogFormat)

	logFilePath := strings.TrimSpace(application.configuration.Common.LogFile)
	if len(logFilePath) == 0 {
		return application.loggerFactory.CreateLogger(logLevel, logFormat)
	}

	return application.loggerFactory.CreateFileLogger(logLevel, logFormat, logFilePath)
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) resolveVersion(executionContext context.Context) string {
	if application.versionResolver != nil {
		return application.versionResolver(executionContext)
	}
	return buildInfoVersion()
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

func resolveConfigurationSearchPaths() []string {
	searchPathOverride := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentNameConstant))
	if len(searchPathOverride) > 0 {
		return []string{searchPathOverride}
	}
	return []string{defaultConfigurationSearchPathConstant}
}

func versionFlagRequested(arguments []string) bool {
	for _, argument := range arguments {
		if argument == argumentTerminatorConstant {
			return false
		}
		if argument == versionFlagArgumentConstant {
			return true
		}
	}
	return false
}

func buildInfoVersion() string {
	buildInformation, buildInformationAvailable := debug.ReadBuildInfo()
	if !buildInformationAvailable {
		return developmentVersionConstant
	}

	moduleVersion := strings.TrimSpace(buildInformation.Main.Version)
	if len(moduleVersion) == 0 || moduleVersion == unstampedBuildVersionConstant {
		return developmentVersionConstant
	}

	return moduleVersion
}
