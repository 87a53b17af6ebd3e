package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostatus/internal/utils"
)

const (
	internalTestConfigurationFileNameConstant = "config.yaml"
	internalTestLogFileNameConstant           = "diagnostics.log"
	internalTestConfiguredRootConstant        = "/tmp/configured-root"
	internalTestSearchPathConfigurationYAML   = "common:\n  log_level: warn\n  log_format: structured\nstatus:\n  roots:\n    - /tmp/configured-root\n  recursive: true\n  skip_clean: true\n  color: false\n"
	internalTestDebugLevelConfigurationYAML   = "common:\n  log_level: debug\n"
	internalTestInvalidLevelConfigurationYAML = "common:\n  log_level: verbose\n"
	internalTestLoggerCreationErrorFragment   = "unable to create logger"
)

func newInitializedTestApplication(testInstance *testing.T) *Application {
	testInstance.Helper()

	application := NewApplication()
	require.NoError(testInstance, application.rootCommandBuildError)
	require.NotNil(testInstance, application.rootCommand)

	logFilePath := filepath.Join(testInstance.TempDir(), internalTestLogFileNameConstant)
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logFileFlagNameConstant, logFilePath))

	return application
}

func writeTestConfigurationFile(testInstance *testing.T, configurationContent string) string {
	testInstance.Helper()

	configurationDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(configurationDirectory, internalTestConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))

	testInstance.Setenv(configurationSearchPathEnvironmentNameConstant, configurationDirectory)
	return configurationPath
}

func TestInitializeConfigurationAppliesEmbeddedDefaults(testInstance *testing.T) {
	testInstance.Setenv(configurationSearchPathEnvironmentNameConstant, testInstance.TempDir())

	application := newInitializedTestApplication(testInstance)
	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, string(utils.LogLevelInfo), application.configuration.Common.LogLevel)
	require.Equal(testInstance, string(utils.LogFormatConsole), application.configuration.Common.LogFormat)
	require.Equal(testInstance, []string{defaultConfigurationSearchPathConstant}, application.configuration.Status.Roots)
	require.False(testInstance, application.configuration.Status.Recursive)
	require.False(testInstance, application.configuration.Status.SkipClean)
	require.True(testInstance, application.configuration.Status.Color)
	require.Empty(testInstance, application.configurationMetadata.ConfigFileUsed)
	require.True(testInstance, application.humanReadableLoggingEnabled())

	_, logFileStatError := os.Stat(application.configuration.Common.LogFile)
	require.NoError(testInstance, logFileStatError)
}

func TestInitializeConfigurationReadsConfigurationFromSearchPath(testInstance *testing.T) {
	configurationPath := writeTestConfigurationFile(testInstance, internalTestSearchPathConfigurationYAML)

	application := newInitializedTestApplication(testInstance)
	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, string(utils.LogLevelWarn), application.configuration.Common.LogLevel)
	require.Equal(testInstance, string(utils.LogFormatStructured), application.configuration.Common.LogFormat)
	require.Equal(testInstance, []string{internalTestConfiguredRootConstant}, application.configuration.Status.Roots)
	require.True(testInstance, application.configuration.Status.Recursive)
	require.True(testInstance, application.configuration.Status.SkipClean)
	require.False(testInstance, application.configuration.Status.Color)
	require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)
	require.False(testInstance, application.humanReadableLoggingEnabled())

	attachedConfigurationPath, configurationPathAvailable := application.commandContextAccessor.ConfigurationFilePath(application.rootCommand.Context())
	require.True(testInstance, configurationPathAvailable)
	require.Equal(testInstance, configurationPath, attachedConfigurationPath)
}

func TestInitializeConfigurationUsesExplicitConfigurationFile(testInstance *testing.T) {
	testInstance.Setenv(configurationSearchPathEnvironmentNameConstant, testInstance.TempDir())

	explicitDirectory := testInstance.TempDir()
	explicitPath := filepath.Join(explicitDirectory, internalTestConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(explicitPath, []byte(internalTestDebugLevelConfigurationYAML), 0o600))

	application := newInitializedTestApplication(testInstance)
	application.configurationFilePath = explicitPath

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))
	require.Equal(testInstance, string(utils.LogLevelDebug), application.configuration.Common.LogLevel)
	require.Equal(testInstance, explicitPath, application.configurationMetadata.ConfigFileUsed)
}

func TestInitializeConfigurationHonorsPersistentFlagOverrides(testInstance *testing.T) {
	writeTestConfigurationFile(testInstance, internalTestDebugLevelConfigurationYAML)

	application := newInitializedTestApplication(testInstance)
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, string(utils.LogLevelError)))
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, string(utils.LogFormatStructured)))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, string(utils.LogLevelError), application.configuration.Common.LogLevel)
	require.Equal(testInstance, string(utils.LogFormatStructured), application.configuration.Common.LogFormat)
}

func TestInitializeConfigurationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	writeTestConfigurationFile(testInstance, internalTestInvalidLevelConfigurationYAML)

	application := newInitializedTestApplication(testInstance)

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.Error(testInstance, initializationError)
	require.Contains(testInstance, initializationError.Error(), internalTestLoggerCreationErrorFragment)
}
