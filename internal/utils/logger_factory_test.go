package utils_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostatus/internal/utils"
)

const (
	testLoggerFactoryCaseSupportedFormatConstant   = "supported_log_level_%s_format_%s"
	testLoggerFactoryCaseUnsupportedLevelConstant  = "unsupported_log_level"
	testLoggerFactoryCaseUnsupportedFormatConstant = "unsupported_log_format"
	testLoggerFactorySubtestTemplateConstant       = "%d_%s"
	testInvalidLogLevelConstant                    = "invalid"
	testInvalidLogFormatConstant                   = "invalid"
	testLogMessageConstant                         = "logger_factory_test_message"
	testLogFileNameConstant                        = "diagnostics.log"
	testFirstFileLogMessageConstant                = "first_file_logger_message"
	testSecondFileLogMessageConstant               = "second_file_logger_message"
	testConsoleTimestampLayoutConstant             = "2006-01-02T15:04:05.000Z0700"
	testCapitalInfoLevelConstant                   = "INFO"
	testStructuredMessageFieldConstant             = "msg"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name                string
		requestedLogLevel   utils.LogLevel
		requestedLogFormat  utils.LogFormat
		expectError         bool
		expectStructuredLog bool
	}{
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelDebug, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelDebug,
			requestedLogFormat:  utils.LogFormatStructured,
			expectError:         false,
			expectStructuredLog: true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatStructured),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatStructured,
			expectError:         false,
			expectStructuredLog: true,
		},
		{
			name:                fmt.Sprintf(testLoggerFactoryCaseSupportedFormatConstant, utils.LogLevelInfo, utils.LogFormatConsole),
			requestedLogLevel:   utils.LogLevelInfo,
			requestedLogFormat:  utils.LogFormatConsole,
			expectError:         false,
			expectStructuredLog: false,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedLevelConstant,
			requestedLogLevel:  utils.LogLevel(testInvalidLogLevelConstant),
			requestedLogFormat: utils.LogFormatStructured,
			expectError:        true,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedFormatConstant,
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat(testInvalidLogFormatConstant),
			expectError:        true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerFactorySubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			loggerFactory := utils.NewLoggerFactory()

			pipeReader, pipeWriter, pipeError := os.Pipe()
			require.NoError(testInstance, pipeError)

			originalStderr := os.Stderr
			os.Stderr = pipeWriter

			logger, creationError := loggerFactory.CreateLogger(testCase.requestedLogLevel, testCase.requestedLogFormat)

			os.Stderr = originalStderr

			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)

				require.NoError(testInstance, pipeWriter.Close())
				require.NoError(testInstance, pipeReader.Close())
				return
			}

			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)

			logger.Info(testLogMessageConstant)
			syncError := logger.Sync()
			if syncError != nil {
				require.True(testInstance, errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL))
			}

			require.NoError(testInstance, pipeWriter.Close())

			capturedOutput, readError := io.ReadAll(pipeReader)
			require.NoError(testInstance, readError)
			require.NoError(testInstance, pipeReader.Close())

			trimmedOutput := bytes.TrimSpace(capturedOutput)
			require.NotEmpty(testInstance, trimmedOutput)
			require.Contains(testInstance, string(trimmedOutput), testLogMessageConstant)

			isJSONLog := json.Valid(trimmedOutput)
			if testCase.expectStructuredLog {
				require.True(testInstance, isJSONLog)
			} else {
				require.False(testInstance, isJSONLog)
			}
		})
	}
}

func TestLoggerFactoryCreateFileLoggerWritesConsoleLines(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()
	logFilePath := filepath.Join(testInstance.TempDir(), testLogFileNameConstant)

	logger, creationError := loggerFactory.CreateFileLogger(utils.LogLevelInfo, utils.LogFormatConsole, logFilePath)
	require.NoError(testInstance, creationError)
	require.NotNil(testInstance, logger)

	logger.Info(testLogMessageConstant)
	require.NoError(testInstance, logger.Sync())

	logContents, readError := os.ReadFile(logFilePath)
	require.NoError(testInstance, readError)

	logLines := strings.Split(strings.TrimSpace(string(logContents)), "\n")
	require.Len(testInstance, logLines, 1)

	lineFields := strings.Fields(logLines[0])
	require.Len(testInstance, lineFields, 3)

	_, timestampParseError := time.Parse(testConsoleTimestampLayoutConstant, lineFields[0])
	require.NoError(testInstance, timestampParseError)
	require.Equal(testInstance, testCapitalInfoLevelConstant, lineFields[1])
	require.Equal(testInstance, testLogMessageConstant, lineFields[2])
}

func TestLoggerFactoryCreateFileLoggerWritesStructuredLines(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()
	logFilePath := filepath.Join(testInstance.TempDir(), testLogFileNameConstant)

	logger, creationError := loggerFactory.CreateFileLogger(utils.LogLevelInfo, utils.LogFormatStructured, logFilePath)
	require.NoError(testInstance, creationError)

	logger.Info(testLogMessageConstant)
	require.NoError(testInstance, logger.Sync())

	logContents, readError := os.ReadFile(logFilePath)
	require.NoError(testInstance, readError)

	trimmedContents := bytes.TrimSpace(logContents)
	require.True(testInstance, json.Valid(trimmedContents))

	var decodedLogEntry map[string]any
	require.NoError(testInstance, json.Unmarshal(trimmedContents, &decodedLogEntry))
	require.Equal(testInstance, testLogMessageConstant, decodedLogEntry[testStructuredMessageFieldConstant])
}

func TestLoggerFactoryCreateFileLoggerAppendsAcrossInstances(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()
	logFilePath := filepath.Join(testInstance.TempDir(), testLogFileNameConstant)

	firstLogger, firstCreationError := loggerFactory.CreateFileLogger(utils.LogLevelInfo, utils.LogFormatConsole, logFilePath)
	require.NoError(testInstance, firstCreationError)
	firstLogger.Info(testFirstFileLogMessageConstant)
	require.NoError(testInstance, firstLogger.Sync())

	secondLogger, secondCreationError := loggerFactory.CreateFileLogger(utils.LogLevelInfo, utils.LogFormatConsole, logFilePath)
	require.NoError(testInstance, secondCreationError)
	secondLogger.Info(testSecondFileLogMessageConstant)
	require.NoError(testInstance, secondLogger.Sync())

	logContents, readError := os.ReadFile(logFilePath)
	require.NoError(testInstance, readError)
	require.Contains(testInstance, string(logContents), testFirstFileLogMessageConstant)
	require.Contains(testInstance, string(logContents), testSecondFileLogMessageConstant)
}

func TestLoggerFactoryCreateFileLoggerFiltersBelowConfiguredLevel(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()
	logFilePath := filepath.Join(testInstance.TempDir(), testLogFileNameConstant)

	logger, creationError := loggerFactory.CreateFileLogger(utils.LogLevelWarn, utils.LogFormatConsole, logFilePath)
	require.NoError(testInstance, creationError)

	logger.Info(testLogMessageConstant)
	require.NoError(testInstance, logger.Sync())

	logContents, readError := os.ReadFile(logFilePath)
	require.NoError(testInstance, readError)
	require.Empty(testInstance, strings.TrimSpace(string(logContents)))
}

func TestLoggerFactoryCreateFileLoggerValidation(testInstance *testing.T) {
	testCases := []struct {
		name               string
		requestedLogLevel  utils.LogLevel
		requestedLogFormat utils.LogFormat
		logFilePath        func(testing.TB) string
		expectedError      error
	}{
		{
			name:               "missing_log_file_path",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatConsole,
			logFilePath: func(testing.TB) string {
				return "   "
			},
			expectedError: utils.ErrLogFilePathMissing,
		},
		{
			name:               testLoggerFactoryCaseUnsupportedLevelConstant,
			requestedLogLevel:  utils.LogLevel(testInvalidLogLevelConstant),
			requestedLogFormat: utils.LogFormatConsole,
			logFilePath: func(testingInstance testing.TB) string {
				return filepath.Join(testingInstance.TempDir(), testLogFileNameConstant)
			},
		},
		{
			name:               testLoggerFactoryCaseUnsupportedFormatConstant,
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormat(testInvalidLogFormatConstant),
			logFilePath: func(testingInstance testing.TB) string {
				return filepath.Join(testingInstance.TempDir(), testLogFileNameConstant)
			},
		},
		{
			name:               "unwritable_log_file_directory",
			requestedLogLevel:  utils.LogLevelInfo,
			requestedLogFormat: utils.LogFormatConsole,
			logFilePath: func(testingInstance testing.TB) string {
				return filepath.Join(testingInstance.TempDir(), "missing", testLogFileNameConstant)
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(testLoggerFactorySubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			loggerFactory := utils.NewLoggerFactory()

			logger, creationError := loggerFactory.CreateFileLogger(testCase.requestedLogLevel, testCase.requestedLogFormat, testCase.logFilePath(testInstance))
			require.Error(testInstance, creationError)
			require.Nil(testInstance, logger)

			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, creationError, testCase.expectedError)
			}
		})
	}
}
