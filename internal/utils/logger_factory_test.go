package utils_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/starship-svn/internal/utils"
)

const (
	testDiagnosticMessageConstant = "reading working copy information"
	testFailureMessageConstant    = "svn info failed"
)

// captureStandardError builds a logger while os.Stderr points at a pipe, runs emit, and returns what was written.
func captureStandardError(testInstance *testing.T, logLevel utils.LogLevel, logFormat utils.LogFormat, emit func(logger *zap.Logger)) string {
	testInstance.Helper()

	pipeReader, pipeWriter, pipeError := os.Pipe()
	require.NoError(testInstance, pipeError)

	originalStandardError := os.Stderr
	os.Stderr = pipeWriter
	logger, creationError := utils.NewLoggerFactory().CreateLogger(logLevel, logFormat)
	os.Stderr = originalStandardError
	require.NoError(testInstance, creationError)

	emit(logger)
	if syncError := logger.Sync(); syncError != nil {
		require.True(testInstance, errors.Is(syncError, syscall.ENOTSUP) || errors.Is(syncError, syscall.EINVAL))
	}
	require.NoError(testInstance, pipeWriter.Close())

	capturedOutput, readError := io.ReadAll(pipeReader)
	require.NoError(testInstance, readError)
	require.NoError(testInstance, pipeReader.Close())
	return string(bytes.TrimSpace(capturedOutput))
}

func TestLoggerFactoryHonorsSeverityThreshold(testInstance *testing.T) {
	testCases := []struct {
		name              string
		logLevel          utils.LogLevel
		expectDiagnostics bool
	}{
		{name: "debug_shows_diagnostics", logLevel: utils.LogLevelDebug, expectDiagnostics: true},
		{name: "warn_hides_diagnostics", logLevel: utils.LogLevelWarn},
		{name: "error_hides_diagnostics", logLevel: utils.LogLevelError},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			capturedOutput := captureStandardError(testInstance, testCase.logLevel, utils.LogFormatStructured, func(logger *zap.Logger) {
				logger.Debug(testDiagnosticMessageConstant)
				logger.Error(testFailureMessageConstant)
			})

			require.Contains(testInstance, capturedOutput, testFailureMessageConstant)
			if testCase.expectDiagnostics {
				require.Contains(testInstance, capturedOutput, testDiagnosticMessageConstant)
			} else {
				require.NotContains(testInstance, capturedOutput, testDiagnosticMessageConstant)
			}
		})
	}
}

func TestLoggerFactoryEncodings(testInstance *testing.T) {
	structuredOutput := captureStandardError(testInstance, utils.LogLevelInfo, utils.LogFormatStructured, func(logger *zap.Logger) {
		logger.Info(testDiagnosticMessageConstant, zap.String("working_directory", "/workspace/wc"))
	})
	var structuredEntry map[string]any
	require.NoError(testInstance, json.Unmarshal([]byte(structuredOutput), &structuredEntry))
	require.Equal(testInstance, testDiagnosticMessageConstant, structuredEntry["msg"])
	require.Equal(testInstance, "/workspace/wc", structuredEntry["working_directory"])

	consoleOutput := captureStandardError(testInstance, utils.LogLevelInfo, utils.LogFormatConsole, func(logger *zap.Logger) {
		logger.Info(testDiagnosticMessageConstant)
	})
	require.False(testInstance, json.Valid([]byte(consoleOutput)))
	require.Contains(testInstance, consoleOutput, "INFO")
	require.True(testInstance, strings.HasSuffix(consoleOutput, testDiagnosticMessageConstant))
}

func TestLoggerFactoryRejectsUnsupportedChoices(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()

	logger, levelError := loggerFactory.CreateLogger(utils.LogLevel("verbose"), utils.LogFormatConsole)
	require.ErrorIs(testInstance, levelError, utils.ErrUnsupportedLogLevel)
	require.Nil(testInstance, logger)

	logger, formatError := loggerFactory.CreateLogger(utils.LogLevelError, utils.LogFormat("xml"))
	require.ErrorIs(testInstance, formatError, utils.ErrUnsupportedLogFormat)
	require.Nil(testInstance, logger)
}

func TestParseLoggerChoices(testInstance *testing.T) {
	testCases := []struct {
		name           string
		levelValue     string
		formatValue    string
		expectedLevel  utils.LogLevel
		expectedFormat utils.LogFormat
		expectedError  error
	}{
		{name: "canonical", levelValue: "debug", formatValue: "structured", expectedLevel: utils.LogLevelDebug, expectedFormat: utils.LogFormatStructured},
		{name: "mixed_case_padded", levelValue: " Warn ", formatValue: "CONSOLE", expectedLevel: utils.LogLevelWarn, expectedFormat: utils.LogFormatConsole},
		{name: "unknown_level", levelValue: "trace", formatValue: "console", expectedError: utils.ErrUnsupportedLogLevel},
		{name: "unknown_format", levelValue: "error", formatValue: "json", expectedError: utils.ErrUnsupportedLogFormat},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			logLevel, levelError := utils.ParseLogLevel(testCase.levelValue)
			logFormat, formatError := utils.ParseLogFormat(testCase.formatValue)

			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, errors.Join(levelError, formatError), testCase.expectedError)
				return
			}
			require.NoError(testInstance, levelError)
			require.NoError(testInstance, formatError)
			require.Equal(testInstance, testCase.expectedLevel, logLevel)
			require.Equal(testInstance, testCase.expectedFormat, logFormat)
		})
	}
}

func TestSupportedLoggerChoicesCreateLoggers(testInstance *testing.T) {
	loggerFactory := utils.NewLoggerFactory()
	for _, levelValue := range utils.SupportedLogLevels() {
		for _, formatValue := range utils.SupportedLogFormats() {
			logLevel, levelError := utils.ParseLogLevel(levelValue)
			require.NoError(testInstance, levelError)
			logFormat, formatError := utils.ParseLogFormat(formatValue)
			require.NoError(testInstance, formatError)

			logger, creationError := loggerFactory.CreateLogger(logLevel, logFormat)
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)
		}
	}
}
