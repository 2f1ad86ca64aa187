package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubversionInfoMessages(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandSubversion,
		Details: CommandDetails{
			Arguments:        []string{"info", "--xml", "--non-interactive", "/workspace/wc"},
			WorkingDirectory: "/workspace/wc",
		},
	}

	require.Equal(testInstance, "Reading working copy information for /workspace/wc", formatter.BuildStartedMessage(command))
	require.Equal(testInstance, "Read working copy information for /workspace/wc", formatter.BuildSuccessMessage(command))
	require.Equal(testInstance,
		"Failed to read working copy information for /workspace/wc (exit code 1: svn: E155007: not a working copy)",
		formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "svn: E155007: not a working copy\n"}),
	)
	require.Equal(testInstance,
		"Unable to read working copy information for /workspace/wc: executable file not found",
		formatter.BuildExecutionFailureMessage(command, errors.New("executable file not found")),
	)
}

func TestSubversionInfoMessageFallsBackToWorkingDirectory(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandSubversion,
		Details: CommandDetails{Arguments: []string{"info", "--xml"}},
	}

	require.Equal(testInstance, "Reading working copy information for current directory", formatter.BuildStartedMessage(command))
}

func TestGenericMessagesIncludeArgumentsAndDirectory(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandSubversion,
		Details: CommandDetails{
			Arguments:        []string{"status", "-q"},
			WorkingDirectory: "/workspace/wc",
		},
	}

	require.Equal(testInstance, "Running svn status -q (in /workspace/wc)", formatter.BuildStartedMessage(command))
	require.Equal(testInstance, "svn status -q (in /workspace/wc) failed with exit code 2", formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 2}))
	require.Equal(testInstance, "svn status -q (in /workspace/wc) failed: unknown error", formatter.BuildExecutionFailureMessage(command, nil))
}
