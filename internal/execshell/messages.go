package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	invocationStartTemplateConstant            = "Running %s"
	invocationSuccessTemplateConstant          = "Completed %s"
	invocationFailureTemplateConstant          = "%s failed with exit code %d%s"
	invocationExecutionFailureTemplateConstant = "%s failed: %s"
	invocationDirectoryTemplateConstant        = "%s (in %s)"
	standardErrorDetailTemplateConstant        = ": %s"
	argumentSeparatorConstant                  = " "
	unknownFailureMessageConstant              = "unknown error"
	currentDirectoryLabelConstant              = "current directory"
	flagPrefixConstant                         = "-"
)

const (
	subversionInfoSubcommandNameConstant = "info"
)

const (
	subversionInfoStartTemplateConstant            = "Reading working copy information for %s"
	subversionInfoSuccessTemplateConstant          = "Read working copy information for %s"
	subversionInfoFailureTemplateConstant          = "Failed to read working copy information for %s (exit code %d%s)"
	subversionInfoExecutionFailureTemplateConstant = "Unable to read working copy information for %s: %s"
)

// subcommandTemplates holds one format string per lifecycle stage. Each receives the command target;
// the failure templates additionally receive the exit code and standard error detail, or the failure text.
type subcommandTemplates struct {
	started          string
	succeeded        string
	failed           string
	executionFailure string
}

var subversionSubcommandTemplates = map[string]subcommandTemplates{
	subversionInfoSubcommandNameConstant: {
		started:          subversionInfoStartTemplateConstant,
		succeeded:        subversionInfoSuccessTemplateConstant,
		failed:           subversionInfoFailureTemplateConstant,
		executionFailure: subversionInfoExecutionFailureTemplateConstant,
	},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.render(command, messageStageStart, ExecutionResult{}, nil)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.render(command, messageStageSuccess, ExecutionResult{}, nil)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.render(command, messageStageFailure, result, nil)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.render(command, messageStageExecutionFailure, ExecutionResult{}, failure)
}

func (formatter CommandMessageFormatter) render(command ShellCommand, stage messageStage, result ExecutionResult, failure error) string {
	if templates, known := formatter.lookupTemplates(command); known {
		return formatter.renderWithTemplates(templates, formatter.describeTarget(command), stage, result, failure)
	}

	invocationTemplates := subcommandTemplates{
		started:          invocationStartTemplateConstant,
		succeeded:        invocationSuccessTemplateConstant,
		failed:           invocationFailureTemplateConstant,
		executionFailure: invocationExecutionFailureTemplateConstant,
	}
	return formatter.renderWithTemplates(invocationTemplates, formatter.describeInvocation(command), stage, result, failure)
}

func (formatter CommandMessageFormatter) lookupTemplates(command ShellCommand) (subcommandTemplates, bool) {
	if command.Name != CommandSubversion || len(command.Details.Arguments) == 0 {
		return subcommandTemplates{}, false
	}
	templates, known := subversionSubcommandTemplates[strings.TrimSpace(command.Details.Arguments[0])]
	return templates, known
}

func (formatter CommandMessageFormatter) renderWithTemplates(templates subcommandTemplates, subject string, stage messageStage, result ExecutionResult, failure error) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.started, subject)
	case messageStageSuccess:
		return fmt.Sprintf(templates.succeeded, subject)
	case messageStageFailure:
		return fmt.Sprintf(templates.failed, subject, result.ExitCode, standardErrorDetail(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, subject, failureText(failure))
	default:
		return ""
	}
}

// describeTarget returns the first positional argument after the subcommand, falling back to the working directory.
func (formatter CommandMessageFormatter) describeTarget(command ShellCommand) string {
	for _, argument := range command.Details.Arguments[1:] {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		return trimmedArgument
	}

	if workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(workingDirectory) > 0 {
		return workingDirectory
	}
	return currentDirectoryLabelConstant
}

func (formatter CommandMessageFormatter) describeInvocation(command ShellCommand) string {
	invocation := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), argumentSeparatorConstant)
	if workingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(workingDirectory) > 0 {
		return fmt.Sprintf(invocationDirectoryTemplateConstant, invocation, workingDirectory)
	}
	return invocation
}

func standardErrorDetail(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorDetailTemplateConstant, trimmedStandardError)
}

func failureText(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}
