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
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant  = "rev-parse"
	gitRevListSubcommandNameConstant   = "rev-list"
	gitLogSubcommandNameConstant       = "log"
	gitStatusSubcommandNameConstant    = "status"
	gitBareRepositoryFlagConstant      = "--is-bare-repository"
	gitAbbrevRefFlagConstant           = "--abbrev-ref"
	gitCountFlagConstant               = "--count"
	gitFormatFlagPrefixConstant        = "--format="
	gitUpstreamReferenceSuffixConstant = "@{upstream}"
	gitHeadReferenceConstant           = "HEAD"
	gitAheadRangeSuffixConstant        = "..HEAD"
	gitBehindRangePrefixConstant       = "HEAD.."
	gitTrueOutputConstant              = "true"
)

const (
	gitBareCheckStartTemplateConstant                     = "Checking whether %s is a bare repository"
	gitBareCheckBareSuccessTemplateConstant               = "%s is a bare repository"
	gitBareCheckWorktreeSuccessTemplateConstant           = "%s has a working tree"
	gitBareCheckFailureTemplateConstant                   = "Failed to check bare status for %s (exit code %d%s)"
	gitBareCheckExecutionFailureTemplateConstant          = "Unable to check bare status for %s: %s"
	gitCurrentBranchStartTemplateConstant                 = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant               = "Current branch in %s is %s"
	gitCurrentBranchDetachedSuccessTemplateConstant       = "%s is in a detached HEAD state"
	gitCurrentBranchFailureTemplateConstant               = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant      = "Unable to identify current branch in %s: %s"
	gitUpstreamBranchStartTemplateConstant                = "Checking upstream branch configuration in %s"
	gitUpstreamBranchSuccessTemplateConstant              = "Upstream branch in %s is %s"
	gitUpstreamBranchMissingSuccessTemplateConstant       = "No upstream branch configured in %s"
	gitUpstreamBranchFailureTemplateConstant              = "Failed to check upstream branch configuration in %s (exit code %d%s)"
	gitUpstreamBranchExecutionFailureTemplateConstant     = "Unable to check upstream branch configuration in %s: %s"
	gitStatusStartTemplateConstant                        = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant                      = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant                      = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant             = "Unable to review working tree status in %s: %s"
	gitAheadCountStartTemplateConstant                    = "Counting commits ahead of upstream in %s"
	gitAheadCountSuccessTemplateConstant                  = "Counted %s commits ahead of upstream in %s"
	gitAheadCountFailureTemplateConstant                  = "Failed to count commits ahead of upstream in %s (exit code %d%s)"
	gitAheadCountExecutionFailureTemplateConstant         = "Unable to count commits ahead of upstream in %s: %s"
	gitBehindCountStartTemplateConstant                   = "Counting commits behind upstream in %s"
	gitBehindCountSuccessTemplateConstant                 = "Counted %s commits behind upstream in %s"
	gitBehindCountFailureTemplateConstant                 = "Failed to count commits behind upstream in %s (exit code %d%s)"
	gitBehindCountExecutionFailureTemplateConstant        = "Unable to count commits behind upstream in %s: %s"
	gitRevisionRangeCountStartTemplateConstant            = "Counting commits in range %s in %s"
	gitRevisionRangeCountSuccessTemplateConstant          = "Counted %s commits in range %s in %s"
	gitRevisionRangeCountFailureTemplateConstant          = "Failed to count commits in range %s in %s (exit code %d%s)"
	gitRevisionRangeCountExecutionFailureTemplateConstant = "Unable to count commits in range %s in %s: %s"
	gitUnpushedAuthorsStartTemplateConstant               = "Collecting unpushed commit authors in %s"
	gitUnpushedAuthorsSuccessTemplateConstant             = "Collected unpushed commit authors in %s"
	gitUnpushedAuthorsFailureTemplateConstant             = "Failed to collect unpushed commit authors in %s (exit code %d%s)"
	gitUnpushedAuthorsExecutionFailureTemplateConstant    = "Unable to collect unpushed commit authors in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a
// zero exit code, embedding details from the captured result.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGit {
		return formatter.describeGitMessage(command, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		return formatter.describeGitStatusMessage(command, result, failure, stage)
	case gitRevListSubcommandNameConstant:
		return formatter.describeGitRevListMessage(command, result, failure, stage)
	case gitLogSubcommandNameConstant:
		return formatter.describeGitLogMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitBareRepositoryFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitBareCheckStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			trimmed := strings.TrimSpace(result.StandardOutput)
			if strings.EqualFold(trimmed, gitTrueOutputConstant) {
				return fmt.Sprintf(gitBareCheckBareSuccessTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitBareCheckWorktreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitBareCheckFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitBareCheckExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbbrevRefFlagConstant) {
		if containsArgumentWithSuffix(arguments, gitUpstreamReferenceSuffixConstant) {
			switch stage {
			case messageStageStart:
				return fmt.Sprintf(gitUpstreamBranchStartTemplateConstant, workingDirectory)
			case messageStageSuccess:
				trimmed := strings.TrimSpace(result.StandardOutput)
				if len(trimmed) == 0 {
					return fmt.Sprintf(gitUpstreamBranchMissingSuccessTemplateConstant, workingDirectory)
				}
				return fmt.Sprintf(gitUpstreamBranchSuccessTemplateConstant, workingDirectory, trimmed)
			case messageStageFailure:
				return fmt.Sprintf(gitUpstreamBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
			case messageStageExecutionFailure:
				return fmt.Sprintf(gitUpstreamBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
			}
		}

		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			trimmed := strings.TrimSpace(result.StandardOutput)
			if strings.EqualFold(trimmed, gitHeadReferenceConstant) || len(trimmed) == 0 {
				return fmt.Sprintf(gitCurrentBranchDetachedSuccessTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, trimmed)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCurrentBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitStatusMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitStatusStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitStatusSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitStatusFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitStatusExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevListMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, gitCountFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	revisionRange := formatter.resolveRevisionRange(arguments)
	countValue := formatter.ensureValue(strings.TrimSpace(result.StandardOutput))

	switch {
	case strings.HasSuffix(revisionRange, gitAheadRangeSuffixConstant) && !strings.HasPrefix(revisionRange, gitBehindRangePrefixConstant):
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitAheadCountStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitAheadCountSuccessTemplateConstant, countValue, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitAheadCountFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitAheadCountExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	case strings.HasPrefix(revisionRange, gitBehindRangePrefixConstant):
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitBehindCountStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitBehindCountSuccessTemplateConstant, countValue, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitBehindCountFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitBehindCountExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRevisionRangeCountStartTemplateConstant, revisionRange, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRevisionRangeCountSuccessTemplateConstant, countValue, revisionRange, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRevisionRangeCountFailureTemplateConstant, revisionRange, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRevisionRangeCountExecutionFailureTemplateConstant, revisionRange, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitLogMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgumentWithPrefix(arguments, gitFormatFlagPrefixConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitUnpushedAuthorsStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitUnpushedAuthorsSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitUnpushedAuthorsFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitUnpushedAuthorsExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) resolveRevisionRange(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		trimmed := strings.TrimSpace(arguments[index])
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return fallbackUnknownValueLabelConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func containsArgumentWithSuffix(arguments []string, suffix string) bool {
	for _, argument := range arguments {
		if strings.HasSuffix(strings.TrimSpace(argument), suffix) {
			return true
		}
	}
	return false
}

func containsArgumentWithPrefix(arguments []string, prefix string) bool {
	for _, argument := range arguments {
		if strings.HasPrefix(strings.TrimSpace(argument), prefix) {
			return true
		}
	}
	return false
}
