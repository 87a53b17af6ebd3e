package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/temirov/repostatus/internal/execshell"
	"github.com/temirov/repostatus/internal/repos/shared"
)

const (
	gitRevParseSubcommandConstant     = "rev-parse"
	gitRevListSubcommandConstant      = "rev-list"
	gitLogSubcommandConstant          = "log"
	gitStatusSubcommandConstant       = "status"
	gitBareRepositoryFlagConstant     = "--is-bare-repository"
	gitAbbrevRefFlagConstant          = "--abbrev-ref"
	gitCountFlagConstant              = "--count"
	gitPorcelainFlagConstant          = "--porcelain"
	gitAuthorFormatFlagConstant       = "--format=%an <%ae>"
	gitHeadReferenceConstant          = "HEAD"
	upstreamReferenceTemplateConstant = "%s@{upstream}"
	aheadRangeTemplateConstant        = "%s..HEAD"
	behindRangeTemplateConstant       = "HEAD..%s"
	untrackedEntryPrefixConstant      = "??"
	bareRepositoryOutputConstant      = "true"
	fatalErrorIndicatorConstant       = "fatal"
	launchFailureExitCodeConstant     = 1
	outputLineSeparatorConstant       = "\n"
)

// ErrGitExecutorNotConfigured reports a missing executor during inspector construction.
var ErrGitExecutorNotConfigured = errors.New("repository inspector requires a git executor")

// commandOutcome normalizes an executed git command into trimmed output streams
// and an exit code. Commands that never launched carry exit code 1 and the
// failure description on standard error.
type commandOutcome struct {
	standardOutput string
	standardError  string
	exitCode       int
}

// RepositoryInspector answers read-only questions about git working copies by
// shelling out to the git binary. All output parsing lives here.
type RepositoryInspector struct {
	gitExecutor shared.GitExecutor
}

// NewRepositoryInspector constructs an inspector backed by the supplied executor.
func NewRepositoryInspector(gitExecutor shared.GitExecutor) (*RepositoryInspector, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryInspector{gitExecutor: gitExecutor}, nil
}

// IsBareRepository reports whether the repository has no working tree. Only a
// literal "true" answer counts; the exit code is ignored.
func (inspector *RepositoryInspector) IsBareRepository(executionContext context.Context, repositoryPath string) bool {
	outcome := inspector.runGit(executionContext, repositoryPath, bareRepositoryArguments())
	return strings.EqualFold(outcome.standardOutput, bareRepositoryOutputConstant)
}

// CurrentBranchName returns the abbreviated ref of HEAD. The sentinel "HEAD"
// identifies a detached checkout.
func (inspector *RepositoryInspector) CurrentBranchName(executionContext context.Context, repositoryPath string) string {
	outcome := inspector.runGit(executionContext, repositoryPath, currentBranchArguments())
	return outcome.standardOutput
}

// DescribeWorktreeChanges summarizes porcelain status output into tracked and
// untracked change indicators using a single git invocation.
func (inspector *RepositoryInspector) DescribeWorktreeChanges(executionContext context.Context, repositoryPath string) shared.WorktreeChanges {
	outcome := inspector.runGit(executionContext, repositoryPath, worktreeStatusArguments())

	changes := shared.WorktreeChanges{}
	for _, statusLine := range strings.Split(outcome.standardOutput, outputLineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(statusLine)
		if len(trimmedLine) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedLine, untrackedEntryPrefixConstant) {
			changes.HasUntrackedFiles = true
			continue
		}
		changes.HasTrackedChanges = true
	}
	return changes
}

// UpstreamBranchName resolves the remote-tracking branch configured for the
// named branch. It returns an empty string when no upstream is configured,
// including when git signals the absence through a fatal diagnostic.
func (inspector *RepositoryInspector) UpstreamBranchName(executionContext context.Context, repositoryPath string, branchName string) string {
	outcome := inspector.runGit(executionContext, repositoryPath, upstreamBranchArguments(branchName))
	if outcome.exitCode != 0 {
		return ""
	}
	if strings.Contains(strings.ToLower(outcome.standardError), fatalErrorIndicatorConstant) {
		return ""
	}
	return outcome.standardOutput
}

// CountAheadBehind measures how many commits the repository is ahead of and
// behind the upstream branch. Each count parses independently and defaults to
// zero when git reports nothing usable.
func (inspector *RepositoryInspector) CountAheadBehind(executionContext context.Context, repositoryPath string, upstreamBranch string) shared.AheadBehindCounts {
	aheadOutcome := inspector.runGit(executionContext, repositoryPath, aheadCountArguments(upstreamBranch))
	behindOutcome := inspector.runGit(executionContext, repositoryPath, behindCountArguments(upstreamBranch))
	return shared.AheadBehindCounts{
		Ahead:  parseCommitCount(aheadOutcome),
		Behind: parseCommitCount(behindOutcome),
	}
}

// ListUnpushedCommitAuthors returns the sorted, de-duplicated author identities
// of commits that exist locally but not on the upstream branch.
func (inspector *RepositoryInspector) ListUnpushedCommitAuthors(executionContext context.Context, repositoryPath string, upstreamBranch string) []string {
	outcome := inspector.runGit(executionContext, repositoryPath, unpushedAuthorsArguments(upstreamBranch))
	if outcome.exitCode != 0 || len(outcome.standardOutput) == 0 {
		return nil
	}

	seenAuthors := make(map[string]struct{})
	var authors []string
	for _, authorLine := range strings.Split(outcome.standardOutput, outputLineSeparatorConstant) {
		trimmedAuthor := strings.TrimSpace(authorLine)
		if len(trimmedAuthor) == 0 {
			continue
		}
		if _, alreadySeen := seenAuthors[trimmedAuthor]; alreadySeen {
			continue
		}
		seenAuthors[trimmedAuthor] = struct{}{}
		authors = append(authors, trimmedAuthor)
	}
	sort.Strings(authors)
	return authors
}

func (inspector *RepositoryInspector) runGit(executionContext context.Context, repositoryPath string, arguments []string) commandOutcome {
	commandDetails := execshell.CommandDetails{Arguments: arguments, WorkingDirectory: repositoryPath}
	executionResult, executionError := inspector.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError == nil {
		return newCommandOutcome(executionResult)
	}

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) {
		return newCommandOutcome(commandFailure.Result)
	}

	return commandOutcome{
		standardError: strings.TrimSpace(executionError.Error()),
		exitCode:      launchFailureExitCodeConstant,
	}
}

func newCommandOutcome(result execshell.ExecutionResult) commandOutcome {
	return commandOutcome{
		standardOutput: strings.TrimSpace(result.StandardOutput),
		standardError:  strings.TrimSpace(result.StandardError),
		exitCode:       result.ExitCode,
	}
}

func parseCommitCount(outcome commandOutcome) int {
	if outcome.exitCode != 0 {
		return 0
	}
	commitCount, parseError := strconv.Atoi(outcome.standardOutput)
	if parseError != nil {
		return 0
	}
	return commitCount
}

func bareRepositoryArguments() []string {
	return []string{gitRevParseSubcommandConstant, gitBareRepositoryFlagConstant}
}

func currentBranchArguments() []string {
	return []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant}
}

func upstreamBranchArguments(branchName string) []string {
	upstreamReference := fmt.Sprintf(upstreamReferenceTemplateConstant, branchName)
	return []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, upstreamReference}
}

func worktreeStatusArguments() []string {
	return []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant}
}

func aheadCountArguments(upstreamBranch string) []string {
	return []string{gitRevListSubcommandConstant, gitCountFlagConstant, fmt.Sprintf(aheadRangeTemplateConstant, upstreamBranch)}
}

func behindCountArguments(upstreamBranch string) []string {
	return []string{gitRevListSubcommandConstant, gitCountFlagConstant, fmt.Sprintf(behindRangeTemplateConstant, upstreamBranch)}
}

func unpushedAuthorsArguments(upstreamBranch string) []string {
	return []string{gitLogSubcommandConstant, gitAuthorFormatFlagConstant, fmt.Sprintf(aheadRangeTemplateConstant, upstreamBranch)}
}
