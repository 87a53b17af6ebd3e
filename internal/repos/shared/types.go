package shared

import (
	"context"

	"github.com/temirov/repostatus/internal/execshell"
)

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// WorktreeChanges summarizes the porcelain status of a working tree.
type WorktreeChanges struct {
	HasTrackedChanges bool
	HasUntrackedFiles bool
}

// AheadBehindCounts captures commit counts relative to an upstream branch.
type AheadBehindCounts struct {
	Ahead  int
	Behind int
}

// GitRepositoryInspector exposes the read-only git queries used to classify
// repositories. Queries never fail: command failures surface as conservative
// zero values so a scan always completes.
type GitRepositoryInspector interface {
	IsBareRepository(executionContext context.Context, repositoryPath string) bool
	CurrentBranchName(executionContext context.Context, repositoryPath string) string
	DescribeWorktreeChanges(executionContext context.Context, repositoryPath string) WorktreeChanges
	UpstreamBranchName(executionContext context.Context, repositoryPath string, branchName string) string
	CountAheadBehind(executionContext context.Context, repositoryPath string, upstreamBranch string) AheadBehindCounts
	ListUnpushedCommitAuthors(executionContext context.Context, repositoryPath string, upstreamBranch string) []string
}

// RepositoryDiscoverer locates git repositories beneath configured roots.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string) ([]string, error)
}
