package status

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/repostatus/internal/repos/shared"
)

const detachedHeadBranchSentinelConstant = "HEAD"

// ErrRepositoryInspectorNotConfigured indicates the classifier requires a repository inspector.
var ErrRepositoryInspectorNotConfigured = errors.New("repository inspector not configured")

// Classifier derives exactly one status category per repository from inspector queries.
type Classifier struct {
	inspector shared.GitRepositoryInspector
}

// NewClassifier constructs a Classifier backed by the provided inspector.
func NewClassifier(inspector shared.GitRepositoryInspector) (*Classifier, error) {
	if inspector == nil {
		return nil, ErrRepositoryInspectorNotConfigured
	}
	return &Classifier{inspector: inspector}, nil
}

// Classify runs the fixed decision sequence and returns the repository's verdict.
// Earlier checks short-circuit later ones, so a dirty detached checkout reports
// detached_head and a worktree with both tracked and untracked changes reports
// uncommitted. Repositories whose probes fail outright fall through to
// no_upstream via the inspector's conservative zero values.
func (classifier *Classifier) Classify(executionContext context.Context, repositoryPath string) RepositoryStatus {
	verdict := RepositoryStatus{Path: repositoryPath, Category: StatusCategoryClean}

	if classifier.inspector.IsBareRepository(executionContext, repositoryPath) {
		verdict.Category = StatusCategoryBare
		return verdict
	}

	branchName := classifier.inspector.CurrentBranchName(executionContext, repositoryPath)
	if branchName == detachedHeadBranchSentinelConstant {
		verdict.Category = StatusCategoryDetachedHead
		return verdict
	}

	worktreeChanges := classifier.inspector.DescribeWorktreeChanges(executionContext, repositoryPath)
	if worktreeChanges.HasTrackedChanges {
		verdict.Category = StatusCategoryUncommitted
		return verdict
	}
	if worktreeChanges.HasUntrackedFiles {
		verdict.Category = StatusCategoryUntracked
		return verdict
	}

	upstreamBranch := classifier.inspector.UpstreamBranchName(executionContext, repositoryPath, branchName)
	if len(strings.TrimSpace(upstreamBranch)) == 0 {
		verdict.Category = StatusCategoryNoUpstream
		return verdict
	}

	counts := classifier.inspector.CountAheadBehind(executionContext, repositoryPath, upstreamBranch)
	verdict.Counts = counts
	switch {
	case counts.Ahead > 0 && counts.Behind > 0:
		verdict.Category = StatusCategoryDiverged
	case counts.Ahead > 0:
		verdict.Category = StatusCategoryUnpushed
		verdict.UnpushedAuthors = classifier.inspector.ListUnpushedCommitAuthors(executionContext, repositoryPath, upstreamBranch)
	case counts.Behind > 0:
		verdict.Category = StatusCategoryBehind
	}

	return verdict
}
