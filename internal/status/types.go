package status

import "github.com/temirov/repostatus/internal/repos/shared"

// StatusCategory identifies the synchronization state of a repository.
type StatusCategory string

// Repository status categories in classification priority order.
const (
	StatusCategoryBare         StatusCategory = "bare"
	StatusCategoryDetachedHead StatusCategory = "detached_head"
	StatusCategoryUncommitted  StatusCategory = "uncommitted"
	StatusCategoryUntracked    StatusCategory = "untracked"
	StatusCategoryNoUpstream   StatusCategory = "no_upstream"
	StatusCategoryDiverged     StatusCategory = "diverged"
	StatusCategoryUnpushed     StatusCategory = "unpushed_ahead"
	StatusCategoryBehind       StatusCategory = "behind"
	StatusCategoryClean        StatusCategory = "clean"
)

// RepositoryStatus captures the classification verdict for a single repository.
type RepositoryStatus struct {
	Path            string
	Category        StatusCategory
	Counts          shared.AheadBehindCounts
	UnpushedAuthors []string
}

// ScanResult aggregates classification verdicts by category. Divergence counts
// and unpushed author sets are keyed by repository path and populated only for
// repositories filed under the matching category.
type ScanResult struct {
	CategorizedRepositories map[StatusCategory][]string
	DivergedCounts          map[string]shared.AheadBehindCounts
	UnpushedAuthors         map[string][]string
}

// NewScanResult returns an empty ScanResult ready for aggregation.
func NewScanResult() ScanResult {
	return ScanResult{
		CategorizedRepositories: make(map[StatusCategory][]string),
		DivergedCounts:          make(map[string]shared.AheadBehindCounts),
		UnpushedAuthors:         make(map[string][]string),
	}
}

// Record files a classification verdict under its category.
func (result ScanResult) Record(repositoryStatus RepositoryStatus) {
	result.CategorizedRepositories[repositoryStatus.Category] = append(result.CategorizedRepositories[repositoryStatus.Category], repositoryStatus.Path)

	switch repositoryStatus.Category {
	case StatusCategoryDiverged:
		result.DivergedCounts[repositoryStatus.Path] = repositoryStatus.Counts
	case StatusCategoryUnpushed:
		result.UnpushedAuthors[repositoryStatus.Path] = repositoryStatus.UnpushedAuthors
	}
}

// CommandOptions captures the configurable parameters for a status scan.
type CommandOptions struct {
	Roots     []string
	Recursive bool
	SkipClean bool
	Color     bool
}
