package status

import (
	"context"
	"io/fs"
)

// RepositoryDiscoverer finds git repositories rooted under the provided paths.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string) ([]string, error)
}

// RepositoryClassifier determines the status verdict for a discovered repository.
type RepositoryClassifier interface {
	Classify(executionContext context.Context, repositoryPath string) RepositoryStatus
}

// FileSystem provides the filesystem operations required by the scan service.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
}
