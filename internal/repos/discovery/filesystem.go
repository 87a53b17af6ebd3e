package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const (
	gitMetadataEntryNameConstant       = ".git"
	currentDirectoryRelativeConstant   = "."
	immediateChildDepthConstant        = 1
	traversalSkippedLogMessageConstant = "skipping unreadable path"
	pathLogFieldNameConstant           = "path"
)

// FilesystemRepositoryDiscoverer locates git repositories on disk. Recursion
// policy is fixed at construction: a non-recursive discoverer only considers
// each root and its immediate children.
type FilesystemRepositoryDiscoverer struct {
	logger    *zap.Logger
	recursive bool
}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer(logger *zap.Logger, recursive bool) *FilesystemRepositoryDiscoverer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilesystemRepositoryDiscoverer{logger: logger, recursive: recursive}
}

// DiscoverRepositories walks the provided roots and returns directories marked
// by a .git entry. Traversal never descends into a discovered repository, and
// unreadable paths are logged and skipped rather than aborting the walk.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	seen := make(map[string]struct{})
	var repositories []string

	for _, root := range roots {
		walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				discoverer.logger.Warn(traversalSkippedLogMessageConstant, zap.String(pathLogFieldNameConstant, path), zap.Error(walkError))
				return nil
			}

			if !directoryEntry.IsDir() {
				return nil
			}

			if directoryEntry.Name() == gitMetadataEntryNameConstant {
				return fs.SkipDir
			}

			if hasGitMetadataEntry(path) {
				if _, alreadySeen := seen[path]; !alreadySeen {
					seen[path] = struct{}{}
					repositories = append(repositories, path)
				}
				return fs.SkipDir
			}

			if !discoverer.recursive && directoryDepth(root, path) >= immediateChildDepthConstant {
				return fs.SkipDir
			}
			return nil
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.Strings(repositories)
	return repositories, nil
}

// hasGitMetadataEntry reports whether the directory carries a .git marker. The
// marker may be a directory or, for linked work trees, a plain file.
func hasGitMetadataEntry(directoryPath string) bool {
	_, statError := os.Lstat(filepath.Join(directoryPath, gitMetadataEntryNameConstant))
	return statError == nil
}

func directoryDepth(root string, path string) int {
	relativePath, relativeError := filepath.Rel(root, path)
	if relativeError != nil || relativePath == currentDirectoryRelativeConstant {
		return 0
	}
	return strings.Count(relativePath, string(filepath.Separator)) + 1
}
