package status

import (
	"context"
	"fmt"
	"io"
	"sort"
)

const (
	rootUnavailableErrorTemplateConstant  = "unable to scan root %s: %w"
	rootNotDirectoryErrorTemplateConstant = "scan root is not a directory: %s"
)

// Service coordinates repository discovery, classification, and reporting.
type Service struct {
	discoverer   RepositoryDiscoverer
	classifier   RepositoryClassifier
	fileSystem   FileSystem
	outputWriter io.Writer
}

// NewService constructs a Service using the provided dependencies.
func NewService(discoverer RepositoryDiscoverer, classifier RepositoryClassifier, fileSystem FileSystem, outputWriter io.Writer) *Service {
	return &Service{
		discoverer:   discoverer,
		classifier:   classifier,
		fileSystem:   fileSystem,
		outputWriter: outputWriter,
	}
}

// Run scans the requested roots and writes the categorized status report.
// Classification findings never fail the run; only unusable roots and
// discovery failures surface as errors.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	roots := options.Roots
	if len(roots) == 0 {
		roots = []string{defaultRootPathConstant}
	}

	if validationError := service.validateRoots(roots); validationError != nil {
		return validationError
	}

	repositories, discoveryError := service.discoverer.DiscoverRepositories(roots)
	if discoveryError != nil {
		return discoveryError
	}

	result := NewScanResult()
	for _, repositoryPath := range deduplicatePaths(repositories) {
		result.Record(service.classifier.Classify(executionContext, repositoryPath))
	}

	renderer := NewReportRenderer(options.Color)
	renderer.Render(service.outputWriter, result, options.SkipClean)

	return nil
}

func (service *Service) validateRoots(roots []string) error {
	for _, rootPath := range roots {
		rootInfo, statError := service.fileSystem.Stat(rootPath)
		if statError != nil {
			return fmt.Errorf(rootUnavailableErrorTemplateConstant, rootPath, statError)
		}
		if !rootInfo.IsDir() {
			return fmt.Errorf(rootNotDirectoryErrorTemplateConstant, rootPath)
		}
	}
	return nil
}

func deduplicatePaths(paths []string) []string {
	seen := make(map[string]struct{})
	var unique []string
	for _, path := range paths {
		if _, exists := seen[path]; exists {
			continue
		}
		seen[path] = struct{}{}
		unique = append(unique, path)
	}
	sort.Strings(unique)
	return unique
}
