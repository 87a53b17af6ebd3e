package status_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repostatus/internal/repos/filesystem"
	"github.com/temirov/repostatus/internal/repos/shared"
	"github.com/temirov/repostatus/internal/status"
)

type stubRepositoryDiscoverer struct {
	repositories   []string
	discoveryError error
	requestedRoots []string
}

func (discoverer *stubRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]string, error) {
	discoverer.requestedRoots = append([]string{}, roots...)
	if discoverer.discoveryError != nil {
		return nil, discoverer.discoveryError
	}
	return discoverer.repositories, nil
}

type stubClassifier struct {
	verdicts map[string]status.RepositoryStatus
}

func (classifier stubClassifier) Classify(_ context.Context, repositoryPath string) status.RepositoryStatus {
	if verdict, exists := classifier.verdicts[repositoryPath]; exists {
		return verdict
	}
	return status.RepositoryStatus{Path: repositoryPath, Category: status.StatusCategoryClean}
}

func TestServiceRunReportsDiscoveredRepositories(t *testing.T) {
	temporaryRoot := t.TempDir()
	cleanRepository := filepath.Join(temporaryRoot, "omega")
	divergedRepository := filepath.Join(temporaryRoot, "alpha")

	discoverer := &stubRepositoryDiscoverer{
		repositories: []string{cleanRepository, divergedRepository, cleanRepository},
	}
	classifier := stubClassifier{
		verdicts: map[string]status.RepositoryStatus{
			divergedRepository: {
				Path:     divergedRepository,
				Category: status.StatusCategoryDiverged,
				Counts:   shared.AheadBehindCounts{Ahead: 1, Behind: 2},
			},
		},
	}

	outputBuffer := &bytes.Buffer{}
	service := status.NewService(discoverer, classifier, filesystem.OSFileSystem{}, outputBuffer)

	runError := service.Run(context.Background(), status.CommandOptions{Roots: []string{temporaryRoot}})
	require.NoError(t, runError)

	expectedLines := []string{
		"Repos Diverged from Upstream",
		"  " + divergedRepository + "  (ahead: 1, behind: 2)",
		"Repos Up-to-Date and Tracking Remote",
		"  " + cleanRepository,
		"",
		"Summary",
		"  Diverged: 1",
		"  Clean: 1",
	}
	require.Equal(t, strings.Join(expectedLines, "\n")+"\n", outputBuffer.String())
	require.Equal(t, []string{temporaryRoot}, discoverer.requestedRoots)
}

func TestServiceRunDefaultsToCurrentDirectory(t *testing.T) {
	discoverer := &stubRepositoryDiscoverer{}

	outputBuffer := &bytes.Buffer{}
	service := status.NewService(discoverer, stubClassifier{}, filesystem.OSFileSystem{}, outputBuffer)

	runError := service.Run(context.Background(), status.CommandOptions{})
	require.NoError(t, runError)

	require.Equal(t, []string{"."}, discoverer.requestedRoots)
	require.Equal(t, "\nSummary\n  No problem repos detected.\n", outputBuffer.String())
}

func TestServiceRunValidatesRoots(t *testing.T) {
	temporaryRoot := t.TempDir()
	filePath := filepath.Join(temporaryRoot, "notes.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("notes"), 0o644))

	testCases := []struct {
		name                 string
		rootPath             string
		expectedErrorMessage string
	}{
		{
			name:                 "missing_root",
			rootPath:             filepath.Join(temporaryRoot, "missing"),
			expectedErrorMessage: "unable to scan root",
		},
		{
			name:                 "root_is_a_file",
			rootPath:             filePath,
			expectedErrorMessage: "scan root is not a directory",
		},
	}

	for testCaseIndex, testCase := range testCases {
		t.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(t *testing.T) {
			discoverer := &stubRepositoryDiscoverer{}
			outputBuffer := &bytes.Buffer{}
			service := status.NewService(discoverer, stubClassifier{}, filesystem.OSFileSystem{}, outputBuffer)

			runError := service.Run(context.Background(), status.CommandOptions{Roots: []string{testCase.rootPath}})

			require.Error(t, runError)
			require.Contains(t, runError.Error(), testCase.expectedErrorMessage)
			require.Empty(t, outputBuffer.String())
			require.Nil(t, discoverer.requestedRoots)
		})
	}
}

func TestServiceRunPropagatesDiscoveryFailures(t *testing.T) {
	temporaryRoot := t.TempDir()
	discoveryFailure := errors.New("discovery failed")
	discoverer := &stubRepositoryDiscoverer{discoveryError: discoveryFailure}

	outputBuffer := &bytes.Buffer{}
	service := status.NewService(discoverer, stubClassifier{}, filesystem.OSFileSystem{}, outputBuffer)

	runError := service.Run(context.Background(), status.CommandOptions{Roots: []string{temporaryRoot}})

	require.ErrorIs(t, runError, discoveryFailure)
	require.Empty(t, outputBuffer.String())
}

func TestServiceRunHonorsSkipClean(t *testing.T) {
	temporaryRoot := t.TempDir()
	cleanRepository := filepath.Join(temporaryRoot, "project")
	discoverer := &stubRepositoryDiscoverer{repositories: []string{cleanRepository}}

	outputBuffer := &bytes.Buffer{}
	service := status.NewService(discoverer, stubClassifier{}, filesystem.OSFileSystem{}, outputBuffer)

	runError := service.Run(context.Background(), status.CommandOptions{Roots: []string{temporaryRoot}, SkipClean: true})
	require.NoError(t, runError)

	require.Equal(t, "\nSummary\n  No problem repos detected.\n", outputBuffer.String())
}
