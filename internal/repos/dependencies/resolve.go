package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/repostatus/internal/execshell"
	"github.com/temirov/repostatus/internal/gitrepo"
	"github.com/temirov/repostatus/internal/repos/discovery"
	"github.com/temirov/repostatus/internal/repos/shared"
	"github.com/temirov/repostatus/internal/ui"
)

// ResolveRepositoryDiscoverer returns the provided discoverer or a filesystem-backed default.
func ResolveRepositoryDiscoverer(existing shared.RepositoryDiscoverer, logger *zap.Logger, recursive bool) shared.RepositoryDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFilesystemRepositoryDiscoverer(logger, recursive)
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed
// default. Human-readable logging attaches the console event observer so probe
// lifecycles surface in the log at info level.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

// ResolveRepositoryInspector returns the provided inspector or constructs one from the executor.
func ResolveRepositoryInspector(existing shared.GitRepositoryInspector, executor shared.GitExecutor) (shared.GitRepositoryInspector, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryInspector(executor)
}
