// Package gitrepo contains helpers for interrogating Git repositories.
//
// It exposes RepositoryInspector, the single place where git's textual output
// is parsed into typed answers about bare status, branches, worktree changes,
// upstream configuration, and commit counts.
package gitrepo
