package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vietddude/github-mcp/internal/operations"
)

func registerRepositoryTools(server *mcp.Server, svc *operations.Service, logger *slog.Logger) {
	register(server, logger, "get_repository",
		"Get details about a repository",
		func(ctx context.Context, p operations.GetRepositoryParams) (any, error) {
			return svc.GetRepository(ctx, p)
		})

	register(server, logger, "create_repository",
		"Create a new repository for the authenticated user",
		func(ctx context.Context, p operations.CreateRepositoryParams) (any, error) {
			return svc.CreateRepository(ctx, p)
		})

	register(server, logger, "fork_repository",
		"Fork a repository to the authenticated user or an organization",
		func(ctx context.Context, p operations.ForkRepositoryParams) (any, error) {
			return svc.ForkRepository(ctx, p)
		})

	register(server, logger, "search_repositories",
		"Search for repositories matching a query",
		func(ctx context.Context, p operations.SearchRepositoriesParams) (any, error) {
			return svc.SearchRepositories(ctx, p)
		})

	register(server, logger, "get_file_contents",
		"Get the decoded contents of a file in a repository",
		func(ctx context.Context, p operations.GetFileContentsParams) (any, error) {
			return svc.GetFileContents(ctx, p)
		})

	register(server, logger, "create_or_update_file",
		"Create or update a single file in a repository (pass sha when updating)",
		func(ctx context.Context, p operations.CreateOrUpdateFileParams) (any, error) {
			return svc.CreateOrUpdateFile(ctx, p)
		})

	register(server, logger, "push_files",
		"Push multiple files to a branch as sequential commits (not atomic)",
		func(ctx context.Context, p operations.PushFilesParams) (any, error) {
			return svc.PushFiles(ctx, p)
		})

	register(server, logger, "create_branch",
		"Create a new branch from another branch (defaults to the default branch)",
		func(ctx context.Context, p operations.CreateBranchParams) (any, error) {
			return svc.CreateBranch(ctx, p)
		})

	register(server, logger, "list_commits",
		"List commits of a branch, newest first",
		func(ctx context.Context, p operations.ListCommitsParams) (any, error) {
			return svc.ListCommits(ctx, p)
		})
}
