package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vietddude/github-mcp/internal/operations"
)

func registerIssueTools(server *mcp.Server, svc *operations.Service, logger *slog.Logger) {
	register(server, logger, "create_issue",
		"Create a new issue in a GitHub repository",
		func(ctx context.Context, p operations.CreateIssueParams) (any, error) {
			return svc.CreateIssue(ctx, p)
		})

	register(server, logger, "get_issue",
		"Get details about a specific issue",
		func(ctx context.Context, p operations.GetIssueParams) (any, error) {
			return svc.GetIssue(ctx, p)
		})

	register(server, logger, "update_issue",
		"Update an existing issue (title, body, state, labels, assignees, milestone)",
		func(ctx context.Context, p operations.UpdateIssueParams) (any, error) {
			return svc.UpdateIssue(ctx, p)
		})

	register(server, logger, "list_issues",
		"List issues from a repository with optional state, label, and date filtering",
		func(ctx context.Context, p operations.ListIssuesParams) (any, error) {
			return svc.ListIssues(ctx, p)
		})

	register(server, logger, "add_issue_comment",
		"Add a comment to an issue",
		func(ctx context.Context, p operations.AddIssueCommentParams) (any, error) {
			return svc.AddIssueComment(ctx, p)
		})

	register(server, logger, "list_issue_comments",
		"List comments on an issue",
		func(ctx context.Context, p operations.ListIssueCommentsParams) (any, error) {
			return svc.ListIssueComments(ctx, p)
		})

	register(server, logger, "update_issue_comment",
		"Update an existing issue comment",
		func(ctx context.Context, p operations.UpdateIssueCommentParams) (any, error) {
			return svc.UpdateIssueComment(ctx, p)
		})

	register(server, logger, "delete_issue_comment",
		"Delete an issue comment",
		func(ctx context.Context, p operations.DeleteIssueCommentParams) (any, error) {
			if err := svc.DeleteIssueComment(ctx, p); err != nil {
				return nil, err
			}
			return map[string]string{"status": "deleted"}, nil
		})

	register(server, logger, "add_issue_labels",
		"Add labels to an issue",
		func(ctx context.Context, p operations.AddIssueLabelsParams) (any, error) {
			return svc.AddIssueLabels(ctx, p)
		})

	register(server, logger, "remove_issue_label",
		"Remove a label from an issue",
		func(ctx context.Context, p operations.RemoveIssueLabelParams) (any, error) {
			if err := svc.RemoveIssueLabel(ctx, p); err != nil {
				return nil, err
			}
			return map[string]string{"status": "removed"}, nil
		})
}
