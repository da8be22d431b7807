package operations

import (
	"context"
	"time"

	gh "github.com/google/go-github/v74/github"

	"github.com/vietddude/github-mcp/internal/core/domain"
	ghclient "github.com/vietddude/github-mcp/internal/infra/github"
)

// CreateIssueParams identifies the repository and the issue to create.
type CreateIssueParams struct {
	Owner     string   `json:"owner"`
	Repo      string   `json:"repo"`
	Title     string   `json:"title"`
	Body      *string  `json:"body,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Milestone *int     `json:"milestone,omitempty"`
}

// CreateIssue creates a new issue in a repository.
func (s *Service) CreateIssue(ctx context.Context, p CreateIssueParams) (*domain.Issue, error) {
	req := &gh.IssueRequest{Title: gh.Ptr(p.Title)}
	if p.Body != nil {
		req.Body = p.Body
	}
	if len(p.Assignees) > 0 {
		req.Assignees = &p.Assignees
	}
	if len(p.Labels) > 0 {
		req.Labels = &p.Labels
	}
	if p.Milestone != nil {
		req.Milestone = p.Milestone
	}

	var out *domain.Issue
	err := s.call(ctx, "create_issue", ghclient.HintIssue, func(c *gh.Client) error {
		issue, _, err := c.Issues.Create(ctx, p.Owner, p.Repo, req)
		if err != nil {
			return err
		}
		out = convertIssue(issue)
		return nil
	})
	return out, err
}

// GetIssueParams identifies a single issue.
type GetIssueParams struct {
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	IssueNumber int    `json:"issue_number"`
}

// GetIssue fetches details about a specific issue.
func (s *Service) GetIssue(ctx context.Context, p GetIssueParams) (*domain.Issue, error) {
	var out *domain.Issue
	err := s.call(ctx, "get_issue", ghclient.HintIssue, func(c *gh.Client) error {
		issue, _, err := c.Issues.Get(ctx, p.Owner, p.Repo, p.IssueNumber)
		if err != nil {
			return err
		}
		out = convertIssue(issue)
		return nil
	})
	return out, err
}

// UpdateIssueParams carries the fields to change; nil fields stay untouched.
type UpdateIssueParams struct {
	Owner       string    `json:"owner"`
	Repo        string    `json:"repo"`
	IssueNumber int       `json:"issue_number"`
	Title       *string   `json:"title,omitempty"`
	Body        *string   `json:"body,omitempty"`
	State       *string   `json:"state,omitempty"`
	Labels      *[]string `json:"labels,omitempty"`
	Assignees   *[]string `json:"assignees,omitempty"`
	Milestone   *int      `json:"milestone,omitempty"`
}

// UpdateIssue edits an existing issue. Only provided fields are sent.
func (s *Service) UpdateIssue(ctx context.Context, p UpdateIssueParams) (*domain.Issue, error) {
	req := &gh.IssueRequest{
		Title:     p.Title,
		Body:      p.Body,
		State:     p.State,
		Labels:    p.Labels,
		Assignees: p.Assignees,
		Milestone: p.Milestone,
	}

	var out *domain.Issue
	err := s.call(ctx, "update_issue", ghclient.HintIssue, func(c *gh.Client) error {
		issue, _, err := c.Issues.Edit(ctx, p.Owner, p.Repo, p.IssueNumber, req)
		if err != nil {
			return err
		}
		out = convertIssue(issue)
		return nil
	})
	return out, err
}

// ListIssuesParams filters and paginates a repository's issues.
type ListIssuesParams struct {
	Owner     string   `json:"owner"`
	Repo      string   `json:"repo"`
	State     *string  `json:"state,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Sort      *string  `json:"sort,omitempty"`
	Direction *string  `json:"direction,omitempty"`
	Since     *string  `json:"since,omitempty"`
	Page      *int     `json:"page,omitempty"`
	PerPage   *int     `json:"per_page,omitempty"`
}

// ListIssues lists issues from a repository with optional filtering. Without
// page or per_page the full sequence is materialized.
func (s *Service) ListIssues(ctx context.Context, p ListIssuesParams) ([]*domain.Issue, error) {
	opts := &gh.IssueListByRepoOptions{Labels: p.Labels}
	if p.State != nil {
		opts.State = *p.State
	}
	if p.Sort != nil {
		opts.Sort = *p.Sort
	}
	if p.Direction != nil {
		opts.Direction = *p.Direction
	}
	if p.Since != nil {
		since, err := time.Parse(time.RFC3339, *p.Since)
		if err != nil {
			return nil, ghclient.NewError(ghclient.KindValidation,
				"Invalid since value. Must be an ISO 8601 timestamp.")
		}
		opts.Since = since
	}

	var out []*domain.Issue
	err := s.call(ctx, "list_issues", ghclient.HintIssue, func(c *gh.Client) error {
		issues, err := ghclient.Window(ctx, func(ctx context.Context, lo gh.ListOptions) ([]*gh.Issue, *gh.Response, error) {
			pageOpts := *opts
			pageOpts.ListOptions = lo
			return c.Issues.ListByRepo(ctx, p.Owner, p.Repo, &pageOpts)
		}, p.Page, p.PerPage)
		if err != nil {
			return err
		}
		out = convertIssues(issues)
		return nil
	})
	return out, err
}

// AddIssueCommentParams identifies the issue and the comment body.
type AddIssueCommentParams struct {
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	IssueNumber int    `json:"issue_number"`
	Body        string `json:"body"`
}

// AddIssueComment adds a comment to an issue.
func (s *Service) AddIssueComment(ctx context.Context, p AddIssueCommentParams) (*domain.IssueComment, error) {
	var out *domain.IssueComment
	err := s.call(ctx, "add_issue_comment", ghclient.HintIssue, func(c *gh.Client) error {
		comment, _, err := c.Issues.CreateComment(ctx, p.Owner, p.Repo, p.IssueNumber,
			&gh.IssueComment{Body: gh.Ptr(p.Body)})
		if err != nil {
			return err
		}
		out = convertComment(comment)
		return nil
	})
	return out, err
}

// ListIssueCommentsParams paginates an issue's comments.
type ListIssueCommentsParams struct {
	Owner       string  `json:"owner"`
	Repo        string  `json:"repo"`
	IssueNumber int     `json:"issue_number"`
	Since       *string `json:"since,omitempty"`
	Page        *int    `json:"page,omitempty"`
	PerPage     *int    `json:"per_page,omitempty"`
}

// ListIssueComments lists comments on an issue.
func (s *Service) ListIssueComments(ctx context.Context, p ListIssueCommentsParams) ([]*domain.IssueComment, error) {
	opts := &gh.IssueListCommentsOptions{}
	if p.Since != nil {
		since, err := time.Parse(time.RFC3339, *p.Since)
		if err != nil {
			return nil, ghclient.NewError(ghclient.KindValidation,
				"Invalid since value. Must be an ISO 8601 timestamp.")
		}
		opts.Since = &since
	}

	var out []*domain.IssueComment
	err := s.call(ctx, "list_issue_comments", ghclient.HintComment, func(c *gh.Client) error {
		comments, err := ghclient.Window(ctx, func(ctx context.Context, lo gh.ListOptions) ([]*gh.IssueComment, *gh.Response, error) {
			pageOpts := *opts
			pageOpts.ListOptions = lo
			return c.Issues.ListComments(ctx, p.Owner, p.Repo, p.IssueNumber, &pageOpts)
		}, p.Page, p.PerPage)
		if err != nil {
			return err
		}
		out = convertComments(comments)
		return nil
	})
	return out, err
}

// UpdateIssueCommentParams identifies the comment and its new body.
type UpdateIssueCommentParams struct {
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	IssueNumber int    `json:"issue_number"`
	CommentID   int64  `json:"comment_id"`
	Body        string `json:"body"`
}

// UpdateIssueComment replaces the body of an issue comment.
func (s *Service) UpdateIssueComment(ctx context.Context, p UpdateIssueCommentParams) (*domain.IssueComment, error) {
	var out *domain.IssueComment
	err := s.call(ctx, "update_issue_comment", ghclient.HintComment, func(c *gh.Client) error {
		comment, _, err := c.Issues.EditComment(ctx, p.Owner, p.Repo, p.CommentID,
			&gh.IssueComment{Body: gh.Ptr(p.Body)})
		if err != nil {
			return err
		}
		out = convertComment(comment)
		return nil
	})
	return out, err
}

// DeleteIssueCommentParams identifies the comment to remove.
type DeleteIssueCommentParams struct {
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	IssueNumber int    `json:"issue_number"`
	CommentID   int64  `json:"comment_id"`
}

// DeleteIssueComment removes a comment from an issue.
func (s *Service) DeleteIssueComment(ctx context.Context, p DeleteIssueCommentParams) error {
	return s.call(ctx, "delete_issue_comment", ghclient.HintComment, func(c *gh.Client) error {
		_, err := c.Issues.DeleteComment(ctx, p.Owner, p.Repo, p.CommentID)
		return err
	})
}

// AddIssueLabelsParams names the labels to attach.
type AddIssueLabelsParams struct {
	Owner       string   `json:"owner"`
	Repo        string   `json:"repo"`
	IssueNumber int      `json:"issue_number"`
	Labels      []string `json:"labels"`
}

// AddIssueLabels attaches labels to an issue and returns the full label set.
func (s *Service) AddIssueLabels(ctx context.Context, p AddIssueLabelsParams) ([]domain.Label, error) {
	var out []domain.Label
	err := s.call(ctx, "add_issue_labels", ghclient.HintLabel, func(c *gh.Client) error {
		labels, _, err := c.Issues.AddLabelsToIssue(ctx, p.Owner, p.Repo, p.IssueNumber, p.Labels)
		if err != nil {
			return err
		}
		for _, l := range labels {
			out = append(out, *convertLabel(l))
		}
		return nil
	})
	return out, err
}

// RemoveIssueLabelParams names the label to detach.
type RemoveIssueLabelParams struct {
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	IssueNumber int    `json:"issue_number"`
	Label       string `json:"label"`
}

// RemoveIssueLabel detaches a label from an issue.
func (s *Service) RemoveIssueLabel(ctx context.Context, p RemoveIssueLabelParams) error {
	return s.call(ctx, "remove_issue_label", ghclient.HintLabel, func(c *gh.Client) error {
		_, err := c.Issues.RemoveLabelForIssue(ctx, p.Owner, p.Repo, p.IssueNumber, p.Label)
		return err
	})
}
