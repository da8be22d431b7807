package operations

import (
	"time"

	gh "github.com/google/go-github/v74/github"

	"github.com/vietddude/github-mcp/internal/core/domain"
)

func convertIssue(i *gh.Issue) *domain.Issue {
	if i == nil {
		return nil
	}
	out := &domain.Issue{
		ID:        i.GetID(),
		Number:    i.GetNumber(),
		Title:     i.GetTitle(),
		Body:      i.GetBody(),
		State:     i.GetState(),
		User:      convertUser(i.User),
		Milestone: convertMilestone(i.Milestone),
		Comments:  i.GetComments(),
		CreatedAt: timestampPtr(i.CreatedAt),
		UpdatedAt: timestampPtr(i.UpdatedAt),
		ClosedAt:  timestampPtr(i.ClosedAt),
		HTMLURL:   i.GetHTMLURL(),
	}
	for _, l := range i.Labels {
		if l != nil {
			out.Labels = append(out.Labels, *convertLabel(l))
		}
	}
	for _, a := range i.Assignees {
		if u := convertUser(a); u != nil {
			out.Assignees = append(out.Assignees, *u)
		}
	}
	return out
}

func convertIssues(issues []*gh.Issue) []*domain.Issue {
	out := make([]*domain.Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, convertIssue(i))
	}
	return out
}

func convertComment(c *gh.IssueComment) *domain.IssueComment {
	if c == nil {
		return nil
	}
	return &domain.IssueComment{
		ID:        c.GetID(),
		Body:      c.GetBody(),
		User:      convertUser(c.User),
		CreatedAt: timestampPtr(c.CreatedAt),
		UpdatedAt: timestampPtr(c.UpdatedAt),
		HTMLURL:   c.GetHTMLURL(),
	}
}

func convertComments(comments []*gh.IssueComment) []*domain.IssueComment {
	out := make([]*domain.IssueComment, 0, len(comments))
	for _, c := range comments {
		out = append(out, convertComment(c))
	}
	return out
}

func convertLabel(l *gh.Label) *domain.Label {
	return &domain.Label{
		ID:          l.GetID(),
		Name:        l.GetName(),
		Color:       l.GetColor(),
		Description: l.GetDescription(),
	}
}

func convertMilestone(m *gh.Milestone) *domain.Milestone {
	if m == nil {
		return nil
	}
	return &domain.Milestone{
		Number:      m.GetNumber(),
		Title:       m.GetTitle(),
		State:       m.GetState(),
		Description: m.GetDescription(),
		DueOn:       timestampPtr(m.DueOn),
	}
}

func convertUser(u *gh.User) *domain.User {
	if u == nil {
		return nil
	}
	return &domain.User{
		ID:      u.GetID(),
		Login:   u.GetLogin(),
		Type:    u.GetType(),
		HTMLURL: u.GetHTMLURL(),
	}
}

func convertRepository(r *gh.Repository) *domain.Repository {
	if r == nil {
		return nil
	}
	return &domain.Repository{
		ID:            r.GetID(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Owner:         convertUser(r.Owner),
		Description:   r.GetDescription(),
		Private:       r.GetPrivate(),
		Fork:          r.GetFork(),
		DefaultBranch: r.GetDefaultBranch(),
		HTMLURL:       r.GetHTMLURL(),
	}
}

func convertRepositories(repos []*gh.Repository) []*domain.Repository {
	out := make([]*domain.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, convertRepository(r))
	}
	return out
}

func convertFileContent(c *gh.RepositoryContent) *domain.FileContent {
	if c == nil {
		return nil
	}
	out := &domain.FileContent{
		Name:    c.GetName(),
		Path:    c.GetPath(),
		SHA:     c.GetSHA(),
		Size:    c.GetSize(),
		Type:    c.GetType(),
		HTMLURL: c.GetHTMLURL(),
	}
	if decoded, err := c.GetContent(); err == nil {
		out.Content = decoded
		out.Encoding = "utf-8"
	}
	return out
}

func convertRepositoryCommit(c *gh.RepositoryCommit) *domain.Commit {
	if c == nil {
		return nil
	}
	out := &domain.Commit{
		SHA:     c.GetSHA(),
		HTMLURL: c.GetHTMLURL(),
	}
	if cm := c.Commit; cm != nil {
		out.Message = cm.GetMessage()
		if a := cm.Author; a != nil {
			out.Author = a.GetName()
			out.Date = timestampPtr(a.Date)
		}
	}
	return out
}

func convertCommitMeta(c *gh.Commit) domain.Commit {
	if c == nil {
		return domain.Commit{}
	}
	return domain.Commit{
		SHA:     c.GetSHA(),
		Message: c.GetMessage(),
		HTMLURL: c.GetHTMLURL(),
	}
}

func timestampPtr(ts *gh.Timestamp) *time.Time {
	if ts == nil || ts.Time.IsZero() {
		return nil
	}
	t := ts.Time
	return &t
}
