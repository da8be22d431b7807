package domain

import "time"

// Issue is the response shape for issue operations.
type Issue struct {
	ID        int64      `json:"id"`
	Number    int        `json:"issue_number"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	State     string     `json:"state"`
	User      *User      `json:"user,omitempty"`
	Labels    []Label    `json:"labels,omitempty"`
	Assignees []User     `json:"assignees,omitempty"`
	Milestone *Milestone `json:"milestone,omitempty"`
	Comments  int        `json:"comments"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	HTMLURL   string     `json:"html_url,omitempty"`
}

// IssueComment is the response shape for issue comment operations.
type IssueComment struct {
	ID        int64      `json:"id"`
	Body      string     `json:"body"`
	User      *User      `json:"user,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	HTMLURL   string     `json:"html_url,omitempty"`
}

// Label is a repository label attached to an issue.
type Label struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Milestone groups issues toward a target.
type Milestone struct {
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	State       string     `json:"state,omitempty"`
	Description string     `json:"description,omitempty"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

// User identifies a GitHub account.
type User struct {
	ID      int64  `json:"id"`
	Login   string `json:"login"`
	Type    string `json:"type,omitempty"`
	HTMLURL string `json:"html_url,omitempty"`
}
