package domain

import "time"

// Repository is the response shape for repository operations.
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Owner         *User  `json:"owner,omitempty"`
	Description   string `json:"description,omitempty"`
	Private       bool   `json:"private"`
	Fork          bool   `json:"fork"`
	DefaultBranch string `json:"default_branch,omitempty"`
	HTMLURL       string `json:"html_url,omitempty"`
}

// FileContent is the decoded view of a file fetched from a repository.
type FileContent struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Type     string `json:"type"`
	Content  string `json:"content,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	HTMLURL  string `json:"html_url,omitempty"`
}

// Commit is the response shape for commit listings.
type Commit struct {
	SHA     string     `json:"sha"`
	Message string     `json:"message"`
	Author  string     `json:"author,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	HTMLURL string     `json:"html_url,omitempty"`
}

// Branch is a named ref in a repository.
type Branch struct {
	Name string `json:"name"`
	SHA  string `json:"sha"`
}

// FileCommit reports the result of a file create or update.
type FileCommit struct {
	Commit  Commit       `json:"commit"`
	Content *FileContent `json:"content,omitempty"`
}

// PushResult reports the per-file outcome of a multi-file push.
type PushResult struct {
	Message string       `json:"message"`
	Branch  string       `json:"branch"`
	Files   []PushedFile `json:"files"`
}

// PushedFile pairs a pushed path with its new blob SHA.
type PushedFile struct {
	Path string `json:"path"`
	SHA  string `json:"sha"`
}
