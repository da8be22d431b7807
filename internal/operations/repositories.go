package operations

import (
	"context"
	"errors"
	"fmt"

	gh "github.com/google/go-github/v74/github"

	"github.com/vietddude/github-mcp/internal/core/domain"
	ghclient "github.com/vietddude/github-mcp/internal/infra/github"
)

// GetRepositoryParams identifies a repository.
type GetRepositoryParams struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// GetRepository fetches repository details. Served from the cache when one is
// configured.
func (s *Service) GetRepository(ctx context.Context, p GetRepositoryParams) (*domain.Repository, error) {
	key := fmt.Sprintf("repo:%s/%s", p.Owner, p.Repo)
	return cached(ctx, s, key, func() (*domain.Repository, error) {
		var out *domain.Repository
		err := s.call(ctx, "get_repository", ghclient.HintRepository, func(c *gh.Client) error {
			repo, _, err := c.Repositories.Get(ctx, p.Owner, p.Repo)
			if err != nil {
				return err
			}
			out = convertRepository(repo)
			return nil
		})
		return out, err
	})
}

// CreateRepositoryParams describes the repository to create for the
// authenticated user.
type CreateRepositoryParams struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Private     *bool   `json:"private,omitempty"`
	AutoInit    *bool   `json:"auto_init,omitempty"`
}

// CreateRepository creates a new repository for the authenticated user.
func (s *Service) CreateRepository(ctx context.Context, p CreateRepositoryParams) (*domain.Repository, error) {
	req := &gh.Repository{
		Name:        gh.Ptr(p.Name),
		Description: p.Description,
		Private:     p.Private,
		AutoInit:    p.AutoInit,
	}

	var out *domain.Repository
	err := s.call(ctx, "create_repository", ghclient.HintRepository, func(c *gh.Client) error {
		repo, _, err := c.Repositories.Create(ctx, "", req)
		if err != nil {
			return err
		}
		out = convertRepository(repo)
		return nil
	})
	return out, err
}

// ForkRepositoryParams identifies the repository to fork, optionally into an
// organization.
type ForkRepositoryParams struct {
	Owner        string  `json:"owner"`
	Repo         string  `json:"repo"`
	Organization *string `json:"organization,omitempty"`
}

// ForkRepository forks a repository. GitHub creates forks asynchronously, so
// the returned repository may still be provisioning.
func (s *Service) ForkRepository(ctx context.Context, p ForkRepositoryParams) (*domain.Repository, error) {
	opts := &gh.RepositoryCreateForkOptions{}
	if p.Organization != nil {
		opts.Organization = *p.Organization
	}

	var out *domain.Repository
	err := s.call(ctx, "fork_repository", ghclient.HintRepository, func(c *gh.Client) error {
		repo, _, err := c.Repositories.CreateFork(ctx, p.Owner, p.Repo, opts)
		var accepted *gh.AcceptedError
		if err != nil && !errors.As(err, &accepted) {
			return err
		}
		out = convertRepository(repo)
		return nil
	})
	return out, err
}

// SearchRepositoriesParams carries the search query and pagination.
type SearchRepositoriesParams struct {
	Query   string `json:"query"`
	Page    *int   `json:"page,omitempty"`
	PerPage *int   `json:"per_page,omitempty"`
}

// SearchRepositories searches for repositories matching a query.
func (s *Service) SearchRepositories(ctx context.Context, p SearchRepositoriesParams) ([]*domain.Repository, error) {
	var out []*domain.Repository
	err := s.call(ctx, "search_repositories", ghclient.HintRepository, func(c *gh.Client) error {
		repos, err := ghclient.Window(ctx, func(ctx context.Context, lo gh.ListOptions) ([]*gh.Repository, *gh.Response, error) {
			result, resp, err := c.Search.Repositories(ctx, p.Query, &gh.SearchOptions{ListOptions: lo})
			if err != nil {
				return nil, resp, err
			}
			return result.Repositories, resp, nil
		}, p.Page, p.PerPage)
		if err != nil {
			return err
		}
		out = convertRepositories(repos)
		return nil
	})
	return out, err
}

// GetFileContentsParams identifies a file or directory path in a repository.
type GetFileContentsParams struct {
	Owner  string  `json:"owner"`
	Repo   string  `json:"repo"`
	Path   string  `json:"path"`
	Branch *string `json:"branch,omitempty"`
}

// GetFileContents fetches and decodes a file from a repository. Served from
// the cache when one is configured.
func (s *Service) GetFileContents(ctx context.Context, p GetFileContentsParams) (*domain.FileContent, error) {
	ref := ""
	if p.Branch != nil {
		ref = *p.Branch
	}
	key := fmt.Sprintf("file:%s/%s/%s@%s", p.Owner, p.Repo, p.Path, ref)
	return cached(ctx, s, key, func() (*domain.FileContent, error) {
		var out *domain.FileContent
		err := s.call(ctx, "get_file_contents", ghclient.HintContentFile, func(c *gh.Client) error {
			file, _, _, err := c.Repositories.GetContents(ctx, p.Owner, p.Repo, p.Path,
				&gh.RepositoryContentGetOptions{Ref: ref})
			if err != nil {
				return err
			}
			if file == nil {
				return ghclient.NewError(ghclient.KindValidation,
					fmt.Sprintf("Path %q is a directory, not a file", p.Path))
			}
			out = convertFileContent(file)
			return nil
		})
		return out, err
	})
}

// CreateOrUpdateFileParams describes a single-file commit. SHA is required
// when updating an existing file.
type CreateOrUpdateFileParams struct {
	Owner   string  `json:"owner"`
	Repo    string  `json:"repo"`
	Path    string  `json:"path"`
	Message string  `json:"message"`
	Content string  `json:"content"`
	Branch  string  `json:"branch"`
	SHA     *string `json:"sha,omitempty"`
}

// CreateOrUpdateFile creates or updates a file in a repository. An outdated
// SHA surfaces as a Conflict error from the API.
func (s *Service) CreateOrUpdateFile(ctx context.Context, p CreateOrUpdateFileParams) (*domain.FileCommit, error) {
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr(p.Message),
		Content: []byte(p.Content),
		Branch:  gh.Ptr(p.Branch),
		SHA:     p.SHA,
	}

	var out *domain.FileCommit
	err := s.call(ctx, "create_or_update_file", ghclient.HintContentFile, func(c *gh.Client) error {
		var (
			resp *gh.RepositoryContentResponse
			err  error
		)
		if p.SHA != nil {
			resp, _, err = c.Repositories.UpdateFile(ctx, p.Owner, p.Repo, p.Path, opts)
		} else {
			resp, _, err = c.Repositories.CreateFile(ctx, p.Owner, p.Repo, p.Path, opts)
		}
		if err != nil {
			return err
		}
		out = &domain.FileCommit{
			Commit:  convertCommitMeta(&resp.Commit),
			Content: convertFileContent(resp.Content),
		}
		return nil
	})
	return out, err
}

// FileEntry is one file in a multi-file push.
type FileEntry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// PushFilesParams describes a multi-file push to a branch.
type PushFilesParams struct {
	Owner   string      `json:"owner"`
	Repo    string      `json:"repo"`
	Branch  string      `json:"branch"`
	Message string      `json:"message"`
	Files   []FileEntry `json:"files"`
}

// PushFiles pushes multiple files as sequential per-file commits. The
// sequence is not transactional: a failure partway leaves the earlier
// commits in place.
func (s *Service) PushFiles(ctx context.Context, p PushFilesParams) (*domain.PushResult, error) {
	result := &domain.PushResult{Message: p.Message, Branch: p.Branch}

	for _, f := range p.Files {
		// Pick up the current blob SHA when the file already exists.
		var sha *string
		lookupErr := s.call(ctx, "push_files", ghclient.HintContentFile, func(c *gh.Client) error {
			existing, _, _, err := c.Repositories.GetContents(ctx, p.Owner, p.Repo, f.Path,
				&gh.RepositoryContentGetOptions{Ref: p.Branch})
			if err != nil {
				return err
			}
			if existing != nil {
				sha = existing.SHA
			}
			return nil
		})
		if lookupErr != nil && !ghclient.IsNotFound(lookupErr) {
			return nil, lookupErr
		}

		commit, err := s.CreateOrUpdateFile(ctx, CreateOrUpdateFileParams{
			Owner:   p.Owner,
			Repo:    p.Repo,
			Path:    f.Path,
			Message: p.Message,
			Content: f.Content,
			Branch:  p.Branch,
			SHA:     sha,
		})
		if err != nil {
			return nil, err
		}
		pushed := domain.PushedFile{Path: f.Path}
		if commit.Content != nil {
			pushed.SHA = commit.Content.SHA
		}
		result.Files = append(result.Files, pushed)
	}
	return result, nil
}

// CreateBranchParams names the new branch and its starting point. FromBranch
// defaults to the repository default branch.
type CreateBranchParams struct {
	Owner      string  `json:"owner"`
	Repo       string  `json:"repo"`
	Branch     string  `json:"branch"`
	FromBranch *string `json:"from_branch,omitempty"`
}

// CreateBranch creates a new branch pointing at the head of another branch.
func (s *Service) CreateBranch(ctx context.Context, p CreateBranchParams) (*domain.Branch, error) {
	var out *domain.Branch
	err := s.call(ctx, "create_branch", ghclient.HintBranch, func(c *gh.Client) error {
		from := ""
		if p.FromBranch != nil {
			from = *p.FromBranch
		} else {
			repo, _, err := c.Repositories.Get(ctx, p.Owner, p.Repo)
			if err != nil {
				return err
			}
			from = repo.GetDefaultBranch()
		}

		base, _, err := c.Git.GetRef(ctx, p.Owner, p.Repo, "refs/heads/"+from)
		if err != nil {
			return err
		}
		ref := &gh.Reference{
			Ref:    gh.Ptr("refs/heads/" + p.Branch),
			Object: &gh.GitObject{SHA: base.Object.SHA},
		}
		created, _, err := c.Git.CreateRef(ctx, p.Owner, p.Repo, ref)
		if err != nil {
			return err
		}
		out = &domain.Branch{
			Name: p.Branch,
			SHA:  created.GetObject().GetSHA(),
		}
		return nil
	})
	return out, err
}

// ListCommitsParams paginates a branch's commit history.
type ListCommitsParams struct {
	Owner   string  `json:"owner"`
	Repo    string  `json:"repo"`
	SHA     *string `json:"sha,omitempty"`
	Page    *int    `json:"page,omitempty"`
	PerPage *int    `json:"per_page,omitempty"`
}

// ListCommits lists commits, newest first.
func (s *Service) ListCommits(ctx context.Context, p ListCommitsParams) ([]*domain.Commit, error) {
	var out []*domain.Commit
	err := s.call(ctx, "list_commits", ghclient.HintRepository, func(c *gh.Client) error {
		commits, err := ghclient.Window(ctx, func(ctx context.Context, lo gh.ListOptions) ([]*gh.RepositoryCommit, *gh.Response, error) {
			opts := &gh.CommitsListOptions{ListOptions: lo}
			if p.SHA != nil {
				opts.SHA = *p.SHA
			}
			return c.Repositories.ListCommits(ctx, p.Owner, p.Repo, opts)
		}, p.Page, p.PerPage)
		if err != nil {
			return err
		}
		for _, cm := range commits {
			out = append(out, convertRepositoryCommit(cm))
		}
		return nil
	})
	return out, err
}
