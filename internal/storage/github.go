package storage

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"delit-api/internal/apperror"
	"delit-api/internal/config"

	"github.com/google/go-github/v66/github"
)

var blobPathPattern = regexp.MustCompile(`blob/[^/]+/(.+)`)

// GitHubStore keeps assets as files committed to a GitHub repository
// through the contents API.
type GitHubStore struct {
	client *github.Client
	owner  string
	repo   string
	folder string
	branch string
	now    func() time.Time
}

// NewGitHubClient returns an authenticated contents API client.
func NewGitHubClient(token string) *github.Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return github.NewClient(httpClient).WithAuthToken(token)
}

func NewGitHubStore(client *github.Client, cfg config.GitHubConfig) *GitHubStore {
	return &GitHubStore{
		client: client,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		folder: cfg.Folder,
		branch: cfg.Branch,
		now:    time.Now,
	}
}

// Upload commits content under the configured folder and returns the
// file's html_url.
func (s *GitHubStore) Upload(ctx context.Context, content []byte, filename string) (string, error) {
	filePath := filename
	if s.folder != "" {
		filePath = s.folder + "/" + filename
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(fmt.Sprintf("Add %s at %s", filename, s.now().Format("2006-01-02 15:04:05"))),
		Content: content,
	}
	if s.branch != "" {
		opts.Branch = github.String(s.branch)
	}

	res, _, err := s.client.Repositories.CreateFile(ctx, s.owner, s.repo, filePath, opts)
	if err != nil {
		return "", apperror.Upstream("error uploading file to github", err)
	}
	url := res.GetContent().GetHTMLURL()
	if url == "" {
		return "", apperror.Upstream("error uploading file to github", fmt.Errorf("no html_url for %s", filePath))
	}
	return url, nil
}

// Delete removes the file behind a blob URL returned by Upload.
func (s *GitHubStore) Delete(ctx context.Context, link string) error {
	match := blobPathPattern.FindStringSubmatch(link)
	if match == nil {
		return apperror.NotFound("link not found")
	}
	filePath := match[1]

	var getOpts *github.RepositoryContentGetOptions
	if s.branch != "" {
		getOpts = &github.RepositoryContentGetOptions{Ref: s.branch}
	}
	file, _, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, filePath, getOpts)
	if err != nil || file == nil {
		return apperror.NotFound("file not found").Wrap(err)
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String("Delete " + filePath),
		SHA:     github.String(file.GetSHA()),
	}
	if s.branch != "" {
		opts.Branch = github.String(s.branch)
	}
	if _, _, err := s.client.Repositories.DeleteFile(ctx, s.owner, s.repo, filePath, opts); err != nil {
		return apperror.Conflict("unable to delete the file").Wrap(err)
	}
	return nil
}
