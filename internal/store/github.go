package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// GitHubStore implements Store against the GitHub Contents API.
// Every successful PutFile is an implicit commit on the configured branch.
type GitHubStore struct {
	client *resty.Client
	owner  string
	repo   string
	branch string
}

// NewGitHubStore creates a ready-to-use GitHubStore. ownerRepo is the
// "owner/repository" coordinate. No retries and no client timeout are
// configured: a transient failure surfaces to the caller immediately.
func NewGitHubStore(apiBase, token, ownerRepo, branch string) *GitHubStore {
	owner, repo, _ := strings.Cut(ownerRepo, "/")

	client := resty.New().
		SetBaseURL(strings.TrimRight(apiBase, "/")).
		SetAuthToken(token).
		SetHeader("Accept", "application/vnd.github+json")

	return &GitHubStore{
		client: client,
		owner:  owner,
		repo:   repo,
		branch: branch,
	}
}

func (s *GitHubStore) contentsURL(path string) string {
	return fmt.Sprintf("/repos/%s/%s/contents/%s", s.owner, s.repo, path)
}

// FileSHA looks up the current content SHA for path on the branch.
// A 404 means the file does not exist yet and is not an error — it is the
// expected create path. Any other non-success status is a store error.
func (s *GitHubStore) FileSHA(ctx context.Context, path string) (string, error) {
	var meta struct {
		SHA string `json:"sha"`
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("ref", s.branch).
		SetResult(&meta).
		Get(s.contentsURL(path))
	if err != nil {
		return "", fmt.Errorf("lookup %q: %w", path, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return "", nil
	}
	if resp.IsError() {
		return "", newStoreError(resp)
	}

	return meta.SHA, nil
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// PutFile writes base64-encoded content to path, committing with message.
// sha, when non-empty, is attached as the update precondition.
func (s *GitHubStore) PutFile(ctx context.Context, path, contentB64, message, sha string) (json.RawMessage, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(putRequest{
			Message: message,
			Content: contentB64,
			Branch:  s.branch,
			SHA:     sha,
		}).
		Put(s.contentsURL(path))
	if err != nil {
		return nil, fmt.Errorf("write %q: %w", path, err)
	}
	if resp.IsError() {
		return nil, newStoreError(resp)
	}

	return json.RawMessage(resp.Body()), nil
}

// newStoreError extracts the upstream "message" field when the response body
// is the store's structured error shape, falling back to the raw body.
func newStoreError(resp *resty.Response) *StoreError {
	detail := strings.TrimSpace(string(resp.Body()))

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		detail = body.Message
	}
	if detail == "" {
		detail = resp.Status()
	}

	return &StoreError{StatusCode: resp.StatusCode(), Message: detail}
}
