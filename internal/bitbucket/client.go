package bitbucket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	plumber "github.com/alnah/go-plumber"
)

// DefaultBaseURL is the Bitbucket Cloud 2.0 API root.
const DefaultBaseURL = "https://api.bitbucket.org/2.0"

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Workspace is the Bitbucket workspace slug owning the repositories.
	Workspace string

	// Username and AppPassword authenticate every request (HTTP basic).
	Username    string
	AppPassword string

	// BaseURL overrides the API root; empty selects DefaultBaseURL.
	BaseURL string

	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client

	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client talks to the Bitbucket Cloud 2.0 API for a single workspace.
// It implements plumber.HostingClient.
type Client struct {
	workspace   string
	username    string
	appPassword string
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Interface satisfaction is also asserted where the client is wired up;
// this one keeps the contract local to the package.
var _ plumber.HostingClient = (*Client)(nil)

// NewClient creates a Bitbucket client for one workspace.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Workspace == "" {
		return nil, fmt.Errorf("bitbucket: Workspace is required")
	}
	if config.Username == "" || config.AppPassword == "" {
		return nil, fmt.Errorf("bitbucket: Username and AppPassword are required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("bitbucket: invalid BaseURL %q: %w", baseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		workspace:   config.Workspace,
		username:    config.Username,
		appPassword: config.AppPassword,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// LatestCommit returns the newest commit hash on a branch.
func (c *Client) LatestCommit(ctx context.Context, repo, branch string) (string, error) {
	endpoint := c.repoURL(repo, "commits") + "?include=" + url.QueryEscape(branch)

	body, status, err := c.do(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return "", fmt.Errorf("bitbucket: listing commits for %s: %w", repo, err)
	}
	if err := apiErrorFrom(body, status); err != nil {
		return "", fmt.Errorf("bitbucket: listing commits for %s: %w", repo, err)
	}

	var commits commitsResponse
	if err := json.Unmarshal(body, &commits); err != nil {
		return "", fmt.Errorf("bitbucket: parsing commits response: %w", err)
	}
	if len(commits.Values) == 0 {
		return "", fmt.Errorf("%w: %s@%s", ErrNoCommits, repo, branch)
	}

	return commits.Values[0].Hash, nil
}

// PipelinesFile returns the raw bitbucket-pipelines.<ext> content at a commit.
func (c *Client) PipelinesFile(ctx context.Context, repo, commit, ext string) ([]byte, error) {
	endpoint := c.repoURL(repo, "src", commit, "bitbucket-pipelines."+ext)

	body, status, err := c.do(ctx, http.MethodGet, endpoint, "", nil)
	if err != nil {
		return nil, fmt.Errorf("bitbucket: fetching pipelines file for %s: %w", repo, err)
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: bitbucket-pipelines.%s in %s", ErrFileNotFound, ext, repo)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d fetching pipelines file for %s", ErrRemoteAPI, status, repo)
	}

	return body, nil
}

// CommitFile pushes a single-file change through the src endpoint,
// creating the target branch if it does not exist. Entries in
// DeleteFiles are removed in the same commit.
func (c *Client) CommitFile(ctx context.Context, repo string, commit plumber.CommitInput) error {
	var form bytes.Buffer
	w := multipart.NewWriter(&form)

	// A field named after the file path creates or updates that file;
	// "files" fields name paths to delete.
	if err := w.WriteField(commit.Path, commit.Content); err != nil {
		return fmt.Errorf("bitbucket: building commit form: %w", err)
	}
	if err := w.WriteField("message", commit.Message); err != nil {
		return fmt.Errorf("bitbucket: building commit form: %w", err)
	}
	if err := w.WriteField("branch", commit.Branch); err != nil {
		return fmt.Errorf("bitbucket: building commit form: %w", err)
	}
	for _, file := range commit.DeleteFiles {
		if err := w.WriteField("files", file); err != nil {
			return fmt.Errorf("bitbucket: building commit form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("bitbucket: building commit form: %w", err)
	}

	body, status, err := c.do(ctx, http.MethodPost, c.repoURL(repo, "src"), w.FormDataContentType(), &form)
	if err != nil {
		return fmt.Errorf("bitbucket: committing to %s: %w", repo, err)
	}
	if err := apiErrorFrom(body, status); err != nil {
		return fmt.Errorf("bitbucket: committing to %s: %w", repo, err)
	}

	c.logger.Debug("committed pipelines change", "repo", repo, "branch", commit.Branch)
	return nil
}

// CreatePullRequest opens a pull request for a cleanup branch and
// returns its web link, falling back to the title when the response
// carries no link.
func (c *Client) CreatePullRequest(ctx context.Context, repo string, pr plumber.PullRequestInput) (string, error) {
	reviewers := make([]reviewer, len(pr.Reviewers))
	for i, uuid := range pr.Reviewers {
		reviewers[i] = reviewer{UUID: uuid}
	}

	payload, err := json.Marshal(pullRequestBody{
		Title:     pr.Title,
		Source:    prSource{Branch: prBranch{Name: pr.SourceBranch}},
		Reviewers: reviewers,
	})
	if err != nil {
		return "", fmt.Errorf("bitbucket: building pull request payload: %w", err)
	}

	body, status, err := c.do(ctx, http.MethodPost, c.repoURL(repo, "pullrequests"), "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("bitbucket: opening pull request for %s: %w", repo, err)
	}
	if err := apiErrorFrom(body, status); err != nil {
		return "", fmt.Errorf("bitbucket: opening pull request for %s: %w", repo, err)
	}

	var created pullRequestResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("bitbucket: parsing pull request response: %w", err)
	}

	c.logger.Debug("opened pull request", "repo", repo, "branch", pr.SourceBranch)
	if created.Links.HTML.Href != "" {
		return created.Links.HTML.Href, nil
	}
	return created.Title, nil
}

// repoURL joins path parts under the workspace repository root.
func (c *Client) repoURL(repo string, parts ...string) string {
	segments := append([]string{c.baseURL, "repositories", c.workspace, repo}, parts...)
	return strings.Join(segments, "/")
}

// do performs one authenticated request and returns the response body
// and status code. Transport failures are returned as errors; HTTP
// error statuses are left to the caller, which knows the endpoint's
// error shape.
func (c *Client) do(ctx context.Context, method, endpoint, contentType string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, err
	}
	req.SetBasicAuth(c.username, c.appPassword)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return data, resp.StatusCode, nil
}

// apiErrorFrom surfaces Bitbucket's JSON error envelope as ErrRemoteAPI.
// Success statuses never carry an envelope and pass through.
func apiErrorFrom(body []byte, status int) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return fmt.Errorf("%w: %s", ErrRemoteAPI, envelope.Error.Message)
	}
	return fmt.Errorf("%w: status %d", ErrRemoteAPI, status)
}
