package plumber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// HostingClient is the interface the service needs from the repository
// hosting API. The bundled internal/bitbucket client implements it.
type HostingClient interface {
	// LatestCommit returns the newest commit hash on a branch.
	LatestCommit(ctx context.Context, repo, branch string) (string, error)

	// PipelinesFile returns the raw bitbucket-pipelines.<ext> content
	// at a commit.
	PipelinesFile(ctx context.Context, repo, commit, ext string) ([]byte, error)

	// CommitFile pushes a single-file change, creating the target
	// branch if needed.
	CommitFile(ctx context.Context, repo string, commit CommitInput) error

	// CreatePullRequest opens a pull request and returns a link to it.
	CreatePullRequest(ctx context.Context, repo string, pr PullRequestInput) (string, error)
}

// Service removes a build step from the pipelines files of remote
// repositories: fetch, edit, commit to a cleanup branch, open a pull
// request. The text editing itself is the package-level RemoveStep.
type Service struct {
	client HostingClient
	logger *slog.Logger
	cfg    serviceConfig
}

// New creates a Service backed by the given hosting client.
// Use options to customize behavior (e.g., WithDryRun, WithReviewers).
func New(client HostingClient, opts ...Option) *Service {
	s := &Service{
		client: client,
		logger: slog.Default(),
		cfg: serviceConfig{
			boundaries: DefaultBoundaries(),
			branches:   defaultBranches,
			extensions: defaultExtensions,
			workers:    defaultWorkers,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CleanRepositories removes step from every named repository and
// reports one RepoResult per repository, in input order. Repositories
// are processed concurrently up to the configured worker count; a
// failure in one repository never aborts the others.
func (s *Service) CleanRepositories(ctx context.Context, repos []string, step Step) ([]RepoResult, error) {
	if step.Name == "" {
		return nil, ErrEmptyStepName
	}

	results := make([]RepoResult, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.workers)
	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			results[i] = s.cleanRepository(ctx, repo, step)
			return nil
		})
	}

	// Worker funcs never return errors; failures live in the results.
	_ = g.Wait()

	return results, nil
}

// cleanRepository runs the full cleanup flow for one repository.
func (s *Service) cleanRepository(ctx context.Context, repo string, step Step) RepoResult {
	s.logger.Info("beginning step removal", "repo", repo, "step", step.Name)

	commit, err := s.resolveCommit(ctx, repo)
	if err != nil {
		return RepoResult{Repo: repo, Outcome: OutcomeFailed, Err: err}
	}

	content, ext, err := s.fetchPipelines(ctx, repo, commit)
	if err != nil {
		return RepoResult{Repo: repo, Outcome: OutcomeFailed, Err: err}
	}

	edited, ok := RemoveStep(Document(content), step.Name, s.cfg.boundaries)
	if !ok {
		s.logger.Warn("step not found in pipelines", "repo", repo, "step", step.Name)
		return RepoResult{Repo: repo, Outcome: OutcomeSkipped, Err: fmt.Errorf("%w: %s", ErrStepNotFound, step.Name)}
	}

	if s.cfg.dryRun {
		s.logger.Info("dry run, skipping commit and pull request", "repo", repo, "step", step.Name)
		return RepoResult{Repo: repo, Outcome: OutcomeRemoved}
	}

	branch := "remove-" + step.Name
	path := "bitbucket-pipelines." + ext

	s.logger.Debug("committing change", "repo", repo, "branch", branch)
	err = s.client.CommitFile(ctx, repo, CommitInput{
		Branch:      branch,
		Message:     fmt.Sprintf("Remove %s from %s", step.Name, path),
		Path:        path,
		Content:     string(edited),
		DeleteFiles: step.Files,
	})
	if err != nil {
		return RepoResult{Repo: repo, Outcome: OutcomeFailed, Err: fmt.Errorf("%w: %w", ErrCommitFailed, err)}
	}

	s.logger.Debug("opening pull request", "repo", repo, "branch", branch)
	link, err := s.client.CreatePullRequest(ctx, repo, PullRequestInput{
		Title:        fmt.Sprintf("Remove %s from pipelines", step.Name),
		SourceBranch: branch,
		Reviewers:    s.cfg.reviewers,
	})
	if err != nil {
		return RepoResult{Repo: repo, Outcome: OutcomeFailed, Err: fmt.Errorf("%w: %w", ErrPullRequestOpen, err)}
	}

	return RepoResult{Repo: repo, Outcome: OutcomeRemoved, PullRequest: link}
}

// resolveCommit tries each candidate default branch in order and
// returns the first commit hash found.
func (s *Service) resolveCommit(ctx context.Context, repo string) (string, error) {
	var errs []error
	for _, branch := range s.cfg.branches {
		commit, err := s.client.LatestCommit(ctx, repo, branch)
		if err == nil {
			return commit, nil
		}
		s.logger.Debug("no commits on branch", "repo", repo, "branch", branch, "error", err)
		errs = append(errs, err)
	}
	return "", fmt.Errorf("%w: %w", ErrNoDefaultBranch, errors.Join(errs...))
}

// fetchPipelines tries each pipelines file extension in order and
// returns the first file found together with its extension.
func (s *Service) fetchPipelines(ctx context.Context, repo, commit string) ([]byte, string, error) {
	var errs []error
	for _, ext := range s.cfg.extensions {
		content, err := s.client.PipelinesFile(ctx, repo, commit, ext)
		if err == nil {
			return content, ext, nil
		}
		s.logger.Debug("pipelines file not found", "repo", repo, "ext", ext, "error", err)
		errs = append(errs, err)
	}
	return nil, "", fmt.Errorf("%w: %w", ErrNoPipelinesFile, errors.Join(errs...))
}
