package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	plumber "github.com/alnah/go-plumber"
	"github.com/alnah/go-plumber/internal/bitbucket"
	"github.com/alnah/go-plumber/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrMissingCredentials = errors.New("credentials not set in environment")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrRepositoriesFailed = errors.New("repositories failed")
)

// Environment variables holding Bitbucket app-password credentials.
const (
	envUserID  = "BB_USER_ID"
	envAppPass = "BB_APP_PASS"
)

// run loads the config, builds the client and service, and cleans every
// configured step out of every configured repository.
func run(ctx context.Context, flags *cleanFlags, env *Environment) error {
	username := env.Getenv(envUserID)
	appPass := env.Getenv(envAppPass)
	if username == "" {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, envUserID)
	}
	if appPass == "" {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, envAppPass)
	}

	cfg, err := config.LoadConfig(flags.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(env, flags)

	if flags.timeout != "" {
		timeout, err := time.ParseDuration(flags.timeout)
		if err != nil || timeout <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	client, err := bitbucket.NewClient(bitbucket.ClientConfig{
		Workspace:   cfg.Workspace,
		Username:    username,
		AppPassword: appPass,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	svc := plumber.New(client,
		plumber.WithLogger(logger),
		plumber.WithDryRun(flags.dryRun),
		plumber.WithWorkers(resolveWorkers(flags.workers)),
		plumber.WithBranches(cfg.DefaultBranches...),
		plumber.WithReviewers(cfg.Reviewers),
	)

	var failures []error
	for _, step := range cfg.Steps {
		logger.Info("removing step from pipelines", "step", step.Name)

		results, err := svc.CleanRepositories(ctx, cfg.Repositories, plumber.Step{
			Name:  step.Name,
			Files: step.Files,
		})
		if err != nil {
			return fmt.Errorf("removing %s: %w", step.Name, err)
		}

		failures = append(failures, printResults(env, step.Name, results)...)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d %w: %w", len(failures), ErrRepositoriesFailed, errors.Join(failures...))
	}
	return nil
}

// printResults writes one summary line per repository and collects the
// failures.
func printResults(env *Environment, step string, results []plumber.RepoResult) []error {
	var failures []error
	for _, res := range results {
		switch res.Outcome {
		case plumber.OutcomeRemoved:
			if res.PullRequest != "" {
				fmt.Fprintf(env.Stdout, "%s: removed %s, opened %s\n", res.Repo, step, res.PullRequest)
			} else {
				fmt.Fprintf(env.Stdout, "%s: removed %s (dry run)\n", res.Repo, step)
			}
		case plumber.OutcomeSkipped:
			fmt.Fprintf(env.Stdout, "%s: %s not found, skipped\n", res.Repo, step)
		case plumber.OutcomeFailed:
			fmt.Fprintf(env.Stdout, "%s: failed: %v\n", res.Repo, res.Err)
			failures = append(failures, fmt.Errorf("%s: %w", res.Repo, res.Err))
		}
	}
	return failures
}

// newLogger builds the CLI logger: debug when verbose, errors only when
// quiet, info otherwise.
func newLogger(env *Environment, flags *cleanFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case flags.verbose:
		level = slog.LevelDebug
	case flags.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: level}))
}
