package plumber

import "log/slog"

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	boundaries Boundaries
	branches   []string
	extensions []string
	reviewers  []string
	workers    int
	dryRun     bool
}

// Defaults mirror Bitbucket conventions: repositories use main or
// master, and the pipelines file is bitbucket-pipelines.yaml or .yml.
var (
	defaultBranches   = []string{"main", "master"}
	defaultExtensions = []string{"yaml", "yml"}
)

const defaultWorkers = 4

// WithBoundaries replaces the boundary marker set used to delimit step
// blocks. Panics on an empty set (programmer error).
func WithBoundaries(b Boundaries) Option {
	if len(b) == 0 {
		panic("plumber: WithBoundaries requires at least one marker")
	}
	return func(s *Service) {
		s.cfg.boundaries = b
	}
}

// WithBranches sets the candidate default branches tried in order when
// resolving a repository's latest commit.
func WithBranches(branches ...string) Option {
	return func(s *Service) {
		if len(branches) > 0 {
			s.cfg.branches = branches
		}
	}
}

// WithReviewers sets the reviewer UUIDs added to every pull request.
func WithReviewers(uuids []string) Option {
	return func(s *Service) {
		s.cfg.reviewers = uuids
	}
}

// WithWorkers caps how many repositories are cleaned concurrently.
// Values below 1 select the default.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.cfg.workers = n
		}
	}
}

// WithDryRun computes every edit but skips commits and pull requests.
func WithDryRun(dry bool) Option {
	return func(s *Service) {
		s.cfg.dryRun = dry
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
