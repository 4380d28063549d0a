package plumber

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyStepName = errors.New("step name cannot be empty")
	ErrStepNotFound  = errors.New("step has no anchor in document")

	// Repository cleanup errors.
	ErrNoDefaultBranch = errors.New("no default branch with commits")
	ErrNoPipelinesFile = errors.New("no pipelines file in repository")
	ErrCommitFailed    = errors.New("failed to commit pipelines change")
	ErrPullRequestOpen = errors.New("failed to open pull request")
)
