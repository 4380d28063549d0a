package bitbucket

import "errors"

// Sentinel errors for API operations.
var (
	ErrNoCommits    = errors.New("branch has no commits")
	ErrFileNotFound = errors.New("file not found at commit")
	ErrRemoteAPI    = errors.New("bitbucket api error")
)
