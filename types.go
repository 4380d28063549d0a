package plumber

// Document is the full text of a pipelines definition file. It is an
// immutable value: every edit returns a new Document and never mutates
// the receiver, so intermediate documents can be compared or discarded
// freely.
type Document string

// Lexical markers recognized by the core. A step's defining occurrence
// is "- step: &<name>" and each reference is "- step: *<name>".
const (
	// stepToken is the bare list-item token every step block starts with.
	stepToken = "- step:"

	// stepPrefix prefixes an anchor or alias marker to form the full
	// search string, e.g. "- step: &deploy".
	stepPrefix = stepToken + " "

	anchorSigil = "&"
	aliasSigil  = "*"

	// commentChar marks comment lines absorbed into a block's leading
	// indentation.
	commentChar = '#'
)

// Boundaries is the set of literal markers that terminate a step block.
// The zero value is not useful; start from DefaultBoundaries.
type Boundaries []string

// DefaultBoundaries returns the markers that can follow a step block in
// a Bitbucket pipelines file: another step, the pipelines section
// header, or a branches mapping.
func DefaultBoundaries() Boundaries {
	return Boundaries{stepToken, "pipelines:", "branches"}
}

// Step identifies one build step to remove, together with any files the
// step owns that should be deleted in the same commit (for example a
// scanner properties file that only that step reads).
type Step struct {
	Name  string
	Files []string
}

// Outcome classifies the result of cleaning one repository.
type Outcome string

const (
	// OutcomeRemoved means the step was removed and, unless the run was
	// a dry run, the change was committed and a pull request opened.
	OutcomeRemoved Outcome = "removed"

	// OutcomeSkipped means the repository's pipelines file has no anchor
	// for the step, so nothing was changed. Err wraps ErrStepNotFound.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means a remote operation failed; Err carries the cause.
	OutcomeFailed Outcome = "failed"
)

// RepoResult reports the cleanup outcome for a single repository.
type RepoResult struct {
	Repo        string
	Outcome     Outcome
	PullRequest string // PR link or title, empty for skipped/dry runs
	Err         error  // cause for skipped and failed outcomes, else nil
}

// CommitInput describes a single-file commit pushed through the hosting
// API. Branch is created by the commit if it does not exist.
type CommitInput struct {
	Branch      string
	Message     string
	Path        string
	Content     string
	DeleteFiles []string
}

// PullRequestInput describes a pull request to open for a cleanup branch.
type PullRequestInput struct {
	Title        string
	SourceBranch string
	Reviewers    []string // reviewer UUIDs
}
