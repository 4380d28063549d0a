// Package plumber removes named build steps from Bitbucket pipelines
// definition files by exact substring surgery, without parsing YAML.
//
// # Quick Start
//
// The text-editing core works on plain document values:
//
//	doc := plumber.Document(pipelinesYAML)
//	out, ok := plumber.RemoveStep(doc, "sonar-scan", plumber.DefaultBoundaries())
//	if !ok {
//	    // the step has no definition in this document
//	}
//
// RemoveStep deletes the step's anchor block ("- step: &name") and every
// alias block ("- step: *name"), leaving the rest of the document
// byte-for-byte unchanged. Block boundaries are found lexically: a block
// runs from its "- step:" line (including leading indentation and comment
// lines) to the next boundary marker.
//
// # Cleaning Repositories
//
// The Service orchestrates cleanup across remote repositories: it fetches
// each repository's pipelines file, removes the step, commits the result
// to a new branch, and opens a pull request:
//
//	svc := plumber.New(client,
//	    plumber.WithDryRun(dryRun),
//	    plumber.WithReviewers(reviewers),
//	)
//	results, err := svc.CleanRepositories(ctx, repos, plumber.Step{Name: "sonar-scan"})
//
// The client is any HostingClient implementation; the bundled CLI uses
// the Bitbucket Cloud 2.0 API.
//
// # What the Core Does Not Do
//
// No YAML is parsed and no schema is understood. The core recognizes
// exactly four lexical markers ("- step:", "pipelines:", "branches", and
// the "#" comment character) and edits by offset arithmetic. Documents
// whose steps are not expressed with "- step: &name" anchors are left
// untouched.
package plumber
