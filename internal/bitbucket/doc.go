// Package bitbucket is a minimal Bitbucket Cloud 2.0 API client
// covering exactly the operations the plumber service needs: resolving
// a branch's latest commit, fetching a pipelines file, committing a
// single-file change, and opening a pull request.
//
// It deliberately models nothing else of the API: no pagination, no
// retries, no rate-limit handling.
package bitbucket
