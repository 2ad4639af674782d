package driven

import (
	"context"

	"github.com/custodia-labs/sectrack/internal/core/domain"
)

// PullRequestFetcher reads pull requests from the upstream repository.
// Implementations absorb rate limiting internally: a rate-limited request
// blocks until it succeeds rather than returning an error.
type PullRequestFetcher interface {
	// FetchPage returns one page of the listing of all pull requests
	// (open and closed), newest first. A page <= 0 requests the first page.
	FetchPage(ctx context.Context, page int) (*domain.Page, error)

	// FetchPullRequest returns a single pull request by its display number.
	FetchPullRequest(ctx context.Context, number int) (*domain.PullRequest, error)
}
