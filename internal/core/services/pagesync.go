package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/logger"
)

// PageSyncResult is the outcome of one paginated sync.
type PageSyncResult struct {
	// HighWatermark is the cursor to persist. Never below the input cursor.
	HighWatermark int64

	// Discovered holds relevant pull requests seen open, in listing order.
	Discovered *domain.OpenSet

	// Seen counts pull requests newer than the input cursor.
	Seen int

	// Relevant counts records emitted.
	Relevant int

	// Pages counts listing pages fetched.
	Pages int
}

// PageSync walks the pull request listing from newest to oldest until it
// reaches the cursor or runs out of pages.
type PageSync struct {
	fetcher   driven.PullRequestFetcher
	filter    *RelevanceFilter
	extractor *Extractor
	sink      driven.RecordSink
}

// NewPageSync creates a paginated sync.
func NewPageSync(
	fetcher driven.PullRequestFetcher,
	filter *RelevanceFilter,
	extractor *Extractor,
	sink driven.RecordSink,
) *PageSync {
	return &PageSync{
		fetcher:   fetcher,
		filter:    filter,
		extractor: extractor,
		sink:      sink,
	}
}

// Run processes every pull request with an ID above cursor.
//
// The listing is newest first, so the first ID seen is the highest and
// becomes the new watermark. The walk stops at the first ID at or below
// cursor without fetching further pages.
func (p *PageSync) Run(ctx context.Context, cursor int64) (*PageSyncResult, error) {
	result := &PageSyncResult{
		HighWatermark: cursor,
		Discovered:    domain.NewOpenSet(),
	}

	var (
		firstID  int64
		haveHigh bool
	)

	// page 0 requests the first page without a page parameter
	for page := 0; ; page = nextPage(page) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		listing, err := p.fetcher.FetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", displayPage(page), err)
		}
		result.Pages++

		reachedCursor := false
		for i := range listing.PullRequests {
			pr := &listing.PullRequests[i]

			if !haveHigh {
				firstID = pr.ID
				haveHigh = true
			}

			if pr.ID <= cursor {
				logger.Debug("reached cursor %d at pull request %d", cursor, pr.ID)
				reachedCursor = true
				break
			}
			result.Seen++

			if !p.filter.IsRelevant(pr) {
				continue
			}

			record := p.extractor.Extract(pr)
			if err := p.sink.Emit(ctx, record); err != nil {
				return nil, fmt.Errorf("emit pull request %d: %w", pr.ID, err)
			}
			result.Relevant++

			if !pr.IsClosed() {
				result.Discovered.Add(domain.OpenItem{ID: pr.ID, Number: pr.Number})
			}
		}

		if reachedCursor || !listing.HasNext {
			break
		}
	}

	if haveHigh && firstID > cursor {
		result.HighWatermark = firstID
	}

	logger.Info("synced %d pages: %d new, %d relevant, cursor %d -> %d",
		result.Pages, result.Seen, result.Relevant, cursor, result.HighWatermark)

	return result, nil
}

// nextPage returns the page after page. The first page is requested
// without a page number, so the second is page 2.
func nextPage(page int) int {
	if page <= 0 {
		return 2
	}
	return page + 1
}

func displayPage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}
