package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

const securityLabel = DefaultSecurityLabel

// fakeFetcher implements driven.PullRequestFetcher over canned pages.
// pages[0] answers the first page request, pages[1] page 2 and so on.
type fakeFetcher struct {
	mu       sync.Mutex
	pages    []domain.Page
	items    map[int]domain.PullRequest
	pageErrs map[int]error
	itemErrs map[int]error

	pageCalls []int
	itemCalls []int

	// beforePage, if set, runs at the start of every FetchPage.
	beforePage func(ctx context.Context) error
}

var _ driven.PullRequestFetcher = (*fakeFetcher)(nil)

func newFakeFetcher(pages ...domain.Page) *fakeFetcher {
	return &fakeFetcher{
		pages:    pages,
		items:    make(map[int]domain.PullRequest),
		pageErrs: make(map[int]error),
		itemErrs: make(map[int]error),
	}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, page int) (*domain.Page, error) {
	if f.beforePage != nil {
		if err := f.beforePage(ctx); err != nil {
			return nil, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls = append(f.pageCalls, page)

	if err := f.pageErrs[page]; err != nil {
		return nil, err
	}
	idx := displayPage(page) - 1
	if idx >= len(f.pages) {
		return &domain.Page{}, nil
	}
	p := f.pages[idx]
	return &p, nil
}

func (f *fakeFetcher) FetchPullRequest(_ context.Context, number int) (*domain.PullRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.itemCalls = append(f.itemCalls, number)

	if err := f.itemErrs[number]; err != nil {
		return nil, err
	}
	pr, ok := f.items[number]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pr, nil
}

func (f *fakeFetcher) setItem(pr domain.PullRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[pr.Number] = pr
}

func (f *fakeFetcher) calls() (pages, items []int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pageCalls...), append([]int(nil), f.itemCalls...)
}

// pr builds a pull request whose number is derived from its id.
func pr(id int64, state string, labels ...string) domain.PullRequest {
	return domain.PullRequest{
		ID:     id,
		Number: numberOf(id),
		Title:  "item",
		State:  state,
		Labels: labels,
		URL:    "https://github.com/NixOS/nixpkgs/pull/item",
	}
}

func numberOf(id int64) int {
	return int(id) + 1000
}

func openItem(id int64) domain.OpenItem {
	return domain.OpenItem{ID: id, Number: numberOf(id)}
}

func page(hasNext bool, prs ...domain.PullRequest) domain.Page {
	return domain.Page{PullRequests: prs, HasNext: hasNext}
}
