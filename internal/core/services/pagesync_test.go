package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sectrack/internal/core/domain"
)

func newTestPageSync(fetcher *fakeFetcher, sink *memory.RecordSink) *PageSync {
	return NewPageSync(fetcher, NewRelevanceFilter(securityLabel), NewExtractor(), sink)
}

func TestPageSync_StopsAtCursor(t *testing.T) {
	fetcher := newFakeFetcher(
		page(true, pr(150, "open"), pr(120, "open"), pr(90, "open"), pr(80, "open")),
		page(false, pr(70, "open")),
	)
	sink := memory.NewRecordSink()

	result, err := newTestPageSync(fetcher, sink).Run(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, int64(150), result.HighWatermark)
	assert.Equal(t, 2, result.Seen)
	assert.Equal(t, 1, result.Pages)

	pages, _ := fetcher.calls()
	assert.Equal(t, []int{0}, pages, "no page is fetched after the cursor is reached")
}

func TestPageSync_FollowsNextPages(t *testing.T) {
	fetcher := newFakeFetcher(
		page(true, pr(5, "open"), pr(4, "open")),
		page(true, pr(3, "open"), pr(2, "open")),
		page(false, pr(1, "open")),
	)

	result, err := newTestPageSync(fetcher, memory.NewRecordSink()).Run(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, int64(5), result.HighWatermark)
	assert.Equal(t, 5, result.Seen)
	assert.Equal(t, 3, result.Pages)

	pages, _ := fetcher.calls()
	assert.Equal(t, []int{0, 2, 3}, pages)
}

func TestPageSync_EmitsRelevantAndTracksOpen(t *testing.T) {
	fetcher := newFakeFetcher(page(false,
		pr(10, "open", securityLabel),
		pr(9, "open", "6.topic: rust"),
		pr(8, "closed", securityLabel),
		pr(7, "open", "x", securityLabel),
	))
	sink := memory.NewRecordSink()

	result, err := newTestPageSync(fetcher, sink).Run(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, []int64{10, 8, 7}, sink.IDs())
	assert.Equal(t, 3, result.Relevant)
	assert.Equal(t, []domain.OpenItem{openItem(10), openItem(7)}, result.Discovered.Items())
}

func TestPageSync_CursorNeverDecreases(t *testing.T) {
	tests := []struct {
		name   string
		cursor int64
		pages  []domain.Page
		want   int64
	}{
		{"empty listing", 100, []domain.Page{page(false)}, 100},
		{"empty listing first run", 0, []domain.Page{page(false)}, 0},
		{"only older items", 200, []domain.Page{page(true, pr(150, "open"))}, 200},
		{"equal to cursor", 150, []domain.Page{page(false, pr(150, "open"))}, 150},
		{"newer items", 100, []domain.Page{page(false, pr(101, "open"))}, 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newFakeFetcher(tt.pages...)

			result, err := newTestPageSync(fetcher, memory.NewRecordSink()).Run(context.Background(), tt.cursor)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.HighWatermark)
			assert.GreaterOrEqual(t, result.HighWatermark, tt.cursor)
		})
	}
}

func TestPageSync_EmptyPageWithNext(t *testing.T) {
	fetcher := newFakeFetcher(page(true), page(false, pr(3, "open")))

	result, err := newTestPageSync(fetcher, memory.NewRecordSink()).Run(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.HighWatermark)
	assert.Equal(t, 2, result.Pages)
}

func TestPageSync_FetchError(t *testing.T) {
	boom := errors.New("connection reset")
	fetcher := newFakeFetcher(page(true, pr(5, "open", securityLabel)))
	fetcher.pageErrs[2] = boom

	result, err := newTestPageSync(fetcher, memory.NewRecordSink()).Run(context.Background(), 0)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch page 2")
}

func TestPageSync_FirstPageErrorNamesPageOne(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.pageErrs[0] = errors.New("bad gateway")

	_, err := newTestPageSync(fetcher, memory.NewRecordSink()).Run(context.Background(), 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch page 1")
}

func TestPageSync_SinkError(t *testing.T) {
	boom := errors.New("sink closed")
	fetcher := newFakeFetcher(page(false, pr(5, "open", securityLabel)))

	_, err := newTestPageSync(fetcher, memory.NewFailingRecordSink(boom)).Run(context.Background(), 0)

	assert.ErrorIs(t, err, boom)
}

func TestPageSync_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher := newFakeFetcher(page(false, pr(1, "open")))

	_, err := newTestPageSync(fetcher, memory.NewRecordSink()).Run(ctx, 0)

	assert.ErrorIs(t, err, context.Canceled)
	pages, _ := fetcher.calls()
	assert.Empty(t, pages)
}

func TestNextPage(t *testing.T) {
	assert.Equal(t, 2, nextPage(0))
	assert.Equal(t, 2, nextPage(1))
	assert.Equal(t, 3, nextPage(2))
}
