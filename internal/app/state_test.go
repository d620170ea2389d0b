package app

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzstudio/invoicedesk/internal/ingest"
	"github.com/zzstudio/invoicedesk/internal/layout"
	"github.com/zzstudio/invoicedesk/internal/ledger"
	"github.com/zzstudio/invoicedesk/internal/query"
)

func queued(path string) ingest.QueuedInvoice {
	return ingest.QueuedInvoice{ID: uuid.New(), Path: path, Record: ledger.NewInvoiceRecord()}
}

func TestNewStateClampsCopies(t *testing.T) {
	grid, _ := layout.ParseGridShape("1x2")
	st := NewState(grid, 0)
	assert.Equal(t, 1, st.Copies)
}

func TestStateTransitionsLeaveOriginalIntact(t *testing.T) {
	grid, _ := layout.ParseGridShape("1x2")
	base := NewState(grid, 2)

	withQueue := base.WithQueued(queued("a.pdf"), queued("b.pdf"))
	require.Len(t, withQueue.Queue, 2)
	assert.Empty(t, base.Queue, "transitions must not mutate the previous state")

	more := withQueue.WithQueued(queued("c.pdf"))
	assert.Len(t, withQueue.Queue, 2)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, more.QueuePaths())
}

func TestWithoutQueued(t *testing.T) {
	grid, _ := layout.ParseGridShape("1x1")
	a, b := queued("a.pdf"), queued("b.pdf")
	st := NewState(grid, 1).WithQueued(a, b)

	st = st.WithoutQueued(a.ID.String())
	assert.Equal(t, []string{"b.pdf"}, st.QueuePaths())

	// Unknown IDs are a no-op.
	st = st.WithoutQueued(uuid.New().String())
	assert.Len(t, st.Queue, 1)
}

func TestWithClearedQueue(t *testing.T) {
	grid, _ := layout.ParseGridShape("1x1")
	st := NewState(grid, 1).WithQueued(queued("a.pdf")).WithClearedQueue()
	assert.Empty(t, st.Queue)
}

func TestWithLayoutIgnoresInvalidCopies(t *testing.T) {
	grid1, _ := layout.ParseGridShape("1x2")
	grid2, _ := layout.ParseGridShape("2x2")

	st := NewState(grid1, 2).WithLayout(grid2, 0)
	assert.Equal(t, "2x2", st.Grid.Label)
	assert.Equal(t, 2, st.Copies)

	st = st.WithLayout(grid2, 3)
	assert.Equal(t, 3, st.Copies)
}

func TestWithViewSettings(t *testing.T) {
	grid, _ := layout.ParseGridShape("1x1")
	spec := &query.SortSpec{Column: query.ColAmount, Descending: true}

	st := NewState(grid, 1).
		WithFilter(query.Filter{Seller: "粮油"}).
		WithGrouping(query.GroupBySeller).
		WithSort(spec)

	assert.Equal(t, "粮油", st.Filter.Seller)
	assert.Equal(t, query.GroupBySeller, st.Grouping)
	assert.Equal(t, spec, st.Sort)
}
