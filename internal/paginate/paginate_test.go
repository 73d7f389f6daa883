package paginate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/qbxml"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

func rec(name string) types.Record {
	return types.Record{"Customer": name}
}

func TestCollect_SingleBatch(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, st State) (Batch, error) {
		calls++
		assert.Equal(t, qbxml.IteratorStart, st.Iterator)
		assert.Equal(t, "", st.IteratorID)
		return Batch{
			Records: []types.Record{rec("a"), rec("b")},
			Iter:    qbxml.IteratorStatus{IteratorRemainingCount: 0},
		}, nil
	}

	records, err := Collect(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, records, 2)
}

func TestCollect_MultipleBatches(t *testing.T) {
	pages := []Batch{
		{Records: []types.Record{rec("a"), rec("b")}, Iter: qbxml.IteratorStatus{IteratorID: "{it}", IteratorRemainingCount: 3}},
		{Records: []types.Record{rec("c"), rec("d")}, Iter: qbxml.IteratorStatus{IteratorID: "{it}", IteratorRemainingCount: 1}},
		{Records: []types.Record{rec("e")}, Iter: qbxml.IteratorStatus{IteratorRemainingCount: 0}},
	}

	var seen []State
	fetch := func(ctx context.Context, st State) (Batch, error) {
		seen = append(seen, st)
		return pages[len(seen)-1], nil
	}

	records, err := Collect(context.Background(), fetch)
	require.NoError(t, err)

	// Two batches with records remaining, then the final empty-remaining
	// batch: exactly three fetches.
	require.Len(t, seen, 3)
	assert.Equal(t, qbxml.IteratorStart, seen[0].Iterator)
	assert.Equal(t, qbxml.IteratorContinue, seen[1].Iterator)
	assert.Equal(t, "{it}", seen[1].IteratorID)
	assert.Equal(t, qbxml.IteratorContinue, seen[2].Iterator)

	// Accumulation keeps batch order, then within-batch order.
	var names []string
	for _, r := range records {
		names = append(names, r["Customer"])
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names)
}

func TestCollect_FetchError(t *testing.T) {
	boom := errors.New("channel gone")
	calls := 0
	fetch := func(ctx context.Context, st State) (Batch, error) {
		calls++
		if calls == 2 {
			return Batch{}, boom
		}
		return Batch{
			Records: []types.Record{rec("a")},
			Iter:    qbxml.IteratorStatus{IteratorID: "x", IteratorRemainingCount: 5},
		}, nil
	}

	records, err := Collect(context.Background(), fetch)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, records, "partial accumulation is discarded on error")
}

func TestCollect_ContextCanceledBetweenBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	fetch := func(ctx context.Context, st State) (Batch, error) {
		calls++
		cancel()
		return Batch{
			Records: []types.Record{rec("a")},
			Iter:    qbxml.IteratorStatus{IteratorID: "x", IteratorRemainingCount: 9},
		}, nil
	}

	_, err := Collect(ctx, fetch)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "cancellation is observed before the next fetch")
}

func TestCollect_ContextCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetch := func(ctx context.Context, st State) (Batch, error) {
		t.Fatal("fetch must not run on a dead context")
		return Batch{}, nil
	}

	_, err := Collect(ctx, fetch)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStateNext(t *testing.T) {
	st := Start()

	next, ok := st.Next(qbxml.IteratorStatus{IteratorID: "{t}", IteratorRemainingCount: 42})
	require.True(t, ok)
	assert.Equal(t, qbxml.IteratorContinue, next.Iterator)
	assert.Equal(t, "{t}", next.IteratorID)

	_, ok = st.Next(qbxml.IteratorStatus{})
	assert.False(t, ok)
}
