// =============================================================================
// QBXML to CSV Export - Pagination Driver
// =============================================================================
//
// List-style queries return records in iterator batches. The driver is a
// small state machine:
//
//   Start ──fetch──▶ (remaining > 0?) ──yes──▶ Continue{iteratorID} ──fetch──▶ ...
//                         │
//                         no
//                         ▼
//                        Done
//
// The state is a value passed between iterations, never ambient mutable
// package state, so the loop is testable against a fake fetch function.
// Batches are strictly sequential: exactly one outstanding request at a
// time, and accumulated records keep batch order, then within-batch order.
// No deduplication happens; QuickBooks does not repeat records within one
// iterator session.
//
// =============================================================================

package paginate

import (
	"context"

	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/qbxml"
	"github.com/ginjaninja78/QBXML-to-CSV-export/internal/types"
)

// State is the cursor position of the batch loop. The zero value is not
// meaningful; loops begin at Start().
type State struct {
	// Iterator is the iterator mode attribute for the next request:
	// qbxml.IteratorStart or qbxml.IteratorContinue.
	Iterator string

	// IteratorID is the cursor token echoed on Continue requests. Empty on
	// the Start request. The token lives only for the duration of one batch
	// loop; it is never persisted.
	IteratorID string
}

// Start is the initial state of every batch loop.
func Start() State {
	return State{Iterator: qbxml.IteratorStart}
}

// Next inspects a response's pagination trailer and returns the follow-up
// state. ok is false when the iterator is exhausted (remaining count absent
// or zero), which terminates the loop.
func (s State) Next(iter qbxml.IteratorStatus) (next State, ok bool) {
	if iter.IteratorRemainingCount <= 0 {
		return State{}, false
	}
	return State{
		Iterator:   qbxml.IteratorContinue,
		IteratorID: iter.IteratorID,
	}, true
}

// Batch is one fetched page: its flattened records plus the pagination
// trailer that decides whether the loop continues.
type Batch struct {
	Records []types.Record
	Iter    qbxml.IteratorStatus
}

// FetchFunc issues one batch request for the given state and returns the
// flattened page. Implementations wrap the channel query and the entity
// adapter's FlattenBatch.
type FetchFunc func(ctx context.Context, st State) (Batch, error)

// Collect drives the batch loop to completion and concatenates all records
// in retrieval order. A fetch error or context cancellation aborts the loop;
// the partial accumulation is discarded and only the error is returned.
func Collect(ctx context.Context, fetch FetchFunc) ([]types.Record, error) {
	var all []types.Record

	st := Start()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, err := fetch(ctx, st)
		if err != nil {
			return nil, err
		}
		all = append(all, batch.Records...)

		next, ok := st.Next(batch.Iter)
		if !ok {
			return all, nil
		}
		st = next
	}
}
