package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"shunt/internal/logx"
)

// Status is the state of one batch item.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Event reports progress of one batch item.
type Event struct {
	Index  int
	Status Status
}

// BatchItem is the slot of one expression in a batch.
type BatchItem struct {
	Index      int
	Expression string
	Outcome    *Outcome
	Err        error
}

// BatchOptions add fan-out settings to Options.
type BatchOptions struct {
	Options
	// Jobs bounds concurrent conversions; <= 0 means GOMAXPROCS.
	Jobs int
	// Events, when set, receives progress. ConvertBatch never closes it.
	Events chan<- Event
}

// ConvertBatch converts every expression with at most opts.Jobs workers.
// Items come back in input order. A failing expression records its error
// in its own slot and does not stop the others; only cancellation of ctx
// makes ConvertBatch return an error.
func ConvertBatch(ctx context.Context, exprs []string, opts BatchOptions) ([]BatchItem, error) {
	items := make([]BatchItem, len(exprs))
	if len(exprs) == 0 {
		return items, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	logger := logx.FromContext(ctx)
	logger.Debug("batch started", "expressions", len(exprs), "jobs", min(jobs, len(exprs)))

	// Slots are written by exactly one goroutine each; no lock needed.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(exprs)))

	for i, expr := range exprs {
		items[i] = BatchItem{Index: i, Expression: expr}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			emit(gctx, opts.Events, Event{Index: i, Status: StatusWorking})
			out, err := Convert(gctx, expr, opts.Options)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				items[i].Err = err
				emit(gctx, opts.Events, Event{Index: i, Status: StatusError})
				return nil
			}
			items[i].Outcome = out
			emit(gctx, opts.Events, Event{Index: i, Status: StatusDone})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}

func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}
