// Package advisor fetches optional commentary for trace steps from an
// external service. Commentary is decoration: failures are logged and
// skipped, and steps are never modified.
package advisor

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"shunt/internal/engine"
	"shunt/internal/logx"
)

// Request describes the step to comment on.
type Request struct {
	Expression string `json:"expression"`
	Mode       string `json:"mode"`
	StepIndex  int    `json:"stepIndex"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

// Advisor returns a short comment for one step.
type Advisor interface {
	Comment(ctx context.Context, req Request) (string, error)
}

// Func adapts a function to Advisor.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Comment(ctx context.Context, req Request) (string, error) { return f(ctx, req) }

// AnnotateOptions bound the fan-out.
type AnnotateOptions struct {
	// MaxSteps limits how many steps are sent; <= 0 sends all.
	MaxSteps int
	// Jobs bounds concurrent requests; <= 0 means 4.
	Jobs int
}

// Annotate asks adv about each step of res and returns the comments it
// obtained, keyed by step index. Failed or empty comments are absent.
// It returns when every request has finished or ctx is done.
func Annotate(ctx context.Context, adv Advisor, expr string, res *engine.Result, opts AnnotateOptions) map[int]string {
	out := make(map[int]string)
	if adv == nil || res == nil {
		return out
	}
	logger := logx.FromContext(ctx)
	steps := res.Steps
	if opts.MaxSteps > 0 && len(steps) > opts.MaxSteps {
		steps = steps[:opts.MaxSteps]
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = 4
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(jobs)
	for _, st := range steps {
		req := Request{
			Expression: expr,
			Mode:       res.Mode.String(),
			StepIndex:  st.Index,
			Title:      st.Title,
			Detail:     st.Detail,
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			text, err := adv.Comment(ctx, req)
			if err != nil {
				logger.Debug("advisor comment skipped", "step", req.StepIndex, "err", err)
				return nil
			}
			if text == "" {
				return nil
			}
			mu.Lock()
			out[req.StepIndex] = text
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
