package strategy

import "context"

// Stage names a completed pipeline stage.
type Stage string

// Stage boundaries every variant reports, in order.
const (
	StageQuantize  Stage = "quantize"
	StageEdges     Stage = "edges"
	StageVectorize Stage = "vectorize"
)

// ProgressFunc receives a notification each time a stage completes.
// Implementations must be fast; they run on the pipeline goroutine.
type ProgressFunc func(stage Stage)

type progressKey struct{}

// WithProgress returns a context that delivers stage notifications to fn
// during Process.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

// notify reports a completed stage to the context's progress function, if
// any. Cancelled runs stop notifying: a caller that gave up does not want
// callbacks for partial stages.
func notify(ctx context.Context, stage Stage) {
	if ctx == nil || ctx.Err() != nil {
		return
	}
	if fn, ok := ctx.Value(progressKey{}).(ProgressFunc); ok && fn != nil {
		fn(stage)
	}
}
