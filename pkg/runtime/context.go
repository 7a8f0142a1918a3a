package runtime

import (
	"context"
)

type activeKey struct{}

// withActive returns a child context that marks rt as the active runtime
func withActive(ctx context.Context, rt *ScopedRuntime) context.Context {
	return context.WithValue(ctx, activeKey{}, rt)
}

// Active returns the runtime that is active for the given context, ie. the runtime whose scoped run is executing the
// build step that ctx was handed to. Returns nil outside of a scoped run.
func Active(ctx context.Context) *ScopedRuntime {
	if ctx == nil {
		return nil
	}
	rt, _ := ctx.Value(activeKey{}).(*ScopedRuntime)
	return rt
}
