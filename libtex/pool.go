package libtex

import (
	"time"

	"golang.org/x/exp/slices"

	"gltex/libgl"
)

// Depth renderbuffers are shared across render targets of the same size:
// their content is transient per draw, so (width,height) is the only
// compatibility requirement. The pool holds at most one renderbuffer per
// distinct size and has no capacity bound; stale entries are reclaimed by
// sweeps instead of per entry timers.

type rbKey struct {
	width, height int
}

type pooledRenderbuffer struct {
	rb       *libgl.Renderbuffer
	lastUsed time.Time
}

// acquireRenderbuffer returns a depth renderbuffer for the given size,
// reusing a pooled one when possible. Every acquisition refreshes the
// entry's timestamp and opportunistically sweeps stale siblings.
func (ctx *Context) acquireRenderbuffer(width, height int) *libgl.Renderbuffer {
	if !ctx.poolingEnabled {
		if ctx.scratch == nil {
			ctx.scratch = libgl.NewRenderbuffer(ctx.GL)
		}
		if ctx.scratch.Width != width || ctx.scratch.Height != height {
			ctx.scratch.AllocateDepth(width, height)
		}
		return ctx.scratch
	}

	now := ctx.now()
	key := rbKey{width, height}
	entry, ok := ctx.pool[key]
	if !ok {
		rb := libgl.NewRenderbuffer(ctx.GL)
		rb.AllocateDepth(width, height)
		entry = &pooledRenderbuffer{rb: rb}
		ctx.pool[key] = entry
	}
	entry.lastUsed = now

	ctx.SweepRenderbuffers(now)
	return entry.rb
}

// SweepRenderbuffers releases pooled renderbuffers that have not been used
// for the configured idle threshold. It runs on every acquisition; callers
// with long idle phases can also invoke it directly.
func (ctx *Context) SweepRenderbuffers(now time.Time) {
	var stale []rbKey
	for key, entry := range ctx.pool {
		if now.Sub(entry.lastUsed) >= ctx.poolTTL {
			stale = append(stale, key)
		}
	}
	// Deterministic release order, mostly for the sake of debug traces.
	slices.SortFunc(stale, func(a, b rbKey) int {
		if a.width != b.width {
			return a.width - b.width
		}
		return a.height - b.height
	})
	for _, key := range stale {
		ctx.pool[key].rb.Delete()
		delete(ctx.pool, key)
	}
}

// PooledRenderbuffers reports the current number of pooled entries.
func (ctx *Context) PooledRenderbuffers() int {
	return len(ctx.pool)
}
