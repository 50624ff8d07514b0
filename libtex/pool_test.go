package libtex

import (
	"testing"
	"time"
)

// fakeClock drives the pool's eviction logic deterministically.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newPoolContext(t *testing.T) (*Context, *fakeClock) {
	ctx, _ := newTestContext(t)
	clock := &fakeClock{now: time.Unix(1000, 0)}
	ctx.now = clock.Now
	return ctx, clock
}

func TestAcquireReusesMatchingSize(t *testing.T) {
	ctx, b := newTestContext(t)

	first := ctx.acquireRenderbuffer(256, 256)
	second := ctx.acquireRenderbuffer(256, 256)
	if first != second {
		t.Errorf("same size produced distinct renderbuffers")
	}
	if calls := b.Named("CreateRenderbuffer"); len(calls) != 1 {
		t.Errorf("got %d renderbuffer allocations, want 1", len(calls))
	}
}

func TestAcquireKeysOnDimensions(t *testing.T) {
	ctx, _ := newTestContext(t)

	a := ctx.acquireRenderbuffer(256, 128)
	b := ctx.acquireRenderbuffer(128, 256)
	if a == b {
		t.Errorf("transposed sizes shared a renderbuffer")
	}
	if n := ctx.PooledRenderbuffers(); n != 2 {
		t.Errorf("pool holds %d entries, want 2", n)
	}
}

func TestSweepEvictsIdleEntries(t *testing.T) {
	ctx, clock := newPoolContext(t)

	ctx.acquireRenderbuffer(64, 64)
	ctx.acquireRenderbuffer(128, 128)

	clock.Advance(DefaultRenderbufferTTL - time.Second)
	ctx.SweepRenderbuffers(ctx.now())
	if n := ctx.PooledRenderbuffers(); n != 2 {
		t.Fatalf("entries evicted before the idle threshold, %d left", n)
	}

	clock.Advance(2 * time.Second)
	ctx.SweepRenderbuffers(ctx.now())
	if n := ctx.PooledRenderbuffers(); n != 0 {
		t.Errorf("pool holds %d entries after the idle threshold, want 0", n)
	}
}

func TestAcquireRefreshesIdleTimer(t *testing.T) {
	ctx, clock := newPoolContext(t)

	ctx.acquireRenderbuffer(64, 64)
	clock.Advance(DefaultRenderbufferTTL - time.Second)
	// Touch the entry right before it would expire.
	ctx.acquireRenderbuffer(64, 64)
	clock.Advance(2 * time.Second)
	ctx.SweepRenderbuffers(ctx.now())
	if n := ctx.PooledRenderbuffers(); n != 1 {
		t.Errorf("refreshed entry was evicted")
	}
}

func TestAcquireSweepsStaleSiblings(t *testing.T) {
	ctx, clock := newPoolContext(t)

	ctx.acquireRenderbuffer(64, 64)
	clock.Advance(DefaultRenderbufferTTL + time.Second)
	ctx.acquireRenderbuffer(128, 128)

	if n := ctx.PooledRenderbuffers(); n != 1 {
		t.Errorf("pool holds %d entries, want only the fresh one", n)
	}
	if _, ok := ctx.pool[rbKey{128, 128}]; !ok {
		t.Errorf("fresh entry was evicted instead of the stale one")
	}
}

func TestSweepHonorsCustomTTL(t *testing.T) {
	ctx, clock := newPoolContext(t)
	ctx.SetRenderbufferTTL(time.Second)

	ctx.acquireRenderbuffer(64, 64)
	clock.Advance(time.Second)
	ctx.SweepRenderbuffers(ctx.now())
	if n := ctx.PooledRenderbuffers(); n != 0 {
		t.Errorf("custom TTL ignored, %d entries left", n)
	}
}

func TestPoolingDisabledUsesScratchBuffer(t *testing.T) {
	ctx, b := newTestContext(t)
	ctx.SetRenderbufferPooling(false)

	first := ctx.acquireRenderbuffer(64, 64)
	second := ctx.acquireRenderbuffer(64, 64)
	if first != second {
		t.Errorf("scratch renderbuffer was not reused")
	}
	if calls := b.Named("NamedRenderbufferStorage"); len(calls) != 1 {
		t.Fatalf("got %d storage allocations, want 1", len(calls))
	}

	ctx.acquireRenderbuffer(128, 128)
	if calls := b.Named("NamedRenderbufferStorage"); len(calls) != 2 {
		t.Errorf("size change did not reallocate the scratch buffer")
	}
	if n := ctx.PooledRenderbuffers(); n != 0 {
		t.Errorf("scratch mode still pooled %d entries", n)
	}
}

func TestContextDeleteReleasesPool(t *testing.T) {
	ctx, b := newTestContext(t)

	ctx.acquireRenderbuffer(64, 64)
	ctx.acquireRenderbuffer(128, 128)
	b.Reset()

	ctx.Delete()
	if calls := b.Named("DeleteRenderbuffer"); len(calls) != 2 {
		t.Errorf("got %d renderbuffer deletions, want 2", len(calls))
	}
}
