package observability

import (
	"context"
	"testing"
	"time"
)

type recordingEngineHooks struct {
	NoopEngineHooks
	starts int
}

func (h *recordingEngineHooks) OnSimulationStart(context.Context, string, int) { h.starts++ }

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestDefaultHooksAreNoops(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Engine().OnSimulationStart(ctx, "nodes", 10)
	Engine().OnSimulationComplete(ctx, "nodes", 300, time.Second, nil)
	Render().OnRenderStart(ctx, "svg")
	Render().OnRenderComplete(ctx, "svg", 1024, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "scene")
	Cache().OnCacheSet(ctx, "scene", 2048)
}

func TestSetEngineHooks(t *testing.T) {
	defer Reset()

	h := &recordingEngineHooks{}
	SetEngineHooks(h)
	Engine().OnSimulationStart(context.Background(), "topics", 5)
	if h.starts != 1 {
		t.Errorf("starts = %d, want 1", h.starts)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	h := &recordingCacheHooks{}
	SetCacheHooks(h)
	ctx := context.Background()
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheMiss(ctx, "scene")
	if h.hits != 1 || h.misses != 2 {
		t.Errorf("hits=%d misses=%d", h.hits, h.misses)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	defer Reset()

	h := &recordingEngineHooks{}
	SetEngineHooks(h)
	SetEngineHooks(nil)
	Engine().OnSimulationStart(context.Background(), "nodes", 1)
	if h.starts != 1 {
		t.Error("nil registration replaced the active hooks")
	}
}

func TestReset(t *testing.T) {
	h := &recordingEngineHooks{}
	SetEngineHooks(h)
	Reset()
	Engine().OnSimulationStart(context.Background(), "nodes", 1)
	if h.starts != 0 {
		t.Error("Reset did not restore the no-op hooks")
	}
}
