package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	generates int
	renders   int
}

func (h *countingPipelineHooks) OnGenerateStart(ctx context.Context, seeds, petals int) {
	h.generates++
}

func (h *countingPipelineHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	h.renders++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *countingCacheHooks) OnCacheHit(ctx context.Context, keyType string)  { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(ctx context.Context, keyType string) { h.misses++ }

func TestHookRegistration(t *testing.T) {
	defer Reset()

	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)

	ctx := context.Background()
	Pipeline().OnGenerateStart(ctx, 18, 12)
	Pipeline().OnGenerateStart(ctx, 6, 4)
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)

	if ph.generates != 2 {
		t.Errorf("generates = %d, want 2", ph.generates)
	}
	if ph.renders != 1 {
		t.Errorf("renders = %d, want 1", ph.renders)
	}
}

func TestCacheHooks(t *testing.T) {
	defer Reset()

	ch := &countingCacheHooks{}
	SetCacheHooks(ch)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "field")
	Cache().OnCacheMiss(ctx, "mesh")
	Cache().OnCacheMiss(ctx, "artifact")

	if ch.hits != 1 || ch.misses != 2 {
		t.Errorf("hits/misses = %d/%d, want 1/2", ch.hits, ch.misses)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)

	Pipeline().OnGenerateStart(context.Background(), 1, 1)
	if ph.generates != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}

func TestReset(t *testing.T) {
	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)
	Reset()

	Pipeline().OnGenerateStart(context.Background(), 1, 1)
	if ph.generates != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
