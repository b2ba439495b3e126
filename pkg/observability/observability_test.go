package observability

import (
	"context"
	"testing"
	"time"
)

type recordingLayoutHooks struct {
	starts    int
	completes int
	lastKind  string
}

func (r *recordingLayoutHooks) OnLayoutStart(_ context.Context, kind string, _ int) {
	r.starts++
	r.lastKind = kind
}

func (r *recordingLayoutHooks) OnLayoutComplete(_ context.Context, kind string, _ int, _ time.Duration, _ error) {
	r.completes++
	r.lastKind = kind
}

func (r *recordingLayoutHooks) OnRenderStart(context.Context, string) {}
func (r *recordingLayoutHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Errorf("default layout hooks are %T", Layout())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("default cache hooks are %T", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("default HTTP hooks are %T", HTTP())
	}

	// No-op hooks must be callable without panicking.
	ctx := context.Background()
	Layout().OnLayoutStart(ctx, "logo", 3)
	Cache().OnCacheMiss(ctx, "render")
	HTTP().OnRequest(ctx, "GET", "/render")
}

func TestSetLayoutHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingLayoutHooks{}
	SetLayoutHooks(rec)

	ctx := context.Background()
	Layout().OnLayoutStart(ctx, "structure", 9)
	Layout().OnLayoutComplete(ctx, "structure", 12, time.Millisecond, nil)

	if rec.starts != 1 || rec.completes != 1 || rec.lastKind != "structure" {
		t.Errorf("recorded %d starts, %d completes, kind %q", rec.starts, rec.completes, rec.lastKind)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingLayoutHooks{}
	SetLayoutHooks(rec)
	SetLayoutHooks(nil)

	if Layout() != LayoutHooks(rec) {
		t.Error("nil registration replaced existing hooks")
	}
}
