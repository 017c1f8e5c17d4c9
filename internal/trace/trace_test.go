package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevelAndShouldEmit(t *testing.T) {
	lvl, err := ParseLevel("DETAIL")
	if err != nil || lvl != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error")
	}
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeFile, true},
		{LevelError, ScopePass, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopePass, false},
		{LevelDebug, ScopePass, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Errorf("%v.ShouldEmit(%v) = %v", c.level, c.scope, got)
		}
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, root := BeginCtx(ctx, ScopeDriver, "decorate-dir")
	_, file := BeginCtx(ctx, ScopeFile, "file")
	file.WithExtra("lang", "c").End("a.c")
	_, pass := BeginCtx(ctx, ScopePass, "parse") // filtered at detail
	pass.End("")
	root.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var ev jsonEvent
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "file" || ev.Detail != "a.c" || ev.Extra["lang"] != "c" {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.ParentID != root.ID() {
		t.Fatalf("file span parent %d, want %d", ev.ParentID, root.ID())
	}
}

func TestRingTracerKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := 0; i < 5; i++ {
		Point(r, ScopeFile, "p", strings.Repeat("x", i), 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Detail != "xx" || snap[2].Detail != "xxxx" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 || !strings.Contains(buf.String(), "• p (xxxx)") {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatal("LevelOff must give the nop tracer")
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "cmd", 0).End("")
	ring, ok := AsRing(tr)
	if !ok || len(ring.Snapshot()) != 2 || !strings.Contains(buf.String(), "→ cmd") {
		t.Fatalf("both mode must write and remember, got %q", buf.String())
	}
	tr, err = New(Config{Level: LevelError, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := AsRing(tr); !ok {
		t.Fatal("error level keeps events in a ring")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 || r.Snapshot()[0].Kind != KindHeartbeat {
		t.Fatal("no heartbeat recorded")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat on a disabled tracer")
	}
}

func TestDisabledSpanIsInert(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 || s.End("") != 0 || s.WithExtra("k", "v") != s {
		t.Fatal("nop span must be inert")
	}
	var nilSpan *Span
	if nilSpan.End("") != 0 || nilSpan.ID() != 0 {
		t.Fatal("nil span must be inert")
	}
	if FromContext(context.Background()) != Nop || ParentID(context.Background()) != 0 {
		t.Fatal("empty context")
	}
}
