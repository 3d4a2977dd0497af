package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func waitForChange(t *testing.T, ch <-chan Change, match func(Change) bool) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case c, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed early")
			}
			if match(c) {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change")
		}
	}
}

func sqliteAt(t *testing.T, path string) *SQLite {
	t.Helper()
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDiskvWatchSeesOtherWriter(t *testing.T) {
	base := filepath.Join(t.TempDir(), "journal")
	mine, err := OpenDiskv(base)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// The month directory exists before watching starts.
	seedTasks(t, mine, day1, "first")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := mine.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	theirs, err := OpenDiskv(base)
	if err != nil {
		t.Fatalf("open second: %v", err)
	}
	seedEvents(t, theirs, day2, "from elsewhere")

	waitForChange(t, ch, func(c Change) bool { return c.Known && c.Day == day2 })
	if n := mine.EventsLen(day2); n != 1 {
		t.Fatalf("expected the other writer's event to be visible, got %d", n)
	}
}

func TestDiskvChangeFor(t *testing.T) {
	d := &Diskv{basePath: "/j"}
	if c, ok := d.changeFor(filepath.Join("/j", "2025", "10", "19")); !ok || !c.Known || c.Day != day1 {
		t.Fatalf("expected change for %s, got %+v %v", day1, c, ok)
	}
	for _, p := range []string{"/j/.tmp/diskv-123", "/j/2025/10", "/j/2025/xx/19", "/elsewhere/2025/10/19"} {
		if _, ok := d.changeFor(p); ok {
			t.Fatalf("expected %s to be ignored", p)
		}
	}
}

func TestSQLiteWatchSeesOtherWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "j.db")
	mine := sqliteAt(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := mine.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	theirs := sqliteAt(t, path)
	seedTasks(t, theirs, day1, "from elsewhere")

	waitForChange(t, ch, func(c Change) bool { return !c.Known })
	if n := mine.TasksLen(day1); n != 1 {
		t.Fatalf("expected the other writer's task to be visible, got %d", n)
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	d, err := OpenDiskv(filepath.Join(t.TempDir(), "journal"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := d.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestThrottleCoalesces(t *testing.T) {
	var (
		mu   sync.Mutex
		sent []Change
	)
	send := func(c Change) {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, c)
	}
	th := newChangeThrottle(20 * time.Millisecond)
	for i := 0; i < 10; i++ {
		th.Enqueue(Change{Day: day1, Known: true}, send)
	}
	th.Enqueue(Change{}, send)
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	if len(sent) != 2 {
		t.Fatalf("expected 2 coalesced changes, got %d", len(sent))
	}
	sent = nil
	mu.Unlock()

	th.Enqueue(Change{}, send)
	th.Stop()
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if len(sent) != 0 {
		t.Fatalf("expected nothing after stop, got %d", len(sent))
	}
}
