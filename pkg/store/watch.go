package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/jotty/pkg/timeutil"
)

// Change reports that journal files changed on disk. Writes made by this
// process are reported too. Day is only meaningful when Known is set.
type Change struct {
	Day   timeutil.Day
	Known bool
}

// Watcher is implemented by backends whose files another process can
// modify while the journal is open.
type Watcher interface {
	// Watch streams changes until ctx is cancelled. Callers should drain the
	// channel; it is closed when ctx is done or the watcher fails.
	Watch(ctx context.Context) (<-chan Change, error)
}

const watchDelay = 100 * time.Millisecond

// watchFiles watches base (and, when recursive, every directory below it)
// and sends the Change classify derives from each touched path. Paths
// classify rejects are ignored.
func watchFiles(ctx context.Context, logger *slog.Logger, base string, recursive bool, classify func(path string) (Change, bool)) (<-chan Change, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("watcher close", "err", err)
			}
		})
	}

	dirs := []string{base}
	if recursive {
		if dirs, err = collectDirs(base); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: enumerate directories: %w", err)
		}
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	changes := make(chan Change, 64)

	go func() {
		defer close(changes)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(c Change) {
			select {
			case changes <- c:
			default:
				// The consumer redraws everything on any change; dropping
				// during a burst loses nothing.
			}
		}

		throttle := newChangeThrottle(watchDelay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "err", err)
				throttle.Enqueue(Change{}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if recursive && evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found {
							if err := watcher.Add(dir); err != nil {
								logger.Warn("watch directory", "dir", dir, "err", err)
							} else {
								watched[dir] = struct{}{}
							}
						}
						continue
					}
				}
				if c, ok := classify(evt.Name); ok {
					throttle.Enqueue(c, send)
				}
			}
		}
	}()

	return changes, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// changeThrottle coalesces bursts of file events so the UI redraws once per
// burst instead of once per write.
type changeThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Change]struct{}
	delay   time.Duration
	stopped bool
}

func newChangeThrottle(delay time.Duration) *changeThrottle {
	return &changeThrottle{
		delay:   delay,
		pending: make(map[Change]struct{}),
	}
}

func (t *changeThrottle) Enqueue(c Change, send func(Change)) {
	t.mu.Lock()
	t.pending[c] = struct{}{}
	if t.timer == nil && !t.stopped {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

// flush sends under the lock so nothing is sent once Stop has returned;
// send must not block.
func (t *changeThrottle) flush(send func(Change)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := t.pending
	t.pending = make(map[Change]struct{})
	t.timer = nil
	if t.stopped {
		return
	}
	for c := range pending {
		send(c)
	}
}

func (t *changeThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
