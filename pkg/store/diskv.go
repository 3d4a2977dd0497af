package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/timeutil"
)

// Diskv is a durable Backend keeping one JSON file per day under
// <base>/<yyyy>/<mm>/<dd>. Every mutation rewrites the day file; diskv
// writes through a temp file and rename so a day is never half written.
// Faults latch exactly as they do for SQLite. Reads always go to disk so
// that edits made by another process are seen.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
	latch
}

var (
	_ Backend = (*Diskv)(nil)
	_ Watcher = (*Diskv)(nil)
)

// OpenDiskv opens the journal rooted at basePath, creating it if needed.
func OpenDiskv(basePath string, opts ...Option) (*Diskv, error) {
	o := newOptions(opts)
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("store: diskv base path is required")
	}
	tmp := filepath.Join(basePath, ".tmp")
	if err := os.MkdirAll(tmp, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           tmp,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
	})
	o.logger.Info("diskv journal opened", slog.String("path", basePath))
	return &Diskv{d: d, basePath: basePath, latch: latch{logger: o.logger}}, nil
}

// Watch reports day files written or removed under the base path.
func (p *Diskv) Watch(ctx context.Context) (<-chan Change, error) {
	return watchFiles(ctx, p.logger, p.basePath, true, p.changeFor)
}

// changeFor maps <base>/2025/10/19 to that day.
func (p *Diskv) changeFor(path string) (Change, bool) {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return Change{}, false
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 3 {
		return Change{}, false
	}
	key := pathToKeyTransform(&diskv.PathKey{Path: parts[:2], FileName: parts[2]})
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return Change{}, false
	}
	return Change{Day: timeutil.DayOf(t), Known: true}, true
}

func (p *Diskv) Close() error {
	p.logger.Info("diskv journal closed", slog.String("path", p.basePath))
	return nil
}

// read loads a day. A missing file is an empty day.
func (p *Diskv) read(day timeutil.Day) *dayEntry {
	d := &dayEntry{}
	if p.faulted() {
		return d
	}
	key := day.Key()
	val, err := p.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return d
	}
	if err != nil {
		p.fail("read "+key, err)
		return &dayEntry{}
	}
	if err := json.Unmarshal(val, d); err != nil {
		p.fail("decode "+key, err)
		return &dayEntry{}
	}
	if err := d.validate(); err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	return d
}

func (p *Diskv) write(day timeutil.Day, d *dayEntry) {
	key := day.Key()
	data, err := json.Marshal(d)
	if err != nil {
		p.fail("encode "+key, err)
		return
	}
	if err := p.d.Write(key, data); err != nil {
		p.fail("write "+key, err)
	}
}

// update applies fn to the stored day and writes the result back when fn
// succeeds.
func (p *Diskv) update(day timeutil.Day, fn func(d *dayEntry) error) error {
	if p.faulted() {
		return nil
	}
	d := p.read(day)
	if p.faulted() {
		return nil
	}
	if err := fn(d); err != nil {
		return err
	}
	p.write(day, d)
	return nil
}

func (p *Diskv) InsertEvent(day timeutil.Day, i int) error {
	return p.update(day, func(d *dayEntry) (err error) {
		d.Events, err = insertAt(d.Events, i, "event")
		return err
	})
}

func (p *Diskv) InsertTask(day timeutil.Day, i int) error {
	return p.update(day, func(d *dayEntry) (err error) {
		d.Tasks, err = insertAt(d.Tasks, i, "task")
		return err
	})
}

func (p *Diskv) DeleteEvent(day timeutil.Day, i int) error {
	return p.update(day, func(d *dayEntry) (err error) {
		d.Events, err = deleteAt(d.Events, i, "event")
		return err
	})
}

func (p *Diskv) DeleteTask(day timeutil.Day, i int) error {
	return p.update(day, func(d *dayEntry) (err error) {
		d.Tasks, err = deleteAt(d.Tasks, i, "task")
		return err
	})
}

func (p *Diskv) ReplaceEvent(day timeutil.Day, i int, e entry.Event) error {
	if err := checkEvent(e); err != nil {
		return err
	}
	return p.update(day, func(d *dayEntry) error {
		return replaceAt(d.Events, i, e, "event")
	})
}

func (p *Diskv) ReplaceTask(day timeutil.Day, i int, t entry.Task) error {
	if err := checkTask(t); err != nil {
		return err
	}
	return p.update(day, func(d *dayEntry) error {
		return replaceAt(d.Tasks, i, t, "task")
	})
}

func (p *Diskv) Event(day timeutil.Day, i int) (entry.Event, error) {
	if p.faulted() {
		return entry.Event{}, nil
	}
	return readAt(p.read(day).Events, i, "event")
}

func (p *Diskv) Task(day timeutil.Day, i int) (entry.Task, error) {
	if p.faulted() {
		return entry.Task{}, nil
	}
	return readAt(p.read(day).Tasks, i, "task")
}

func (p *Diskv) EventsLen(day timeutil.Day) int {
	return len(p.read(day).Events)
}

func (p *Diskv) TasksLen(day timeutil.Day) int {
	return len(p.read(day).Tasks)
}

func (p *Diskv) Events(day timeutil.Day) iter.Seq[entry.Event] {
	return func(yield func(entry.Event) bool) {
		for e := range seqOf(p.read(day).Events) {
			if !yield(e) {
				return
			}
		}
	}
}

func (p *Diskv) Tasks(day timeutil.Day) iter.Seq[entry.Task] {
	return func(yield func(entry.Task) bool) {
		for t := range seqOf(p.read(day).Tasks) {
			if !yield(t) {
				return
			}
		}
	}
}

// keyToPathTransform maps 2025-10-19 to 2025/10/19.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
