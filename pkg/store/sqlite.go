package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"tableflip.dev/jotty/pkg/entry"
	"tableflip.dev/jotty/pkg/timeutil"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	date       INTEGER NOT NULL,
	idx        INTEGER NOT NULL,
	title      TEXT    NOT NULL DEFAULT '',
	importance INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (date, idx)
);

CREATE TABLE IF NOT EXISTS tasks (
	date             INTEGER NOT NULL,
	idx              INTEGER NOT NULL,
	title            TEXT    NOT NULL DEFAULT '',
	completion_level INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (date, idx)
);
`

// table names one of the two sequences and its tag column.
type table struct {
	name string
	tag  string
	list string
}

var (
	eventsTable = table{name: "events", tag: "importance", list: "event"}
	tasksTable  = table{name: "tasks", tag: "completion_level", list: "task"}
)

// SQLite is a durable Backend storing each sequence as rows keyed by
// (date, idx), where date is the Julian day number. Inserts and deletes run
// their reindexing in a single transaction. I/O failures are latched and
// the store then behaves as empty.
type SQLite struct {
	db   *sql.DB
	path string
	latch
}

var (
	_ Backend = (*SQLite)(nil)
	_ Watcher = (*SQLite)(nil)
)

// OpenSQLite opens (or creates) the database file at path and applies the
// schema.
func OpenSQLite(path string, opts ...Option) (*SQLite, error) {
	o := newOptions(opts)
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store: sqlite path is required")
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// One process, one writer.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	o.logger.Info("sqlite journal opened", slog.String("path", path))
	return &SQLite{db: db, path: filepath.Clean(path), latch: latch{logger: o.logger}}, nil
}

func (s *SQLite) Close() error {
	s.logger.Info("sqlite journal closed")
	return s.db.Close()
}

// Watch reports writes to the database file or its WAL. SQLite cannot say
// which day changed.
func (s *SQLite) Watch(ctx context.Context) (<-chan Change, error) {
	name := filepath.Base(s.path)
	return watchFiles(ctx, s.logger, filepath.Dir(s.path), false, func(path string) (Change, bool) {
		return Change{}, strings.HasPrefix(filepath.Base(path), name)
	})
}

func (s *SQLite) InsertEvent(day timeutil.Day, i int) error {
	return s.insert(eventsTable, day, i)
}

func (s *SQLite) InsertTask(day timeutil.Day, i int) error {
	return s.insert(tasksTable, day, i)
}

func (s *SQLite) DeleteEvent(day timeutil.Day, i int) error {
	return s.remove(eventsTable, day, i)
}

func (s *SQLite) DeleteTask(day timeutil.Day, i int) error {
	return s.remove(tasksTable, day, i)
}

func (s *SQLite) Event(day timeutil.Day, i int) (entry.Event, error) {
	title, tag, err := s.read(eventsTable, day, i)
	if err != nil {
		return entry.Event{}, err
	}
	return entry.Event{Title: title, Importance: importanceOf(tag)}, nil
}

func (s *SQLite) Task(day timeutil.Day, i int) (entry.Task, error) {
	title, tag, err := s.read(tasksTable, day, i)
	if err != nil {
		return entry.Task{}, err
	}
	return entry.Task{Title: title, CompletionLevel: completionOf(tag)}, nil
}

func (s *SQLite) ReplaceEvent(day timeutil.Day, i int, e entry.Event) error {
	if err := checkEvent(e); err != nil {
		return err
	}
	return s.replace(eventsTable, day, i, e.Title, int(e.Importance))
}

func (s *SQLite) ReplaceTask(day timeutil.Day, i int, t entry.Task) error {
	if err := checkTask(t); err != nil {
		return err
	}
	return s.replace(tasksTable, day, i, t.Title, int(t.CompletionLevel))
}

func (s *SQLite) EventsLen(day timeutil.Day) int {
	return s.count(eventsTable, day)
}

func (s *SQLite) TasksLen(day timeutil.Day) int {
	return s.count(tasksTable, day)
}

func (s *SQLite) Events(day timeutil.Day) iter.Seq[entry.Event] {
	return func(yield func(entry.Event) bool) {
		s.rows(eventsTable, day, func(title string, tag int) bool {
			return yield(entry.Event{Title: title, Importance: importanceOf(tag)})
		})
	}
}

func (s *SQLite) Tasks(day timeutil.Day) iter.Seq[entry.Task] {
	return func(yield func(entry.Task) bool) {
		s.rows(tasksTable, day, func(title string, tag int) bool {
			return yield(entry.Task{Title: title, CompletionLevel: completionOf(tag)})
		})
	}
}

func (s *SQLite) count(t table, day timeutil.Day) int {
	if s.faulted() {
		return 0
	}
	var n int
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE date = ?`, t.name)
	if err := s.db.QueryRow(q, day.Julian()).Scan(&n); err != nil {
		s.fail("count "+t.name, err)
		return 0
	}
	return n
}

// insert makes room at i and adds a blank row there. Rows are shifted
// through negative indices first so the primary key holds mid-statement.
func (s *SQLite) insert(t table, day timeutil.Day, i int) error {
	if s.faulted() {
		return nil
	}
	op := "insert " + t.list
	tx, err := s.db.Begin()
	if err != nil {
		s.fail(op, err)
		return nil
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	jd := day.Julian()
	var n int
	if err := tx.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE date = ?`, t.name), jd).Scan(&n); err != nil {
		s.fail(op, err)
		return nil
	}
	if i < 0 || i > n {
		return indexError("insert", t.list, i, n)
	}

	stmts := []struct {
		q    string
		args []any
	}{
		{fmt.Sprintf(`UPDATE %s SET idx = -(idx + 2) WHERE date = ? AND idx >= ?`, t.name), []any{jd, i}},
		{fmt.Sprintf(`UPDATE %s SET idx = -idx - 1 WHERE date = ? AND idx < 0`, t.name), []any{jd}},
		{fmt.Sprintf(`INSERT INTO %s (date, idx, title, %s) VALUES (?, ?, '', 0)`, t.name, t.tag), []any{jd, i}},
	}
	for _, st := range stmts {
		if _, err := tx.Exec(st.q, st.args...); err != nil {
			s.fail(op, err)
			return nil
		}
	}
	if err := tx.Commit(); err != nil {
		s.fail(op, err)
	}
	return nil
}

// remove deletes row i and closes the gap.
func (s *SQLite) remove(t table, day timeutil.Day, i int) error {
	if s.faulted() {
		return nil
	}
	op := "delete " + t.list
	tx, err := s.db.Begin()
	if err != nil {
		s.fail(op, err)
		return nil
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	jd := day.Julian()
	var n int
	if err := tx.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE date = ?`, t.name), jd).Scan(&n); err != nil {
		s.fail(op, err)
		return nil
	}
	if i < 0 || i >= n {
		return indexError("delete", t.list, i, n)
	}

	stmts := []struct {
		q    string
		args []any
	}{
		{fmt.Sprintf(`DELETE FROM %s WHERE date = ? AND idx = ?`, t.name), []any{jd, i}},
		{fmt.Sprintf(`UPDATE %s SET idx = -idx WHERE date = ? AND idx > ?`, t.name), []any{jd, i}},
		{fmt.Sprintf(`UPDATE %s SET idx = -idx - 1 WHERE date = ? AND idx < 0`, t.name), []any{jd}},
	}
	for _, st := range stmts {
		if _, err := tx.Exec(st.q, st.args...); err != nil {
			s.fail(op, err)
			return nil
		}
	}
	if err := tx.Commit(); err != nil {
		s.fail(op, err)
	}
	return nil
}

func (s *SQLite) read(t table, day timeutil.Day, i int) (string, int, error) {
	if s.faulted() {
		return "", 0, nil
	}
	var (
		title string
		tag   int
	)
	q := fmt.Sprintf(`SELECT title, %s FROM %s WHERE date = ? AND idx = ?`, t.tag, t.name)
	err := s.db.QueryRow(q, day.Julian(), i).Scan(&title, &tag)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", 0, indexError("read", t.list, i, s.count(t, day))
	case err != nil:
		s.fail("read "+t.list, err)
		return "", 0, nil
	}
	return title, tag, nil
}

func (s *SQLite) replace(t table, day timeutil.Day, i int, title string, tag int) error {
	if s.faulted() {
		return nil
	}
	q := fmt.Sprintf(`UPDATE %s SET title = ?, %s = ? WHERE date = ? AND idx = ?`, t.name, t.tag)
	res, err := s.db.Exec(q, title, tag, day.Julian(), i)
	if err != nil {
		s.fail("replace "+t.list, err)
		return nil
	}
	n, err := res.RowsAffected()
	if err != nil {
		s.fail("replace "+t.list, err)
		return nil
	}
	if n == 0 {
		return indexError("replace", t.list, i, s.count(t, day))
	}
	return nil
}

type row struct {
	title string
	tag   int
}

// rows reads the whole day before yielding so the single connection is free
// while the caller runs.
func (s *SQLite) rows(t table, day timeutil.Day, yield func(title string, tag int) bool) {
	for _, r := range s.load(t, day) {
		if !yield(r.title, r.tag) {
			return
		}
	}
}

func (s *SQLite) load(t table, day timeutil.Day) []row {
	if s.faulted() {
		return nil
	}
	q := fmt.Sprintf(`SELECT title, %s FROM %s WHERE date = ? ORDER BY idx`, t.tag, t.name)
	rows, err := s.db.Query(q, day.Julian())
	if err != nil {
		s.fail("iterate "+t.name, err)
		return nil
	}
	defer rows.Close()
	var out []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.title, &r.tag); err != nil {
			s.fail("iterate "+t.name, err)
			return nil
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		s.fail("iterate "+t.name, err)
		return nil
	}
	return out
}

func importanceOf(v int) entry.Importance {
	i := entry.Importance(v)
	if !i.Valid() {
		panic(fmt.Errorf("%w: importance %d", ErrCorrupt, v))
	}
	return i
}

func completionOf(v int) entry.CompletionLevel {
	c := entry.CompletionLevel(v)
	if !c.Valid() {
		panic(fmt.Errorf("%w: completion level %d", ErrCorrupt, v))
	}
	return c
}
