package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agenthands/faqdesk/internal/core/model"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS decision_log (
	id         TEXT PRIMARY KEY,
	query_text TEXT NOT NULL,
	kind       TEXT NOT NULL,
	source     TEXT NOT NULL,
	answer     TEXT NOT NULL,
	score      REAL NOT NULL,
	matched    TEXT,
	reason     TEXT,
	created_at TEXT NOT NULL
)`

// Entry is one logged decision.
type Entry struct {
	Query    string
	Decision model.Decision
}

// Log appends decisions to a SQLite table so escalated queries can be
// reviewed by support staff.
type Log struct {
	db *sql.DB
}

// Open opens (or creates) the log database at path.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	l, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// New wraps an existing connection and creates the table if needed.
func New(db *sql.DB) (*Log, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create decision_log: %w", err)
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

func (l *Log) Record(ctx context.Context, query string, d model.Decision) error {
	created := d.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO decision_log (id, query_text, kind, source, answer, score, matched, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		query,
		string(d.Kind),
		d.Source,
		d.Text,
		d.Score,
		nullIfEmpty(d.MatchedQuestion),
		nullIfEmpty(d.Trigger),
		created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log decision: %w", err)
	}
	return nil
}

// Recent returns up to limit decisions, newest first. An empty kind matches
// every kind.
func (l *Log) Recent(ctx context.Context, kind model.Kind, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, query_text, kind, source, answer, score, matched, reason, created_at
		 FROM decision_log
		 WHERE ? = '' OR kind = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		string(kind), string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query decision_log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                Entry
			kindStr, created string
			matched, trigger sql.NullString
		)
		err := rows.Scan(&e.Decision.ID, &e.Query, &kindStr, &e.Decision.Source, &e.Decision.Text,
			&e.Decision.Score, &matched, &trigger, &created)
		if err != nil {
			return nil, fmt.Errorf("scan decision_log: %w", err)
		}
		e.Decision.Kind = model.Kind(kindStr)
		e.Decision.MatchedQuestion = matched.String
		e.Decision.Trigger = trigger.String
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.Decision.CreatedAt = t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
