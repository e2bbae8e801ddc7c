package faqsource

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/agenthands/faqdesk/internal/core/model"
	_ "modernc.org/sqlite"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite reads rows (question, answer, keywords) ordered by rowid. Keywords
// are stored as a comma-separated string.
type SQLite struct {
	DB    *sql.DB
	Table string
}

func (s *SQLite) table() (string, error) {
	t := s.Table
	if t == "" {
		t = "faq"
	}
	if !tableName.MatchString(t) {
		return "", fmt.Errorf("invalid faq table name %q", t)
	}
	return t, nil
}

// EnsureSchema creates the FAQ table if it does not exist.
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	t, err := s.table()
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+t+` (
		question TEXT NOT NULL DEFAULT '',
		answer   TEXT NOT NULL DEFAULT '',
		keywords TEXT NOT NULL DEFAULT ''
	)`)
	if err != nil {
		return fmt.Errorf("create faq table: %w", err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context) ([]model.FaqEntry, error) {
	t, err := s.table()
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT question, answer, keywords FROM `+t+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query faq table: %w", err)
	}
	defer rows.Close()

	var entries []model.FaqEntry
	for rows.Next() {
		var q, a, kw sql.NullString
		if err := rows.Scan(&q, &a, &kw); err != nil {
			return nil, fmt.Errorf("scan faq row: %w", err)
		}
		entries = append(entries, model.FaqEntry{
			Question: q.String,
			Answer:   a.String,
			Keywords: splitKeywords(kw.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faq rows: %w", err)
	}
	return entries, nil
}

// Replace overwrites the table with entries in one transaction, creating it
// first if needed.
func (s *SQLite) Replace(ctx context.Context, entries []model.FaqEntry) error {
	t, err := s.table()
	if err != nil {
		return err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
		return fmt.Errorf("clear faq table: %w", err)
	}
	for i, e := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO `+t+` (question, answer, keywords) VALUES (?, ?, ?)`,
			e.Question, e.Answer, strings.Join(e.Keywords, ","),
		)
		if err != nil {
			return fmt.Errorf("insert faq %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
