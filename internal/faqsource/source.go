package faqsource

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/agenthands/faqdesk/internal/config"
	"github.com/agenthands/faqdesk/internal/core/dedupe"
	"github.com/agenthands/faqdesk/internal/core/faq"
	"github.com/agenthands/faqdesk/internal/core/model"
	"github.com/agenthands/faqdesk/internal/driver"
)

// Source yields the full FAQ table. Loading is wholesale; there is no
// incremental update.
type Source interface {
	Load(ctx context.Context) ([]model.FaqEntry, error)
}

// Writer is a Source that can also be overwritten wholesale.
type Writer interface {
	Source
	Replace(ctx context.Context, entries []model.FaqEntry) error
}

// Static serves a fixed list.
type Static []model.FaqEntry

func (s Static) Load(ctx context.Context) ([]model.FaqEntry, error) {
	return s, nil
}

// File reads a TOML, YAML, JSON or Q:/A: text file chosen by extension.
type File struct {
	Path string
}

func (f File) Load(ctx context.Context) ([]model.FaqEntry, error) {
	return ReadFile(f.Path)
}

// Memgraph reads :Faq nodes through a graph driver.
type Memgraph struct {
	Driver driver.GraphDriver
}

func (m Memgraph) Load(ctx context.Context) ([]model.FaqEntry, error) {
	entries, err := driver.ListFAQ(ctx, m.Driver)
	if err != nil {
		return nil, fmt.Errorf("failed to load faq from memgraph: %w", err)
	}
	return entries, nil
}

func (m Memgraph) Replace(ctx context.Context, entries []model.FaqEntry) error {
	if err := driver.SaveFAQ(ctx, m.Driver, entries); err != nil {
		return fmt.Errorf("failed to save faq to memgraph: %w", err)
	}
	return nil
}

// New builds the source named by cfg.FAQ.Source. The returned close function
// releases any connection the source holds.
func New(ctx context.Context, cfg *config.Config) (Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.FAQ.Source {
	case "", "default":
		return Static(faq.Defaults()), noop, nil

	case "file":
		return File{Path: cfg.FAQ.Path}, noop, nil

	case "memgraph":
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to memgraph: %w", err)
		}
		if err := d.BuildIndices(ctx); err != nil {
			return nil, nil, err
		}
		return Memgraph{Driver: d}, func() error { return d.Close(context.Background()) }, nil

	case "sqlite":
		db, err := sql.Open("sqlite", cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite faq source: %w", err)
		}
		return &SQLite{DB: db, Table: cfg.SQLite.Table}, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported faq source: %s", cfg.FAQ.Source)
	}
}

// Populate loads src into store and returns the number of entries. Entries
// that can never be matched because an earlier one shadows them are logged.
func Populate(ctx context.Context, src Source, store *faq.Store) (int, error) {
	entries, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := store.Load(entries); err != nil {
		return 0, err
	}
	slog.Info("faq table loaded", slog.Int("entries", len(entries)))
	for _, p := range dedupe.ResolveDuplicates(store.All()) {
		slog.Warn("faq entry is unreachable",
			slog.Int("entry", p.Duplicate),
			slog.Int("shadowed_by", p.Kept),
			slog.String("reason", p.Reason),
		)
	}
	return len(entries), nil
}
