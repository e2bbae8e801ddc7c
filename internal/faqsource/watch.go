package faqsource

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/agenthands/faqdesk/internal/core/faq"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the FAQ file into store whenever it changes, until ctx is
// done. A reload that fails to parse or validate is logged and the current
// table is kept. onReload, if set, receives the new entry count.
func Watch(ctx context.Context, path string, store *faq.Store, onReload func(int)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// watch the directory so editors that replace the file are still seen
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	target := filepath.Clean(path)
	// editors tend to emit several events per save
	const settle = 100 * time.Millisecond
	var timer <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer = time.After(settle)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("faq watcher error", slog.Any("error", err))

		case <-timer:
			timer = nil
			n, err := Populate(ctx, File{Path: path}, store)
			if err != nil {
				slog.Error("faq reload failed, keeping previous table", slog.String("path", path), slog.Any("error", err))
				continue
			}
			if onReload != nil {
				onReload(n)
			}
		}
	}
}
