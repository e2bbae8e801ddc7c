package faq

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/agenthands/faqdesk/internal/core/common"
	"github.com/agenthands/faqdesk/internal/core/model"
)

// ConfigError reports malformed FAQ data at load time.
type ConfigError struct {
	Index  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("faq entry %d: %s", e.Index, e.Reason)
}

// Store holds the FAQ table. Load swaps in a whole new table, so concurrent
// readers always see either the old or the new set, never a mix.
type Store struct {
	entries atomic.Pointer[[]model.FaqEntry]
}

func NewStore() *Store {
	s := &Store{}
	empty := []model.FaqEntry{}
	s.entries.Store(&empty)
	return s
}

// Load replaces the table. Keywords are normalized; entries without any get
// keywords derived from the question. On error the previous table is kept.
func (s *Store) Load(entries []model.FaqEntry) error {
	table := make([]model.FaqEntry, 0, len(entries))
	for i, e := range entries {
		q := strings.TrimSpace(e.Question)
		a := strings.TrimSpace(e.Answer)
		if q == "" && a == "" {
			return &ConfigError{Index: i, Reason: "missing both question and answer"}
		}

		kw := common.Keywords(e.Keywords)
		if len(kw) == 0 {
			kw = common.DeriveKeywords(q)
		}
		table = append(table, model.FaqEntry{Question: q, Answer: a, Keywords: kw})
	}

	s.entries.Store(&table)
	return nil
}

// All returns the current table in store order. The slice is shared with
// other readers and must not be modified.
func (s *Store) All() []model.FaqEntry {
	return *s.entries.Load()
}

func (s *Store) Len() int {
	return len(s.All())
}
