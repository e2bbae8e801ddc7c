package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/agenthands/faqdesk/internal/config"
	"github.com/agenthands/faqdesk/internal/core/common"
	"github.com/agenthands/faqdesk/internal/core/escalation"
	"github.com/agenthands/faqdesk/internal/core/faq"
	"github.com/agenthands/faqdesk/internal/core/match"
	"github.com/agenthands/faqdesk/internal/core/model"
	"github.com/agenthands/faqdesk/internal/llm"
	"github.com/agenthands/faqdesk/internal/metrics"
	"github.com/google/uuid"
)

// DecisionRecorder persists decisions for later review.
type DecisionRecorder interface {
	Record(ctx context.Context, query string, d model.Decision) error
}

type Options struct {
	ConfidenceThreshold float64
	EscalationNotice    string
	FallbackNotice      string
	// FAQContext is how many entries are quoted in the model prompt; 0 sends
	// the raw query.
	FAQContext int
	// UseIndex matches through an inverted index rebuilt once per store
	// snapshot instead of scanning every entry.
	UseIndex bool
}

// Resolver routes a query to an FAQ answer, a model answer or escalation.
// It keeps no per-query state; the store is the only shared data.
type Resolver struct {
	Store    *faq.Store
	Matcher  *match.Matcher
	Detector *escalation.Detector
	Model    llm.Completer
	Recorder DecisionRecorder
	Metrics  *metrics.Metrics
	Options  Options

	UUIDGenerator func() string
	Now           func() time.Time

	index atomic.Pointer[match.Index]
}

func NewResolver(store *faq.Store, completer llm.Completer, cfg config.ResolverConfig, faqContext int) *Resolver {
	return &Resolver{
		Store:    store,
		Matcher:  match.NewMatcher(match.TieBreak(cfg.TieBreak)),
		Detector: escalation.NewDetector(cfg.EscalationTerms, cfg.ComplexityTokenLimit, cfg.HedgeTerms),
		Model:    completer,
		Options: Options{
			ConfidenceThreshold: cfg.ConfidenceThreshold,
			EscalationNotice:    cfg.EscalationNotice,
			FallbackNotice:      cfg.FallbackNotice,
			FAQContext:          faqContext,
			UseIndex:            cfg.UseIndex,
		},
		UUIDGenerator: func() string { return uuid.New().String() },
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

// Resolve always returns a Decision; model failures become escalations.
func (r *Resolver) Resolve(ctx context.Context, query string) model.Decision {
	d := r.decide(ctx, query)
	d.ID = r.UUIDGenerator()
	d.CreatedAt = r.Now()

	r.Metrics.RecordDecision(string(d.Kind), d.Source, d.Score)
	if r.Recorder != nil {
		if err := r.Recorder.Record(ctx, query, d); err != nil {
			slog.Error("failed to record decision", slog.String("id", d.ID), slog.Any("error", err))
		}
	}
	return d
}

func (r *Resolver) decide(ctx context.Context, query string) model.Decision {
	// 1. Keyword escalation short-circuits everything else
	if hit, term := r.Detector.Keyword(query); hit {
		slog.Info("query escalated", slog.String("trigger", term))
		return r.escalate(model.SourceEscalation, r.Options.EscalationNotice, "keyword:"+term, 0)
	}

	// 2. Match against the current FAQ snapshot
	entries := r.Store.All()
	res := r.match(query, entries)

	// 3. Confident FAQ answer
	if res.Entry != nil && res.Score >= r.Options.ConfidenceThreshold {
		return model.Decision{
			Kind:            model.KindFAQAnswer,
			Text:            res.Entry.Answer,
			Source:          model.SourceFAQ,
			Score:           res.Score,
			MatchedQuestion: res.Entry.Question,
		}
	}

	// 4. Long queries with no FAQ overlap at all go to a human
	if r.Detector.Complexity(len(common.Normalize(query)), res.Score) {
		slog.Info("query escalated", slog.String("trigger", "complexity"))
		return r.escalate(model.SourceEscalation, r.Options.EscalationNotice, "complexity", res.Score)
	}

	// 5. Ask the model
	answer, err := r.Model.Complete(ctx, r.prompt(query, entries))
	if err != nil {
		slog.Error("model call failed, escalating", slog.Any("error", err))
		return r.escalate(model.SourceError, r.Options.FallbackNotice, "model_error", res.Score)
	}

	if hit, phrase := r.Detector.Hedge(answer); hit {
		slog.Info("model answer hedged, escalating", slog.String("trigger", phrase))
		return r.escalate(model.SourceEscalation, r.Options.EscalationNotice, "hedge:"+phrase, res.Score)
	}

	return model.Decision{
		Kind:   model.KindModelAnswer,
		Text:   answer,
		Source: model.SourceModel,
		Score:  res.Score,
	}
}

func (r *Resolver) match(query string, entries []model.FaqEntry) model.MatchResult {
	if !r.Options.UseIndex {
		return r.Matcher.Match(query, entries)
	}

	idx := r.index.Load()
	if idx == nil || !idx.Covers(entries) {
		idx = match.BuildIndex(entries, r.Matcher.TieBreak)
		r.index.Store(idx)
	}
	return idx.Match(query)
}

func (r *Resolver) escalate(source, notice, trigger string, score float64) model.Decision {
	return model.Decision{
		Kind:    model.KindEscalate,
		Text:    notice,
		Source:  source,
		Score:   score,
		Trigger: trigger,
	}
}

func (r *Resolver) prompt(query string, entries []model.FaqEntry) string {
	n := r.Options.FAQContext
	if n <= 0 || len(entries) == 0 {
		return query
	}
	if n > len(entries) {
		n = len(entries)
	}

	var b strings.Builder
	b.WriteString("FAQ context:\n")
	for _, e := range entries[:n] {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", e.Question, e.Answer)
	}
	fmt.Fprintf(&b, "\nUser question: %s", query)
	return b.String()
}
