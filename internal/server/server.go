package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/agenthands/faqdesk/internal/audit"
	"github.com/agenthands/faqdesk/internal/config"
	"github.com/agenthands/faqdesk/internal/core"
	"github.com/agenthands/faqdesk/internal/core/faq"
	"github.com/agenthands/faqdesk/internal/core/model"
	"github.com/agenthands/faqdesk/internal/faqsource"
	"github.com/agenthands/faqdesk/internal/llm"
	"github.com/agenthands/faqdesk/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	Resolver *core.Resolver
	Source   faqsource.Source
	Audit    *audit.Log
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// Build wires the resolver, FAQ source, model client and audit log from cfg.
// The returned function releases whatever was opened.
func Build(ctx context.Context, cfg *config.Config) (*Server, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				slog.Warn("cleanup failed", slog.Any("error", err))
			}
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	src, closeSrc, err := faqsource.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeSrc)

	store := faq.NewStore()
	n, err := faqsource.Populate(ctx, src, store)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load faq: %w", err)
	}
	m.SetFAQEntries(n)

	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	if c, ok := client.(io.Closer); ok {
		closers = append(closers, c.Close)
	}
	guard := llm.NewGuard(client, llm.GuardConfig{
		Provider:      cfg.LLM.Provider,
		Timeout:       cfg.Model.Timeout.Duration,
		MaxRetries:    cfg.Model.MaxRetries,
		RetryDelay:    cfg.Model.RetryDelay.Duration,
		RatePerSecond: cfg.Model.RatePerSecond,
		Burst:         cfg.Model.Burst,
	}, m)

	r := core.NewResolver(store, guard, cfg.Resolver, cfg.Model.FAQContext)
	r.Metrics = m

	s := &Server{Resolver: r, Source: src, Registry: reg, Metrics: m}

	if cfg.Audit.Enabled {
		auditLog, err := audit.Open(cfg.Audit.Path)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, auditLog.Close)
		r.Recorder = auditLog
		s.Audit = auditLog
	}

	if cfg.FAQ.Source == "file" && cfg.FAQ.Watch {
		watchCtx, cancel := context.WithCancel(ctx)
		closers = append(closers, func() error { cancel(); return nil })
		go func() {
			if err := faqsource.Watch(watchCtx, cfg.FAQ.Path, store, m.SetFAQEntries); err != nil {
				slog.Error("faq watcher stopped", slog.Any("error", err))
			}
		}()
	}

	return s, cleanup, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/resolve", s.Resolve)
	r.GET("/faqs", s.ListFAQ)
	r.POST("/faqs/reload", s.ReloadFAQ)
	r.GET("/decisions", s.RecentDecisions)
	r.GET("/healthz", s.Health)
	if s.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))
	}

	return r
}

type ResolveRequest struct {
	Query string `json:"query"`
}

// Resolve never fails on query content; only an unreadable body is rejected.
func (s *Server) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	d := s.Resolver.Resolve(c.Request.Context(), req.Query)
	c.JSON(http.StatusOK, d)
}

func (s *Server) ListFAQ(c *gin.Context) {
	entries := s.Resolver.Store.All()
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "entries": entries})
}

func (s *Server) ReloadFAQ(c *gin.Context) {
	if s.Source == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No FAQ source configured"})
		return
	}

	n, err := faqsource.Populate(c.Request.Context(), s.Source, s.Resolver.Store)
	if err != nil {
		slog.Error("faq reload failed", slog.Any("error", err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	s.Metrics.SetFAQEntries(n)

	c.JSON(http.StatusOK, gin.H{"status": "reloaded", "count": n})
}

func (s *Server) RecentDecisions(c *gin.Context) {
	if s.Audit == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Audit log disabled"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}
	kind := model.Kind(strings.ToUpper(c.Query("kind")))

	entries, err := s.Audit.Recent(c.Request.Context(), kind, limit)
	if err != nil {
		slog.Error("failed to read decisions", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read decisions"})
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{"query": e.Query, "decision": e.Decision})
	}
	c.JSON(http.StatusOK, gin.H{"decisions": out})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "faq_entries": s.Resolver.Store.Len()})
}
