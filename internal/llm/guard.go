package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/time/rate"
)

// CallObserver receives one observation per model attempt.
type CallObserver interface {
	ObserveModelCall(provider, outcome string, d time.Duration)
}

type GuardConfig struct {
	Provider   string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	// RatePerSecond of zero disables the limiter.
	RatePerSecond float64
	Burst         int
}

// Guard wraps an LLMClient with a per-attempt timeout, a bounded retry on
// transient failures and an optional client-side rate limit. Every failure
// leaves as a *ServiceError.
type Guard struct {
	client   LLMClient
	cfg      GuardConfig
	limiter  *rate.Limiter
	observer CallObserver
}

func NewGuard(client LLMClient, cfg GuardConfig, observer CallObserver) *Guard {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	g := &Guard{client: client, cfg: cfg, observer: observer}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return g
}

func (g *Guard) Complete(ctx context.Context, prompt string) (string, error) {
	attempt := 0
	op := func() (string, error) {
		attempt++
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return "", backoff.Permanent(&ServiceError{Kind: KindQuota, Err: err})
			}
		}

		out, err := g.try(ctx, prompt)
		if err == nil {
			return out, nil
		}

		se := Classify(err)
		slog.Warn("model call failed",
			slog.String("provider", g.cfg.Provider),
			slog.Int("attempt", attempt),
			slog.String("kind", string(se.Kind)),
			slog.Any("error", se.Err),
		)
		if !se.Transient() {
			return "", backoff.Permanent(se)
		}
		return "", se
	}

	out, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(g.cfg.RetryDelay)),
		backoff.WithMaxTries(uint(g.cfg.MaxRetries+1)),
	)
	if err != nil {
		return "", Classify(err)
	}
	return out, nil
}

// try runs a single attempt under its own deadline.
func (g *Guard) try(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	start := time.Now()
	out, err := g.client.Generate(attemptCtx, prompt)
	if err == nil && strings.TrimSpace(out) == "" {
		err = ErrEmptyResponse
	}
	if err != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		err = &ServiceError{Kind: KindTimeout, Err: err}
	}

	if g.observer != nil {
		outcome := "success"
		if err != nil {
			outcome = string(Classify(err).Kind)
		}
		g.observer.ObserveModelCall(g.cfg.Provider, outcome, time.Since(start))
	}
	return strings.TrimSpace(out), err
}
