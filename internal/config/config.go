package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider" validate:"oneof=openai claude gemini ollama"`
	Model    string `toml:"model" validate:"required"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	// System is the instruction sent alongside every completion request.
	System    string `toml:"system"`
	MaxTokens int    `toml:"max_tokens" validate:"gte=0"`
}

// Duration lets TOML carry values like "20s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type ModelConfig struct {
	Timeout    Duration `toml:"timeout"`
	MaxRetries int      `toml:"max_retries" validate:"gte=0,lte=5"`
	RetryDelay Duration `toml:"retry_delay"`
	// RatePerSecond of zero disables client-side rate limiting.
	RatePerSecond float64 `toml:"rate_per_second" validate:"gte=0"`
	Burst         int     `toml:"burst" validate:"gte=0"`
	// FAQContext is how many FAQ entries are quoted in the model prompt.
	FAQContext int `toml:"faq_context" validate:"gte=0"`
}

type ResolverConfig struct {
	EscalationTerms      []string `toml:"escalation_terms"`
	ConfidenceThreshold  float64  `toml:"confidence_threshold" validate:"gte=0,lte=1"`
	ComplexityTokenLimit int      `toml:"complexity_token_limit"`
	TieBreak             string   `toml:"tie_break" validate:"oneof=first most_keywords"`
	// UseIndex scores only entries sharing a token with the query.
	UseIndex         bool     `toml:"use_index"`
	HedgeTerms       []string `toml:"hedge_terms"`
	EscalationNotice string   `toml:"escalation_notice" validate:"required"`
	FallbackNotice   string   `toml:"fallback_notice" validate:"required"`
}

type FAQConfig struct {
	Source string `toml:"source" validate:"oneof=default file memgraph sqlite"`
	Path   string `toml:"path" validate:"required_if=Source file"`
	Watch  bool   `toml:"watch"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type SQLiteConfig struct {
	Path  string `toml:"path"`
	Table string `toml:"table"`
}

type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path" validate:"required_if=Enabled true"`
}

type ServerConfig struct {
	Port string `toml:"port" validate:"required,numeric"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Model    ModelConfig    `toml:"model"`
	Resolver ResolverConfig `toml:"resolver"`
	FAQ      FAQConfig      `toml:"faq"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Audit    AuditConfig    `toml:"audit"`
	Server   ServerConfig   `toml:"server"`
}

const defaultSystemPrompt = "You are a helpful support assistant. Answer briefly and precisely. " +
	"If the question is technical (IT/hardware) recommend escalation to IT support. " +
	"If the question is HR/policy, answer from FAQ if possible and mention escalation contact if unsure."

// Default returns a configuration that runs against a local Ollama with the
// built-in FAQ set.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "ollama",
			Model:     "gpt-oss:latest",
			BaseURL:   "http://localhost:11434",
			System:    defaultSystemPrompt,
			MaxTokens: 500,
		},
		Model: ModelConfig{
			Timeout:    Duration{20 * time.Second},
			MaxRetries: 1,
			RetryDelay: Duration{500 * time.Millisecond},
			FAQContext: 10,
		},
		Resolver: ResolverConfig{
			EscalationTerms: []string{
				"refund", "chargeback", "dispute", "overcharged",
				"breach", "hacked", "phishing", "compromised",
				"lawyer", "sue", "lawsuit", "fraud", "legal",
				"human", "agent", "representative", "manager",
				"broken", "not working", "urgent",
			},
			ConfidenceThreshold:  0.6,
			ComplexityTokenLimit: 40,
			TieBreak:             "first",
			EscalationNotice:     "This looks like it should be escalated to human support. Please contact IT at it-support@example.com or open a ticket in the IT portal.",
			FallbackNotice:       "We could not produce an automated answer right now. Your question has been flagged for a support agent.",
		},
		FAQ: FAQConfig{
			Source: "default",
		},
		SQLite: SQLiteConfig{
			Table: "faq",
		},
		Server: ServerConfig{
			Port: "8080",
		},
	}
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("FAQ_SOURCE"); v != "" {
		c.FAQ.Source = v
	}
	if v := os.Getenv("FAQ_PATH"); v != "" {
		c.FAQ.Path = v
		if os.Getenv("FAQ_SOURCE") == "" {
			c.FAQ.Source = "file"
		}
	}
	if v := os.Getenv("CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Resolver.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		c.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		c.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		c.Memgraph.Password = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
}

// Validate checks field constraints declared in the struct tags.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Model.Timeout.Duration <= 0 {
		return fmt.Errorf("invalid configuration: model.timeout must be positive")
	}
	return nil
}

// LoadOrDefault loads path if it exists, otherwise returns Default. Env
// overrides are applied and the result validated in both cases.
func LoadOrDefault(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file '%s': %w", path, err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
