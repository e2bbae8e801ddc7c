package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/agenthands/faqdesk/internal/config"
	"github.com/agenthands/faqdesk/internal/core/dedupe"
	"github.com/agenthands/faqdesk/internal/core/faq"
	"github.com/agenthands/faqdesk/internal/faqsource"
	"github.com/agenthands/faqdesk/internal/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	jsonOutput bool
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "faqctl",
		Short: "Resolve support questions against the FAQ and the model from the command line",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", envOr("CONFIG_PATH", "config/config.toml"), "path to the TOML config")

	ask := &cobra.Command{
		Use:   "ask <question>",
		Short: "Resolve one question and print the decision",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
	ask.Flags().BoolVar(&jsonOutput, "json", false, "print the decision as JSON")

	check := &cobra.Command{
		Use:   "check",
		Short: "Load and validate the configured FAQ source",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	seed := &cobra.Command{
		Use:   "seed <file>",
		Short: "Overwrite the configured memgraph or sqlite FAQ table from a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeed,
	}

	root.AddCommand(ask, check, seed)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	srv, cleanup, err := server.Build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	d := srv.Resolver.Resolve(cmd.Context(), strings.Join(args, " "))

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s via %s]\n%s\n", d.Kind, d.Source, d.Text)
	return nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	src, closeSrc, err := faqsource.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSrc(); err != nil {
			log.Printf("close faq source: %v", err)
		}
	}()

	store := faq.NewStore()
	n, err := faqsource.Populate(ctx, src, store)
	if err != nil {
		return err
	}

	entries := store.All()
	unmatchable := 0
	for _, e := range entries {
		if len(e.Keywords) == 0 {
			unmatchable++
		}
	}
	shadowed := dedupe.ResolveDuplicates(entries)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "source=%s entries=%d without_keywords=%d shadowed=%d\n", cfg.FAQ.Source, n, unmatchable, len(shadowed))
	for _, p := range shadowed {
		fmt.Fprintf(out, "  #%d %q is shadowed by #%d (%s)\n", p.Duplicate, entries[p.Duplicate].Question, p.Kept, p.Reason)
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	entries, err := faqsource.ReadFile(args[0])
	if err != nil {
		return err
	}
	// reject malformed rows before touching the target
	if err := faq.NewStore().Load(entries); err != nil {
		return err
	}

	src, closeSrc, err := faqsource.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	w, ok := src.(faqsource.Writer)
	if !ok {
		return fmt.Errorf("faq source %q is read-only", cfg.FAQ.Source)
	}
	if err := w.Replace(cmd.Context(), entries); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entries into %s\n", len(entries), cfg.FAQ.Source)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
