// Rocket Screener — daily market signal ranking and hot-stock selection.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/galenhq/rocketscreener/internal/config"
	"github.com/galenhq/rocketscreener/internal/hotstock"
	"github.com/galenhq/rocketscreener/internal/infra"
	"github.com/galenhq/rocketscreener/internal/ingest"
	"github.com/galenhq/rocketscreener/internal/pipeline"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rocketscreener",
	Short: "Rocket Screener — daily market signal ranking and hot-stock selection",
	Long: `Rocket Screener ingests stock and market news, deduplicates it into
canonical events, ranks them by recency, impact, and source quality, and
separately scores hot-stock candidates for a daily deep-dive pick.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(hotstockCmd)
}

// newLogger builds a slog logger from the logging config.
func newLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newPipeline wires the ingestion clients and enricher from config.
func newPipeline(log *slog.Logger) *pipeline.Pipeline {
	fmp := ingest.NewFMPClient(cfg.FMP)
	rss := ingest.NewRSSSource(cfg.News.RSSFeeds)
	cache := infra.NewCache(time.Duration(cfg.HotStock.CacheTTLSec) * time.Second)
	enricher := hotstock.NewEnricher(fmp, cache, cfg.HotStock.Workers)
	return pipeline.New(cfg, fmp, fmp, rss, enricher, log)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Rocket Screener %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Events Command ---

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Rank today's news events and print the selected slate",
	RunE: func(cmd *cobra.Command, args []string) error {
		if threshold, _ := cmd.Flags().GetFloat64("threshold"); threshold > 0 {
			cfg.Dedupe.SimilarityThreshold = threshold
		}

		log := newLogger()
		p := newPipeline(log)

		brief, err := p.DailyBrief(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Slate: %d events (from %d news items, %d deduplicated events)\n\n",
			len(brief.Slate), brief.TotalNews, brief.TotalEvents)
		for i, ev := range brief.Slate {
			fmt.Printf("%2d. [%5.1f] %-8s %s\n", i+1, ev.Score, ev.Type, ev.Event.Headline)
			fmt.Printf("           %s", ev.Event.PrimaryURL())
			if len(ev.Event.Tickers) > 0 {
				fmt.Printf("  (%s)", strings.Join(ev.Event.Tickers, ", "))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().Float64("threshold", 0, "title similarity merge threshold override")
}

// --- Hot Stock Command ---

var hotstockCmd = &cobra.Command{
	Use:   "hotstock",
	Short: "Rank hot-stock candidates and print the deep-dive pick",
	RunE: func(cmd *cobra.Command, args []string) error {
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			cfg.HotStock.Limit = limit
		}

		log := newLogger()
		p := newPipeline(log)

		brief, err := p.DailyBrief(cmd.Context())
		if err != nil {
			return err
		}
		result, err := p.HotStock(cmd.Context(), brief)
		if err != nil {
			return err
		}

		fmt.Printf("Candidates: %d\n\n", len(result.Candidates))
		for i, c := range result.Candidates {
			fmt.Printf("%2d. [%5.1f] %-6s %-24s %+.1f%%  %s\n",
				i+1, c.Score, c.Ticker, c.Name, c.ChangePct, c.Reason)
		}
		if result.Pick != nil {
			fmt.Printf("\nPick: %s (%s) — score %.1f, completeness %.0f%%\n",
				result.Pick.Ticker, result.Pick.Name, result.Pick.Score,
				result.Pick.DataCompleteness*100)
		} else {
			fmt.Println("\nNo candidate selected.")
		}
		return nil
	},
}

func init() {
	hotstockCmd.Flags().Int("limit", 0, "maximum candidates to rank")
}
