package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/haukened/seen/internal/seen/common/clock"
	"github.com/haukened/seen/internal/seen/common/log"
	"github.com/haukened/seen/internal/seen/config"
	"github.com/haukened/seen/internal/seen/domain"
	"github.com/haukened/seen/internal/seen/repos/bloom"
	"github.com/haukened/seen/internal/seen/repos/exact"
	exactbolt "github.com/haukened/seen/internal/seen/repos/exact/bolt"
	"github.com/haukened/seen/internal/seen/repos/lru"
	"github.com/haukened/seen/internal/seen/repos/sources"
	"github.com/haukened/seen/internal/seen/services/checker"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "seen"
)

// Application holds the wired components of the checker pipeline.
type Application struct {
	config  *config.AppConfig
	checker *checker.Checker
	closers []io.Closer
}

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Configure global logging
	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":        version,
		"env":            cfg.Env,
		"log_level":      cfg.LogLevel,
		"expected_items": cfg.ExpectedItems,
		"fp_rate":        cfg.FalsePositiveRate,
		"cache_size":     cfg.CacheSize,
		"input":          cfg.Input,
		"format":         cfg.Format,
		"audit":          cfg.Audit,
	}, "Starting seen")

	// Build application with all dependencies
	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}
	defer app.Close()

	// Cancel the run on shutdown signals; a partial summary is still reported.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	items, err := loadItems(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err, "input": cfg.Input}, "Failed to read input")
	}
	log.Info(map[string]any{"items": len(items)}, "Input loaded")

	summary, err := app.checker.Run(ctx, items)
	if err != nil {
		log.Warn(map[string]any{"error": err, "checked": summary.Total}, "Run interrupted")
	}

	log.Info(map[string]any{
		"total":              summary.Total,
		"new":                summary.New,
		"possibly_duplicate": summary.PossiblyDuplicate,
		"elapsed":            summary.Elapsed,
	}, "Run complete")

	printSummary(os.Stdout, cfg, summary)
}

// buildApplication constructs all components and wires them together
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	filter, err := bloom.New(cfg.ExpectedItems, cfg.FalsePositiveRate)
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	log.Info(map[string]any{
		"bits":   filter.M(),
		"hashes": filter.K(),
	}, "Bloom filter sized")

	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build observed cache: %w", err)
	}

	app := &Application{config: cfg}

	var audit checker.ExactIndex
	if cfg.Audit {
		if cfg.AuditDB != "" {
			store, err := exactbolt.New(cfg.AuditDB)
			if err != nil {
				return nil, fmt.Errorf("failed to open audit db: %w", err)
			}
			app.closers = append(app.closers, store)
			audit = store
			log.Info(map[string]any{"path": cfg.AuditDB}, "Audit index configured (bolt)")
		} else {
			audit = exact.NewSet()
			log.Info(nil, "Audit index configured (in-memory)")
		}
	}

	app.checker = checker.New(checker.Options{
		Filter: filter,
		Cache:  cache,
		Audit:  audit,
		Logger: logger,
		Clock:  clock.RealClock{},
	})
	return app, nil
}

// loadItems opens the configured input and extracts items with the parser
// selected by cfg.Format.
func loadItems(cfg *config.AppConfig) ([]string, error) {
	logger := log.GetLogger()

	var r io.Reader
	if cfg.Input == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	switch cfg.Format {
	case "accesslog":
		return sources.ParseAccessLog(r, cfg.Input, logger)
	default:
		return sources.ParsePlainItems(r, cfg.Input, logger)
	}
}

// printSummary writes the run report as an aligned table.
func printSummary(out io.Writer, cfg *config.AppConfig, s domain.Summary) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintf(w, "items checked\t%d\n", s.Total)
	fmt.Fprintf(w, "new\t%d\n", s.New)
	fmt.Fprintf(w, "possibly duplicate\t%d\n", s.PossiblyDuplicate)
	if s.Audited {
		fmt.Fprintf(w, "exact distinct\t%d\n", s.ExactDistinct)
		fmt.Fprintf(w, "observed false positives\t%d (%.4f)\n", s.ObservedFalsePositives, s.ObservedFPRate())
	}
	fmt.Fprintf(w, "filter\t%d bits, %d hashes\n", s.FilterBits, s.FilterHashes)
	fmt.Fprintf(w, "estimated fp rate\t%.4f (configured %.4f)\n", s.EstimatedFPRate, cfg.FalsePositiveRate)
	fmt.Fprintf(w, "elapsed\t%s\n", s.Elapsed)
	_ = w.Flush()
}

// Close releases any disk-backed components.
func (app *Application) Close() {
	for _, c := range app.closers {
		if err := c.Close(); err != nil {
			log.Warn(map[string]any{"error": err}, "Error closing component")
		}
	}
}
