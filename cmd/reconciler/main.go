package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"daily-reconciliation/internal/calc"
	"daily-reconciliation/internal/config"
	"daily-reconciliation/internal/domain"
	"daily-reconciliation/internal/gateway"
	"daily-reconciliation/internal/usecase"
)

func main() {
	// Define command-line flags
	dateStr := flag.String("date", "", "Business day to open (YYYY-MM-DD) (required)")
	modeStr := flag.String("mode", string(domain.ModeReal), "Record mode: real or declared")
	editsFile := flag.String("edits", "", "Path to a field,value CSV of edits to apply")
	save := flag.Bool("save", false, "Save the day after applying edits")
	draft := flag.Bool("draft", true, "Save as a draft (ready) instead of synced")
	sync := flag.Bool("sync", false, "Sync the day after applying edits")
	targetStr := flag.String("target", "", "Save the day under another date (YYYY-MM-DD)")
	compare := flag.Bool("compare", false, "Print the real and declared totals of the day side by side and exit")
	flag.Parse()

	if *dateStr == "" {
		fmt.Println("Error: the -date flag is required.")
		flag.Usage()
		os.Exit(1)
	}

	date, err := domain.ParseDate(*dateStr)
	if err != nil {
		log.Fatalf("Error parsing date: %v", err)
	}
	var target *time.Time
	if *targetStr != "" {
		t, err := domain.ParseDate(*targetStr)
		if err != nil {
			log.Fatalf("Error parsing target date: %v", err)
		}
		target = &t
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)
	logger.SetOutput(os.Stderr)

	// --- Dependency Injection ---
	if warning := storeWarning(cfg.Store.Driver, *save, *sync, *compare); warning != "" {
		logger.Warn(warning)
	}
	var repo gateway.HintedRepository
	if cfg.Store.Driver == config.DriverMemory {
		repo = gateway.NewMemoryDayRecordRepository()
	} else {
		db, err := gateway.OpenDatabase(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			log.Fatalf("Error opening store: %v", err)
		}
		repo = gateway.NewGormDayRecordRepository(db)
	}

	opts := []usecase.Option{
		usecase.WithRateHints(repo),
		usecase.WithDefaultCoefficients(cfg.Defaults.Coefficients()),
	}
	if cfg.Redis.URL != "" {
		rdb, err := gateway.NewRedis(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Error connecting to redis: %v", err)
		}
		defer rdb.Close()
		opts = append(opts, usecase.WithDateLocker(gateway.NewRedisDateLocker(rdb, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second)))
	}

	reconciliationUseCase := usecase.NewReconciliationUseCase(repo, calc.NewResolver(cfg.Defaults.Rates()), logger, opts...)

	// --- Execute the Usecase ---
	ctx := context.Background()
	if *compare {
		report, err := reconciliationUseCase.Compare(ctx, date)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
		printJSON(report)
		return
	}

	if _, err := reconciliationUseCase.Open(ctx, date, domain.Mode(*modeStr)); err != nil {
		log.Fatalf("Could not open day: %v", err)
	}
	defer reconciliationUseCase.Close(ctx)

	if *editsFile != "" {
		edits, err := gateway.NewCSVEditReader().ReadEdits(ctx, *editsFile)
		if err != nil {
			log.Fatalf("Could not read edits: %v", err)
		}
		for _, e := range edits {
			if _, err := reconciliationUseCase.CommitEdit(ctx, e.Field, e.Value); err != nil {
				log.Fatalf("Edit %s=%q rejected: %v", e.Field, e.Value, err)
			}
		}
	}

	var view *usecase.SessionView
	switch {
	case *sync:
		view, err = reconciliationUseCase.Sync(ctx)
	case *save:
		view, err = reconciliationUseCase.Save(ctx, *draft, target)
	default:
		view, err = reconciliationUseCase.Current()
	}
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}
	view.Totals = view.Totals.Rounded()

	// --- Present the Output ---
	printJSON(view)
}

// storeWarning explains what the in-memory store cannot do for the requested
// action. It is empty when nothing would be lost.
func storeWarning(driver string, save, sync, compare bool) string {
	if driver != config.DriverMemory {
		return ""
	}
	switch {
	case save || sync:
		return "using the in-memory store; the saved day is lost when the command exits (set STORE_DRIVER and DATABASE_DSN)"
	case compare:
		return "using the in-memory store; no day has been saved, so both sides of the comparison are empty (set STORE_DRIVER and DATABASE_DSN)"
	}
	return ""
}

func printJSON(v interface{}) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON report: %v", err)
	}
	fmt.Println(string(output))
}
