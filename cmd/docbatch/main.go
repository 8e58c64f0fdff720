package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tallydesk/docintake/internal/async"
	"github.com/tallydesk/docintake/internal/classify"
	"github.com/tallydesk/docintake/internal/common"
	"github.com/tallydesk/docintake/internal/export"
	"github.com/tallydesk/docintake/internal/extract"
	"github.com/tallydesk/docintake/internal/pipeline"
	"github.com/tallydesk/docintake/internal/repository"
	"github.com/tallydesk/docintake/internal/source"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// openStore picks the backend from configuration; --inmem always wins.
func openStore(ctx context.Context, cfg *common.Config, inmem bool, logger *slog.Logger) (repository.ContractRepository, func(), error) {
	if inmem || cfg.Database.Driver == "sqlite" {
		dsn := cfg.Database.DSN
		if inmem {
			dsn = ":memory:"
		}
		store, err := repository.OpenSQLite(ctx, dsn, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	store, err := repository.OpenPostgres(ctx, repository.PoolConfig{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := store.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, store.Close, nil
}

func main() {
	var (
		dir   = flag.String("dir", "", "directory of plain-text documents to process (required)")
		out   = flag.String("out", "", "output XLSX path (defaults to <dir parent>/contracts.xlsx)")
		inmem = flag.Bool("inmem", false, "use an in-memory SQLite database")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "contracts.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg, *inmem, logger)
	if err != nil {
		printError("Error: open store: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	proc := pipeline.NewProcessor(logger, source.NewFileSource(), classify.NewClassifier(logger), extract.NewParser(logger), store)
	queue := async.NewIntakeQueue(proc, logger,
		async.WithWorkers(cfg.Batch.Workers),
		async.WithQueueSize(cfg.Batch.QueueSize),
		async.WithProcessTimeout(cfg.Batch.ProcessTimeout),
	)

	count := 0
	walkErr := filepath.WalkDir(*dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(path), ".txt") {
			return nil
		}
		count++
		id := uuid.New()
		return queue.Enqueue(ctx, async.Job{
			ID:          id,
			Path:        path,
			SubmittedAt: time.Now().UTC(),
			TraceID:     id.String(),
		})
	})
	if walkErr != nil {
		printError("Error: walk %s: %v\n", *dir, walkErr)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	queue.Shutdown(shutdownCtx)
	cancel()
	logger.Info("batch complete", "documents", count)

	recs, err := store.ListContracts(ctx)
	if err != nil {
		printError("Error: list contracts: %v\n", err)
		os.Exit(1)
	}
	if len(recs) == 0 {
		logger.Info("no contracts extracted; skipping export")
		return
	}

	svc := export.NewService(logger)
	data, err := svc.BuildXLSX(recs)
	if err != nil {
		printError("Error: build workbook: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		printError("Error: write %s: %v\n", *out, err)
		os.Exit(1)
	}
	logger.Info("export written", "path", *out, "contracts", len(recs))
}
