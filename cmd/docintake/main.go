package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/tallydesk/docintake/constants"
	"github.com/tallydesk/docintake/internal/classify"
	"github.com/tallydesk/docintake/internal/common"
	"github.com/tallydesk/docintake/internal/entity"
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

func main() {
	var (
		file    = flag.String("file", "", "plain-text document to process (required)")
		mode    = flag.String("mode", "auto", "classify | parse | auto (parse only when classified as contract/invoice)")
		dbDSN   = flag.String("db", "", "optional SQLite DSN to store parsed contracts (e.g. file:intake.db or :memory:)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	var store repository.ContractRepository
	if *dbDSN != "" {
		sqlStore, err := repository.OpenSQLite(ctx, *dbDSN, logger)
		if err != nil {
			printError("Error: open store: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = sqlStore.Close() }()
		store = sqlStore
	}

	texts := source.NewFileSource()
	classifier := classify.NewClassifier(logger)
	parser := extract.NewParser(logger)

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	switch *mode {
	case "classify":
		text, err := texts.ExtractText(ctx, *file)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		result := classifier.Detect(text, *file)
		_ = out.Encode(map[string]any{
			"result": result,
			"label":  constants.DocumentTypeLabel(result.Type),
			"action": constants.RecommendedAction(result.Confidence),
		})

	case "parse":
		text, err := texts.ExtractText(ctx, *file)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		contract := parser.ParseText(text, entity.SourceUnknown)
		validation := extract.Validate(contract)
		_ = out.Encode(map[string]any{"contract": contract, "validation": validation})

	case "auto":
		proc := pipeline.NewProcessor(logger, texts, classifier, parser, store)
		outcome, err := proc.ProcessFile(common.WithRequestID(ctx, uuid.NewString()), *file)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		_ = out.Encode(outcome)

	default:
		printError("Error: unknown --mode %q\n", *mode)
		os.Exit(1)
	}
}
