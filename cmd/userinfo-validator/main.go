// main is the entry point of the userinfo-validator tool.
//
// PIPELINE:
//  1. Load configuration (flags, env, optional YAML file)
//  2. Initialise the logger
//  3. Open the record storage (input file + valid-records file)
//  4. Read the raw records
//  5. Validate: partition into valid records and failure labels
//  6. Write the error summary
//  7. Write the valid records
//
// RUNNING:
//
//	go run ./cmd/userinfo-validator -input_file=20.txt -output_file=result.txt
//
// or with a config file:
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/userinfo-validator
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/aanand-mishra/userinfo-validator/internal/config"
	"github.com/aanand-mishra/userinfo-validator/internal/report"
	"github.com/aanand-mishra/userinfo-validator/internal/storage"
	"github.com/aanand-mishra/userinfo-validator/internal/storage/jsonfile"
	"github.com/aanand-mishra/userinfo-validator/internal/validation"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs go to stderr so a summary printed to stdout stays clean.
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting userinfo-validator",
		slog.String("env", cfg.Env),
		slog.String("input", cfg.InputFile),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, err := jsonfile.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rv, err := validation.New(validation.WithLogger(log))
	if err != nil {
		log.Error("failed to initialise validator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := run(cfg, store, rv, newProgressBar(cfg.Quiet)); err != nil {
		log.Error("run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("done",
		slog.String("summary", cfg.OutputFile),
		slog.String("valid_records", cfg.ValidFile),
	)
}

// run executes steps 4-7 against store, advancing bar to 100 across them.
func run(cfg *config.Config, store storage.Storage, rv *validation.RecordValidator, bar *progressbar.ProgressBar) error {
	defer bar.Finish()

	// ── 4. Read ───────────────────────────────────────────────────────────
	raw, err := store.ReadRecords()
	if err != nil {
		return err
	}
	_ = bar.Add(25)

	// ── 5. Validate ───────────────────────────────────────────────────────
	// A record missing a key aborts the whole batch here.
	_ = bar.Add(35)
	res, err := rv.Validate(raw)
	if err != nil {
		return err
	}
	_ = bar.Add(10)

	// ── 6. Summary ────────────────────────────────────────────────────────
	if err := report.WriteFile(cfg.OutputFile, report.Summarize(res.Failures)); err != nil {
		return err
	}
	_ = bar.Add(15)

	// ── 7. Valid records ──────────────────────────────────────────────────
	if err := store.WriteRecords(res.Valid); err != nil {
		return fmt.Errorf("write valid records: %w", err)
	}
	_ = bar.Add(15)

	return nil
}

func newProgressBar(quiet bool) *progressbar.ProgressBar {
	var w io.Writer = os.Stderr
	if quiet {
		w = io.Discard
	}
	return progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(60),
		progressbar.OptionSetDescription("validating"),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
