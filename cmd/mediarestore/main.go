// Command mediarestore is the CLI entrypoint for the export post-processor.
//
// It parses flags, validates configuration, and either runs dependency
// diagnostics (-p) or one of the three run modes: rename in place
// (default), sort into valid/ and invalid/ (-m), or recursive cleanup (-c).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/backmassage/mediarestore/internal/check"
	"github.com/backmassage/mediarestore/internal/config"
	"github.com/backmassage/mediarestore/internal/display"
	"github.com/backmassage/mediarestore/internal/logging"
	"github.com/backmassage/mediarestore/internal/pipeline"
	"github.com/backmassage/mediarestore/internal/validate"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Bootstrap: the logger doesn't exist yet, so errors go directly to
	// stderr via fmt. Once NewLogger succeeds, all output goes through the
	// logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "mediarestore: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "mediarestore: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mediarestore: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(log)
		if err := check.CheckDeps(); err != nil {
			return 1
		}
		return 0
	}

	log.Info("=== mediarestore v%s (%s) ===", version, commit)
	switch cfg.Mode {
	case config.ModeCleanup:
		log.Info("Cleanup: %s", cfg.BaseDir())
	default:
		log.Info("Case: %s", cfg.CasePath)
	}
	log.Info("")

	// Fail fast if ffprobe is unavailable: videos would all time out or
	// be misclassified otherwise.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		log.Error("Run with -p for full diagnostics")
		return 1
	}

	// Cancel the run on SIGINT/SIGTERM so it stops between files instead
	// of mid-rename.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file…")
		cancel()
	}()

	runner := pipeline.New(afero.NewOsFs(), &cfg, log, validate.New(cfg.Timeout))
	stats, err := runner.Run(ctx)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if stats.Errors > 0 {
		return 1
	}
	return 0
}
