// Command reset wipes both backends and optionally reseeds them with the
// demo fixtures. It prints the per-backend report as JSON.
//
// Usage: reset -confirm [-seed]
//
// Exit codes: 0 = success, 1 = error or partial failure, 2 = not confirmed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/app"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/config"
	"github.com/aamsainz1-ui/financial-management-system-sub001/internal/service/admin"
)

func main() {
	confirm := flag.Bool("confirm", false, "confirm that all data is deleted")
	seed := flag.Bool("seed", false, "reseed with demo fixtures after the wipe")
	flag.Parse()

	if !*confirm {
		fmt.Fprintln(os.Stderr, "reset deletes every record in both backends; pass -confirm to proceed")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	backends, err := app.OpenBackends(ctx, cfg, logger)
	if err != nil {
		logger.Error("open backends", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer backends.Close(cfg.Storage, logger)

	svc := app.NewServices(cfg, backends, logger)

	report, err := svc.Admin.Reset(ctx, admin.ResetInput{Confirm: true, Seed: *seed})
	if err != nil {
		logger.Error("reset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logger.Error("encode report", slog.String("error", err.Error()))
	}

	if report.Failed() {
		// os.Exit skips deferred calls.
		backends.Close(cfg.Storage, logger)
		os.Exit(1)
	}
}
