// Command report prints the budget report of the current week, month or
// year, once or on a cron schedule.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"wheresmymoney/internal/budget"
	"wheresmymoney/internal/config"
	"wheresmymoney/internal/database"
	"wheresmymoney/internal/export"
	"wheresmymoney/internal/logger"
	"wheresmymoney/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Report error: %v", err)
	}
}

func run() error {
	period := flag.String("period", "M", "report period: W, M or Y")
	schedule := flag.String("schedule", "", `cron spec to repeat the report on, e.g. "0 8 * * MON"`)
	format := flag.String("format", "table", "output format: json or table")
	flag.Parse()

	render, err := renderer(*format)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbConfig, err := database.NewConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer manager.Close()

	loc := cfg.ReportTimezone
	reports := services.NewReportService(services.NewLedgerStore(manager.DB()),
		func() time.Time { return time.Now().In(loc) })

	emit := func() error {
		report, err := reports.GetReport(*period)
		if err != nil {
			return err
		}
		return render(os.Stdout, report)
	}

	if *schedule == "" {
		return emit()
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(*schedule, func() {
		if err := emit(); err != nil {
			logger.Get().Errorw("scheduled report failed", "period", *period, "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", *schedule, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Get().Infow("report scheduled", "period", *period, "schedule", *schedule, "timezone", loc.String())
	c.Start()
	<-ctx.Done()

	logger.Get().Info("Waiting for running report to finish...")
	<-c.Stop().Done()
	return nil
}

type renderFunc func(w io.Writer, report *budget.Report) error

func renderer(format string) (renderFunc, error) {
	switch format {
	case "table":
		return export.ReportTable, nil
	case "json":
		return func(w io.Writer, report *budget.Report) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}, nil
	}
	return nil, fmt.Errorf("unknown format %q (use json or table)", format)
}
